package sitesettings

import (
	"context"
	"errors"
	"sync"

	"github.com/apexmotors/dealership-api/internal/business/catalog"
	"github.com/apexmotors/dealership-api/internal/platform/logging"
	"github.com/apexmotors/dealership-api/internal/repository"
	"github.com/apexmotors/dealership-api/pkg/model"
)

// ErrNotConfigured means no settings store is available; reads fall back to
// the bundled defaults instead.
var ErrNotConfigured = errors.New("remote store is not configured")

// Valid section names of the settings/site document.
const (
	SectionSeo      = "seo"
	SectionHomepage = "homepage"
	SectionEmails   = "emails"
)

// Store is the slice of the settings repository the service needs.
type Store interface {
	Get(ctx context.Context) (model.SiteSettings, error)
	Seed(ctx context.Context, defaults model.SiteSettings) error
	UpdateSection(ctx context.Context, section string, data map[string]any) error
	Watch(ctx context.Context, fn func(model.SiteSettings)) error
}

// Service serves the singleton site settings with a live-updated in-process
// copy: the document is read (and default-seeded) once on start, then a
// snapshot listener keeps the cached copy current.
type Service struct {
	store Store

	mu      sync.RWMutex
	current model.SiteSettings
}

func NewService(store Store) *Service {
	return &Service{store: store, current: catalog.DefaultSettings()}
}

// Start seeds defaults if the document is absent, loads the current value,
// and launches the watcher. Safe to call with an unconfigured store: the
// bundled defaults stay in effect.
func (s *Service) Start(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Seed(ctx, catalog.DefaultSettings()); err != nil {
		return err
	}
	settings, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	s.setCurrent(settings)

	go func() {
		err := s.store.Watch(ctx, s.setCurrent)
		if err != nil && ctx.Err() == nil {
			logging.L().Warnw("settings watcher stopped", "error", err)
		}
	}()
	return nil
}

func (s *Service) setCurrent(settings model.SiteSettings) {
	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()
}

// Current returns the cached settings.
func (s *Service) Current() model.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// UpdateSection merges one named sub-section and refreshes the cached copy
// immediately rather than waiting for the snapshot listener.
func (s *Service) UpdateSection(ctx context.Context, section string, data map[string]any) (model.SiteSettings, error) {
	if s.store == nil {
		return model.SiteSettings{}, ErrNotConfigured
	}
	switch section {
	case SectionSeo, SectionHomepage, SectionEmails:
	default:
		return model.SiteSettings{}, errors.New("unknown settings section: " + section)
	}
	if err := s.store.UpdateSection(ctx, section, data); err != nil {
		return model.SiteSettings{}, err
	}
	// Refresh eagerly; the snapshot listener would catch up anyway.
	settings, err := s.store.Get(ctx)
	if err != nil {
		logging.L().Warnw("settings read-back failed", "error", err)
		return s.Current(), nil
	}
	s.setCurrent(settings)
	return settings, nil
}

// Configured reports whether a settings store is wired.
func (s *Service) Configured() bool {
	return s.store != nil
}

var _ Store = (*repository.SettingsRepository)(nil)
