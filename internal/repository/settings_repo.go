package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/apexmotors/dealership-api/pkg/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SettingsRepository manages the settings/site singleton document.
type SettingsRepository struct {
	client *firestore.Client
}

func NewSettingsRepository(client *firestore.Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

func (r *SettingsRepository) ref() *firestore.DocumentRef {
	return r.client.Collection("settings").Doc("site")
}

// Get loads the settings document.
func (r *SettingsRepository) Get(ctx context.Context) (model.SiteSettings, error) {
	snap, err := r.ref().Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.SiteSettings{}, ErrNotFound
	}
	if err != nil {
		return model.SiteSettings{}, fmt.Errorf("get site settings: %w", err)
	}
	var settings model.SiteSettings
	if err := snap.DataTo(&settings); err != nil {
		return model.SiteSettings{}, fmt.Errorf("decode site settings: %w", err)
	}
	return settings, nil
}

// Seed writes the defaults once. It is a no-op if the document already exists.
func (r *SettingsRepository) Seed(ctx context.Context, defaults model.SiteSettings) error {
	_, err := r.ref().Create(ctx, defaults)
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed site settings: %w", err)
	}
	return nil
}

// UpdateSection merges one named sub-section (seo, homepage, emails) into the
// document without touching the other sections.
func (r *SettingsRepository) UpdateSection(ctx context.Context, section string, data map[string]any) error {
	_, err := r.ref().Set(ctx, map[string]any{section: data}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("update settings section %s: %w", section, err)
	}
	return nil
}

// Watch streams settings document updates into fn until ctx is canceled.
// Errors end the stream; the caller decides whether to resubscribe.
func (r *SettingsRepository) Watch(ctx context.Context, fn func(model.SiteSettings)) error {
	iter := r.ref().Snapshots(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err != nil {
			return fmt.Errorf("settings snapshot: %w", err)
		}
		if !snap.Exists() {
			continue
		}
		var settings model.SiteSettings
		if err := snap.DataTo(&settings); err != nil {
			return fmt.Errorf("decode settings snapshot: %w", err)
		}
		fn(settings)
	}
}
