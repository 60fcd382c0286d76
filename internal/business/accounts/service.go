package accounts

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/apexmotors/dealership-api/internal/platform/logging"
	"github.com/apexmotors/dealership-api/internal/repository"
	"github.com/apexmotors/dealership-api/pkg/model"
)

// ErrNotConfigured means no profile store is available.
var ErrNotConfigured = errors.New("remote store is not configured")

// ProfileStore is the slice of the user repository the service needs.
type ProfileStore interface {
	Get(ctx context.Context, uid string) (model.UserProfile, error)
	Set(ctx context.Context, profile model.UserProfile) error
	List(ctx context.Context) ([]model.UserProfile, error)
	UpdateFields(ctx context.Context, uid string, updates []firestore.Update) error
	Delete(ctx context.Context, uid string) error
}

// AuthAdmin deletes the underlying auth identity; best-effort only.
type AuthAdmin interface {
	DeleteUser(ctx context.Context, uid string) error
}

// Service manages staff profiles in the `users` collection.
type Service struct {
	store ProfileStore
	auth  AuthAdmin
}

func NewService(store ProfileStore, auth AuthAdmin) *Service {
	return &Service{store: store, auth: auth}
}

// Ensure fetches the profile for uid, creating an editor profile on first
// successful authentication when none exists yet.
func (s *Service) Ensure(ctx context.Context, uid, email string) (model.UserProfile, error) {
	if s.store == nil {
		return model.UserProfile{}, ErrNotConfigured
	}
	profile, err := s.store.Get(ctx, uid)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.UserProfile{}, err
	}

	profile = model.UserProfile{
		UID:   uid,
		Email: email,
		Role:  model.RoleEditor,
	}
	if err := s.store.Set(ctx, profile); err != nil {
		return model.UserProfile{}, fmt.Errorf("create profile %s: %w", uid, err)
	}
	return profile, nil
}

// List returns every staff profile.
func (s *Service) List(ctx context.Context) ([]model.UserProfile, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}
	return s.store.List(ctx)
}

// Update patches role and/or display name. Role must be admin or editor.
func (s *Service) Update(ctx context.Context, uid, role, displayName string) error {
	if s.store == nil {
		return ErrNotConfigured
	}
	var updates []firestore.Update
	if role != "" {
		if role != model.RoleAdmin && role != model.RoleEditor {
			return fmt.Errorf("invalid role %q", role)
		}
		updates = append(updates, firestore.Update{Path: "role", Value: role})
	}
	if displayName != "" {
		updates = append(updates, firestore.Update{Path: "displayName", Value: displayName})
	}
	if len(updates) == 0 {
		return nil
	}
	return s.store.UpdateFields(ctx, uid, updates)
}

// Delete removes the profile document. Deleting the auth identity behind it
// is best-effort: a failure is logged, not surfaced.
func (s *Service) Delete(ctx context.Context, uid string) error {
	if s.store == nil {
		return ErrNotConfigured
	}
	if err := s.store.Delete(ctx, uid); err != nil {
		return err
	}
	if s.auth != nil {
		if err := s.auth.DeleteUser(ctx, uid); err != nil {
			logging.L().Warnw("auth user deletion failed", "uid", uid, "error", err)
		}
	}
	return nil
}

var _ AuthAdmin = (*fbauth.Client)(nil)
