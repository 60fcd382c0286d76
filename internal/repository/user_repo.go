package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/apexmotors/dealership-api/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

// UserRepository handles the `users` profile collection, keyed by auth UID.
type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) Get(ctx context.Context, uid string) (model.UserProfile, error) {
	snap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("get user %s: %w", uid, err)
	}
	var profile model.UserProfile
	if err := snap.DataTo(&profile); err != nil {
		return model.UserProfile{}, fmt.Errorf("decode user %s: %w", uid, err)
	}
	if profile.UID == "" {
		profile.UID = snap.Ref.ID
	}
	return profile, nil
}

func (r *UserRepository) Set(ctx context.Context, profile model.UserProfile) error {
	if profile.UID == "" {
		return fmt.Errorf("uid is required")
	}
	ref := r.client.Collection(usersCollection).Doc(profile.UID)
	if _, err := ref.Set(ctx, profile); err != nil {
		return fmt.Errorf("set user %s: %w", profile.UID, err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.UserProfile, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	var profiles []model.UserProfile
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate users: %w", err)
		}
		var p model.UserProfile
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", doc.Ref.ID, err)
		}
		if p.UID == "" {
			p.UID = doc.Ref.ID
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// UpdateFields patches role and/or display name on an existing profile.
func (r *UserRepository) UpdateFields(ctx context.Context, uid string, updates []firestore.Update) error {
	ref := r.client.Collection(usersCollection).Doc(uid)
	_, err := ref.Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update user %s: %w", uid, err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, uid string) error {
	if _, err := r.client.Collection(usersCollection).Doc(uid).Delete(ctx); err != nil {
		return fmt.Errorf("delete user %s: %w", uid, err)
	}
	return nil
}
