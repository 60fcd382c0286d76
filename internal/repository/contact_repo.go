package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/apexmotors/dealership-api/pkg/model"
)

// ContactRepository stores public contact form submissions.
type ContactRepository struct {
	client *firestore.Client
}

func NewContactRepository(client *firestore.Client) *ContactRepository {
	return &ContactRepository{client: client}
}

// Add appends a new contact message and returns its document id.
func (r *ContactRepository) Add(ctx context.Context, msg model.ContactMessage) (string, error) {
	ref := r.client.Collection("contact_messages").NewDoc()
	if _, err := ref.Set(ctx, msg); err != nil {
		return "", fmt.Errorf("add contact message: %w", err)
	}
	return ref.ID, nil
}
