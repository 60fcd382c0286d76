package firebase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	fb "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/apexmotors/dealership-api/internal/platform/config"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Clients bundles the remote-store handles the service depends on:
// Firestore for documents, a Cloud Storage bucket for images, and Firebase
// Auth for verifying staff ID tokens. A nil Clients means the service runs
// without a configured Firebase project.
type Clients struct {
	Firestore  *firestore.Client
	Auth       *fbauth.Client
	Bucket     *storage.BucketHandle
	BucketName string

	storageClient *storage.Client
}

// New creates all remote-store clients from the shared service account
// credentials (base64 or file). It returns nil Clients when no Firebase
// project is configured, which is a supported mode.
func New(ctx context.Context, cfg config.Config) (*Clients, string, error) {
	if !cfg.FirebaseConfigured() {
		return nil, "none", nil
	}

	creds, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil {
		return nil, "", err
	}
	opt := option.WithCredentialsJSON(creds)

	fsClient, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, opt)
	if err != nil {
		return nil, "", fmt.Errorf("init firestore client: %w", err)
	}

	app, err := fb.NewApp(ctx, &fb.Config{ProjectID: cfg.FirebaseProjectID}, opt)
	if err != nil {
		fsClient.Close()
		return nil, "", fmt.Errorf("init firebase app: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		fsClient.Close()
		return nil, "", fmt.Errorf("init firebase auth: %w", err)
	}

	clients := &Clients{
		Firestore: fsClient,
		Auth:      authClient,
	}

	if cfg.StorageBucket != "" {
		storageClient, err := storage.NewClient(ctx, opt)
		if err != nil {
			fsClient.Close()
			return nil, "", fmt.Errorf("init storage client: %w", err)
		}
		clients.storageClient = storageClient
		clients.Bucket = storageClient.Bucket(cfg.StorageBucket)
		clients.BucketName = cfg.StorageBucket
	}

	return clients, source, nil
}

// Close releases the underlying clients.
func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Firestore != nil {
		c.Firestore.Close()
	}
	if c.storageClient != nil {
		c.storageClient.Close()
	}
}

// Ping performs a lightweight check by attempting to iterate collections.
func Ping(ctx context.Context, client *firestore.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	iter := client.Collections(ctx)
	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil
	}
	return err
}
