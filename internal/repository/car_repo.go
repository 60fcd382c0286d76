package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/apexmotors/dealership-api/pkg/model"
	"github.com/apexmotors/dealership-api/pkg/util"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const carsCollection = "cars"

// ErrNotFound signals a missing document.
var ErrNotFound = errors.New("document not found")

// CarRepository handles Firestore read/write for car listings.
type CarRepository struct {
	client *firestore.Client
}

func NewCarRepository(client *firestore.Client) *CarRepository {
	return &CarRepository{client: client}
}

// List loads every car in collection order.
func (r *CarRepository) List(ctx context.Context) ([]model.Car, error) {
	iter := r.client.Collection(carsCollection).Documents(ctx)
	var cars []model.Car
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate cars: %w", err)
		}
		car, err := decodeCar(doc)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, nil
}

// GetByID fetches a single car document.
func (r *CarRepository) GetByID(ctx context.Context, id string) (model.Car, error) {
	snap, err := r.client.Collection(carsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.Car{}, ErrNotFound
	}
	if err != nil {
		return model.Car{}, fmt.Errorf("get car %s: %w", id, err)
	}
	return decodeCar(snap)
}

// GetBySlug resolves a car by its make-model slug. Slugs are derived, not
// stored, so this scans the collection and matches client-side.
func (r *CarRepository) GetBySlug(ctx context.Context, slug string) (model.Car, error) {
	cars, err := r.List(ctx)
	if err != nil {
		return model.Car{}, err
	}
	for _, c := range cars {
		if util.CarSlug(c.Make, c.Model) == slug {
			return c, nil
		}
	}
	return model.Car{}, ErrNotFound
}

// ListFeatured issues the indexed equality query for featured cars. Callers
// needing resilience against a missing index should fall back to List on error.
func (r *CarRepository) ListFeatured(ctx context.Context) ([]model.Car, error) {
	iter := r.client.Collection(carsCollection).
		Where("featured", "==", true).
		Documents(ctx)
	var cars []model.Car
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query featured cars: %w", err)
		}
		car, err := decodeCar(doc)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, nil
}

// Create adds a new car document. Timestamps are server-assigned through the
// serverTimestamp tags on the model. Returns the new document id.
func (r *CarRepository) Create(ctx context.Context, car model.Car) (string, error) {
	ref := r.client.Collection(carsCollection).NewDoc()
	if _, err := ref.Set(ctx, car); err != nil {
		return "", fmt.Errorf("create car: %w", err)
	}
	return ref.ID, nil
}

// Update replaces an existing car document. The caller is expected to carry
// the original CreatedAt; a zero UpdatedAt is refreshed server-side.
func (r *CarRepository) Update(ctx context.Context, car model.Car) error {
	if car.ID == "" {
		return errors.New("car id is required")
	}
	ref := r.client.Collection(carsCollection).Doc(car.ID)
	if _, err := ref.Set(ctx, car); err != nil {
		return fmt.Errorf("update car %s: %w", car.ID, err)
	}
	return nil
}

// SetFeatured flips only the featured flag and refreshes updatedAt.
func (r *CarRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	ref := r.client.Collection(carsCollection).Doc(id)
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "featured", Value: featured},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("set featured on car %s: %w", id, err)
	}
	return nil
}

// Delete removes a car document permanently.
func (r *CarRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(carsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete car %s: %w", id, err)
	}
	return nil
}

func decodeCar(doc *firestore.DocumentSnapshot) (model.Car, error) {
	var car model.Car
	if err := doc.DataTo(&car); err != nil {
		return model.Car{}, fmt.Errorf("decode car %s: %w", doc.Ref.ID, err)
	}
	car.ID = doc.Ref.ID
	return car, nil
}
