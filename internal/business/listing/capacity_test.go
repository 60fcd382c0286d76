package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/apexmotors/dealership-api/pkg/model"
)

type fakeLister struct {
	featured     []model.Car
	all          []model.Car
	featuredErr  error
	listErr      error
	featuredHits int
	listHits     int
}

func (f *fakeLister) ListFeatured(ctx context.Context) ([]model.Car, error) {
	f.featuredHits++
	return f.featured, f.featuredErr
}

func (f *fakeLister) List(ctx context.Context) ([]model.Car, error) {
	f.listHits++
	return f.all, f.listErr
}

func featuredCars(n int) []model.Car {
	cars := make([]model.Car, 0, n)
	for i := 0; i < n; i++ {
		cars = append(cars, model.Car{ID: string(rune('a' + i)), Featured: true})
	}
	return cars
}

func TestCanFeatureShortCircuits(t *testing.T) {
	// Short circuits never touch the store, so even a nil store passes.
	g := NewCapacityGuard(nil, 6)

	ok, err := g.CanFeature(context.Background(), "x", false, false)
	if err != nil || !ok {
		t.Errorf("turning off: (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = g.CanFeature(context.Background(), "x", true, true)
	if err != nil || !ok {
		t.Errorf("already featured: (%v, %v), want (true, nil)", ok, err)
	}
}

func TestCanFeatureBelowCeiling(t *testing.T) {
	store := &fakeLister{featured: featuredCars(5)}
	g := NewCapacityGuard(store, 6)

	ok, err := g.CanFeature(context.Background(), "new-car", true, false)
	if err != nil {
		t.Fatalf("CanFeature: %v", err)
	}
	if !ok {
		t.Error("5 of 6 featured should allow one more")
	}
}

func TestCanFeatureAtCeilingBlocks(t *testing.T) {
	store := &fakeLister{featured: featuredCars(6)}
	g := NewCapacityGuard(store, 6)

	ok, err := g.CanFeature(context.Background(), "new-car", true, false)
	if err != nil {
		t.Fatalf("CanFeature: %v", err)
	}
	if ok {
		t.Error("ceiling reached, toggle must be blocked")
	}
}

func TestCanFeatureExcludesOwnDocument(t *testing.T) {
	cars := featuredCars(6)
	store := &fakeLister{featured: cars}
	g := NewCapacityGuard(store, 6)

	// The car being edited appears in the query result; it must not
	// self-block.
	ok, err := g.CanFeature(context.Background(), cars[0].ID, true, false)
	if err != nil {
		t.Fatalf("CanFeature: %v", err)
	}
	if !ok {
		t.Error("own document should be excluded from the count")
	}
}

func TestCanFeatureFallsBackToFullScan(t *testing.T) {
	all := append(featuredCars(3), model.Car{ID: "plain"})
	store := &fakeLister{featuredErr: errors.New("missing composite index"), all: all}
	g := NewCapacityGuard(store, 6)

	ok, err := g.CanFeature(context.Background(), "new-car", true, false)
	if err != nil {
		t.Fatalf("CanFeature: %v", err)
	}
	if !ok {
		t.Error("3 featured of 6 via fallback scan should allow")
	}
	if store.listHits != 1 {
		t.Errorf("listHits = %d, want exactly one fallback scan", store.listHits)
	}
}

func TestCanFeatureFallbackErrorSurfaces(t *testing.T) {
	store := &fakeLister{
		featuredErr: errors.New("missing index"),
		listErr:     errors.New("store down"),
	}
	g := NewCapacityGuard(store, 6)

	ok, err := g.CanFeature(context.Background(), "x", true, false)
	if err == nil {
		t.Fatal("expected error when both query paths fail")
	}
	if ok {
		t.Error("a failed check must never be treated as allowed")
	}
}

func TestCanFeatureWithoutStore(t *testing.T) {
	g := NewCapacityGuard(nil, 6)
	ok, err := g.CanFeature(context.Background(), "x", true, false)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if ok {
		t.Error("unconfigured store must not allow")
	}
}

func TestCanFeatureConfigurableCeiling(t *testing.T) {
	store := &fakeLister{featured: featuredCars(6)}
	g := NewCapacityGuard(store, 12)

	ok, err := g.CanFeature(context.Background(), "new-car", true, false)
	if err != nil {
		t.Fatalf("CanFeature: %v", err)
	}
	if !ok {
		t.Error("6 of 12 featured should allow")
	}
}
