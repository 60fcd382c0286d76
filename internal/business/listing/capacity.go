package listing

import (
	"context"

	"github.com/apexmotors/dealership-api/internal/platform/logging"
	"github.com/apexmotors/dealership-api/pkg/model"
)

// FeaturedLister is the slice of the car store the capacity guard needs.
type FeaturedLister interface {
	// ListFeatured runs the indexed featured==true equality query.
	ListFeatured(ctx context.Context) ([]model.Car, error)
	// List loads the whole collection, used as the fallback scan.
	List(ctx context.Context) ([]model.Car, error)
}

// CapacityGuard enforces the global ceiling on cars flagged featured. The
// check-then-write is not transactional: two concurrent writers can each pass
// the guard and jointly exceed the ceiling by one. Accepted race.
type CapacityGuard struct {
	store FeaturedLister
	limit int
}

// NewCapacityGuard creates a guard with the configured ceiling.
func NewCapacityGuard(store FeaturedLister, limit int) *CapacityGuard {
	if limit <= 0 {
		limit = 6
	}
	return &CapacityGuard{store: store, limit: limit}
}

// Limit returns the configured ceiling.
func (g *CapacityGuard) Limit() int {
	return g.limit
}

// CanFeature decides whether a write may set featured=true on carID.
// Turning the flag off, or a record that already carries it, never needs a
// capacity check. Store unavailability is a distinct failure, never "allowed".
func (g *CapacityGuard) CanFeature(ctx context.Context, carID string, wantsFeatured, wasAlreadyFeatured bool) (bool, error) {
	if !wantsFeatured || wasAlreadyFeatured {
		return true, nil
	}
	if g.store == nil {
		return false, ErrNotConfigured
	}

	featured, err := g.store.ListFeatured(ctx)
	if err != nil {
		// Typically a missing composite index. Scan the collection and
		// filter client-side instead.
		logging.L().Warnw("featured query failed, falling back to full scan", "error", err)
		all, scanErr := g.store.List(ctx)
		if scanErr != nil {
			return false, scanErr
		}
		featured = featured[:0]
		for _, c := range all {
			if c.Featured {
				featured = append(featured, c)
			}
		}
	}

	count := 0
	for _, c := range featured {
		if carID != "" && c.ID == carID {
			continue
		}
		count++
	}
	return count < g.limit, nil
}
