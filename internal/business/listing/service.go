package listing

import (
	"context"
	"strings"
	"time"

	"github.com/apexmotors/dealership-api/pkg/model"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// CarStore is the document-store surface the listing workflows depend on.
// *repository.CarRepository satisfies it; tests plug in fakes.
type CarStore interface {
	GetByID(ctx context.Context, id string) (model.Car, error)
	List(ctx context.Context) ([]model.Car, error)
	ListFeatured(ctx context.Context) ([]model.Car, error)
	Create(ctx context.Context, car model.Car) (string, error)
	Update(ctx context.Context, car model.Car) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	Delete(ctx context.Context, id string) error
}

const (
	sessionTTL     = 45 * time.Minute
	sessionCleanup = 10 * time.Minute
)

// Service ties the car store, the uploader and the capacity guard into the
// admin listing workflows: form sessions, featured toggles, deletes.
type Service struct {
	store    CarStore
	uploader Uploader
	guard    *CapacityGuard
	sessions *cache.Cache
}

// NewService creates the listing service. A nil store or uploader puts the
// service in not-configured mode: reads and writes fail with ErrNotConfigured.
func NewService(store CarStore, uploader Uploader, guard *CapacityGuard) *Service {
	return &Service{
		store:    store,
		uploader: uploader,
		guard:    guard,
		sessions: cache.New(sessionTTL, sessionCleanup),
	}
}

// Guard exposes the capacity guard (for the ceiling in messages).
func (s *Service) Guard() *CapacityGuard {
	return s.guard
}

// Cars loads the full collection for the admin list.
func (s *Service) Cars(ctx context.Context) ([]model.Car, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}
	return s.store.List(ctx)
}

// Car loads one record.
func (s *Service) Car(ctx context.Context, id string) (model.Car, error) {
	if s.store == nil {
		return model.Car{}, ErrNotConfigured
	}
	return s.store.GetByID(ctx, id)
}

// DeleteCar removes a listing permanently. No soft delete.
func (s *Service) DeleteCar(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrNotConfigured
	}
	return s.store.Delete(ctx, id)
}

// ToggleFeatured is the dashboard bulk-toggle path. It runs the same guard
// as the form save, so there is one ceiling, not two.
func (s *Service) ToggleFeatured(ctx context.Context, carID string, featured bool) error {
	if s.store == nil {
		return ErrNotConfigured
	}
	car, err := s.store.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	ok, err := s.guard.CanFeature(ctx, carID, featured, car.Featured)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFeaturedLimit
	}
	return s.store.SetFeatured(ctx, carID, featured)
}

// OpenForm starts a form session: with carID it loads the record and records
// the original featured flag, without it the static defaults apply.
func (s *Service) OpenForm(ctx context.Context, carID string) (Snapshot, error) {
	id := uuid.NewString()
	var sess *FormSession
	if carID != "" {
		if s.store == nil {
			return Snapshot{}, ErrNotConfigured
		}
		car, err := s.store.GetByID(ctx, carID)
		if err != nil {
			return Snapshot{}, err
		}
		sess = loadFormSession(id, car, s.uploader)
	} else {
		sess = newFormSession(id, s.uploader)
	}
	s.sessions.SetDefault(id, sess)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

func (s *Service) session(id string) (*FormSession, error) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess := v.(*FormSession)
	// Touch to extend the TTL while the form is actively used.
	s.sessions.SetDefault(id, sess)
	return sess, nil
}

// withSession runs fn under the session lock and returns a fresh snapshot.
func (s *Service) withSession(id string, fn func(*FormSession) error) (Snapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := fn(sess); err != nil {
		return sess.snapshot(), err
	}
	return sess.snapshot(), nil
}

// Form returns the current session state.
func (s *Service) Form(id string) (Snapshot, error) {
	return s.withSession(id, func(*FormSession) error { return nil })
}

// UpdateDraft replaces the draft fields wholesale.
func (s *Service) UpdateDraft(id string, draft model.CarDraft) (Snapshot, error) {
	return s.withSession(id, func(sess *FormSession) error {
		sess.Draft = draft
		sess.State = StateEditing
		return nil
	})
}

// AddImages uploads new files through the session's image set.
func (s *Service) AddImages(ctx context.Context, id string, files []PendingFile) (Snapshot, error) {
	return s.withSession(id, func(sess *FormSession) error {
		return sess.Images.AddFiles(ctx, files)
	})
}

// ReorderImage applies a drag-and-drop move.
func (s *Service) ReorderImage(id string, from, to int) (Snapshot, error) {
	return s.withSession(id, func(sess *FormSession) error {
		sess.Images.Reorder(from, to)
		return nil
	})
}

// PromoteImage makes the image at index the primary one.
func (s *Service) PromoteImage(id string, index int) (Snapshot, error) {
	return s.withSession(id, func(sess *FormSession) error {
		sess.Images.PromoteToPrimary(index)
		return nil
	})
}

// MoveImageUp swaps the image with its predecessor.
func (s *Service) MoveImageUp(id string, index int) (Snapshot, error) {
	return s.withSession(id, func(sess *FormSession) error {
		sess.Images.MoveUp(index)
		return nil
	})
}

// MoveImageDown swaps the image with its successor.
func (s *Service) MoveImageDown(id string, index int) (Snapshot, error) {
	return s.withSession(id, func(sess *FormSession) error {
		sess.Images.MoveDown(index)
		return nil
	})
}

// RequestImageRemoval marks an image for deletion pending confirmation.
func (s *Service) RequestImageRemoval(id string, index int) (Snapshot, error) {
	return s.withSession(id, func(sess *FormSession) error {
		sess.Images.RequestRemoval(index)
		return nil
	})
}

// ConfirmImageRemoval drops the marked image reference.
func (s *Service) ConfirmImageRemoval(id string) (Snapshot, error) {
	return s.withSession(id, func(sess *FormSession) error {
		sess.Images.ConfirmRemoval()
		return nil
	})
}

// CancelImageRemoval closes the confirmation without mutating the list.
func (s *Service) CancelImageRemoval(id string) (Snapshot, error) {
	return s.withSession(id, func(sess *FormSession) error {
		sess.Images.CancelRemoval()
		return nil
	})
}

// Preview validates make and model, arms the return autosave, and builds the
// throwaway car the preview page renders. Pending local previews are
// preferred over persisted URLs.
func (s *Service) Preview(id, returnTo string) (model.Car, string, error) {
	sess, err := s.session(id)
	if err != nil {
		return model.Car{}, "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	var verr model.ValidationError
	if strings.TrimSpace(sess.Draft.Make) == "" {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "make", Reason: "required"})
	}
	if strings.TrimSpace(sess.Draft.Model) == "" {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "model", Reason: "required"})
	}
	if len(verr.Fields) > 0 {
		return model.Car{}, "", &verr
	}

	sess.autosavePending = true
	sess.returnTo = returnTo
	return sess.previewCar(), returnTo, nil
}

// Save runs the guarded write: validation, capacity check, then create or
// update. A blocked or failed save leaves the session editable for retry and
// never touches the store.
func (s *Service) Save(ctx context.Context, id string) (model.Car, error) {
	sess, err := s.session(id)
	if err != nil {
		return model.Car{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.saveLocked(ctx, sess)
}

func (s *Service) saveLocked(ctx context.Context, sess *FormSession) (model.Car, error) {
	if s.store == nil {
		return model.Car{}, ErrNotConfigured
	}

	sess.State = StateValidating
	car, verr := sess.Draft.ToCar()
	if verr != nil {
		sess.State = StateEditing
		return model.Car{}, verr
	}

	ok, err := s.guard.CanFeature(ctx, sess.CarID, car.Featured, sess.originalFeatured)
	if err != nil {
		sess.State = StateEditing
		return model.Car{}, err
	}
	if !ok {
		sess.State = StateEditing
		return model.Car{}, ErrFeaturedLimit
	}

	sess.State = StateSaving
	car.Images = sess.Images.URLs()

	if sess.CarID == "" {
		newID, err := s.store.Create(ctx, car)
		if err != nil {
			sess.State = StateEditing
			return model.Car{}, err
		}
		car.ID = newID
		sess.CarID = newID
	} else {
		car.ID = sess.CarID
		car.CreatedAt = sess.originalCreatedAt
		if err := s.store.Update(ctx, car); err != nil {
			sess.State = StateEditing
			return model.Car{}, err
		}
	}

	sess.State = StateSaved
	sess.originalFeatured = car.Featured
	sess.originalCreatedAt = car.CreatedAt
	return car, nil
}

// CloseForm discards a session without saving, like navigating away.
func (s *Service) CloseForm(id string) {
	s.sessions.Delete(id)
}

// Resume handles re-entry from a preview round trip. If the autosave flag is
// armed it saves exactly once and clears the flag first, so a second
// back-navigation is a no-op.
func (s *Service) Resume(ctx context.Context, id string) (bool, model.Car, error) {
	sess, err := s.session(id)
	if err != nil {
		return false, model.Car{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.autosavePending {
		return false, model.Car{}, nil
	}
	sess.autosavePending = false
	sess.returnTo = ""

	car, err := s.saveLocked(ctx, sess)
	return true, car, err
}
