package listing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/apexmotors/dealership-api/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	cars map[string]model.Car

	nextID  int
	creates int
	updates int
	toggles int
	updErr  error
}

func newFakeStore(cars ...model.Car) *fakeStore {
	f := &fakeStore{cars: make(map[string]model.Car)}
	for _, c := range cars {
		f.cars[c.ID] = c
	}
	return f
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (model.Car, error) {
	c, ok := f.cars[id]
	if !ok {
		return model.Car{}, errors.New("not found")
	}
	return c, nil
}

func (f *fakeStore) List(ctx context.Context) ([]model.Car, error) {
	out := make([]model.Car, 0, len(f.cars))
	for _, c := range f.cars {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) ListFeatured(ctx context.Context) ([]model.Car, error) {
	var out []model.Car
	for _, c := range f.cars {
		if c.Featured {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, car model.Car) (string, error) {
	f.creates++
	f.nextID++
	id := fmt.Sprintf("car-%d", f.nextID)
	car.ID = id
	car.CreatedAt = time.Now().UTC()
	car.UpdatedAt = car.CreatedAt
	f.cars[id] = car
	return id, nil
}

func (f *fakeStore) Update(ctx context.Context, car model.Car) error {
	f.updates++
	if f.updErr != nil {
		return f.updErr
	}
	car.UpdatedAt = time.Now().UTC()
	f.cars[car.ID] = car
	return nil
}

func (f *fakeStore) SetFeatured(ctx context.Context, id string, featured bool) error {
	f.toggles++
	c, ok := f.cars[id]
	if !ok {
		return errors.New("not found")
	}
	c.Featured = featured
	f.cars[id] = c
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	delete(f.cars, id)
	return nil
}

func (f *fakeStore) featuredCount() int {
	n := 0
	for _, c := range f.cars {
		if c.Featured {
			n++
		}
	}
	return n
}

func validDraft() model.CarDraft {
	return model.CarDraft{
		Make: "Porsche", Model: "911", Year: 2023, Price: 180000, Mileage: 5000,
		FuelType: model.FuelGasoline, Transmission: "PDK", Status: model.StatusAvailable,
		Category: "luxury",
	}
}

func newTestService(store *fakeStore, limit int) *Service {
	return NewService(store, &mockUploader{}, NewCapacityGuard(store, limit))
}

func TestOpenFormDefaults(t *testing.T) {
	svc := newTestService(newFakeStore(), 6)

	snap, err := svc.OpenForm(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, StateEditing, snap.State)
	assert.Equal(t, time.Now().Year(), snap.Draft.Year)
	assert.Equal(t, model.StatusAvailable, snap.Draft.Status)
	assert.Equal(t, "luxury", snap.Draft.Category)
	assert.Empty(t, snap.Draft.Make)
	assert.Empty(t, snap.Images)
}

func TestOpenFormSeedsFromExistingCar(t *testing.T) {
	existing := model.Car{
		ID: "c1", Make: "Audi", Model: "RS6", Year: 2022, Price: 130000,
		FuelType: model.FuelGasoline, Status: model.StatusAvailable,
		Featured: true, Images: []string{"u1", "u2"},
	}
	svc := newTestService(newFakeStore(existing), 6)

	snap, err := svc.OpenForm(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "c1", snap.CarID)
	assert.Equal(t, "Audi", snap.Draft.Make)
	assert.Equal(t, []string{"u1", "u2"}, snap.Images)
	assert.True(t, snap.Draft.Featured)
}

func TestSaveCreatesNewCar(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, 6)

	snap, err := svc.OpenForm(context.Background(), "")
	require.NoError(t, err)
	_, err = svc.UpdateDraft(snap.ID, validDraft())
	require.NoError(t, err)

	car, err := svc.Save(context.Background(), snap.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, car.ID)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 0, store.updates)
}

func TestSaveValidationListsEveryBadField(t *testing.T) {
	svc := newTestService(newFakeStore(), 6)
	snap, _ := svc.OpenForm(context.Background(), "")

	// Empty make/model, bad fuel type, negative price.
	draft := validDraft()
	draft.Make = ""
	draft.Model = " "
	draft.FuelType = "Steam"
	draft.Price = -1
	_, err := svc.UpdateDraft(snap.ID, draft)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), snap.ID)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"make", "model", "fuelType", "price"}, fields)

	// The failed save leaves the session editable for a retry.
	form, err := svc.Form(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, StateEditing, form.State)
}

func TestSaveBlockedByCapacityGuardLeavesStoreUntouched(t *testing.T) {
	store := newFakeStore(
		model.Car{ID: "f1", Featured: true},
		model.Car{ID: "f2", Featured: true},
	)
	svc := newTestService(store, 2)

	snap, _ := svc.OpenForm(context.Background(), "")
	draft := validDraft()
	draft.Featured = true
	_, _ = svc.UpdateDraft(snap.ID, draft)

	_, err := svc.Save(context.Background(), snap.ID)
	require.ErrorIs(t, err, ErrFeaturedLimit)

	assert.Equal(t, 0, store.creates, "no document write may occur on rejection")
	assert.Equal(t, 0, store.updates)
	assert.Equal(t, 2, store.featuredCount())
}

func TestSaveEditDoesNotSelfBlock(t *testing.T) {
	store := newFakeStore(
		model.Car{ID: "f1", Make: "Audi", Model: "RS6", Year: 2022, Price: 130000,
			Mileage: 1, FuelType: model.FuelGasoline, Status: model.StatusAvailable,
			Featured: true},
		model.Car{ID: "f2", Featured: true},
	)
	svc := newTestService(store, 2)

	// Editing an already-featured car at the ceiling must still save.
	snap, err := svc.OpenForm(context.Background(), "f1")
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.updates)
}

func TestSaveStoreErrorAllowsRetry(t *testing.T) {
	store := newFakeStore(model.Car{
		ID: "c1", Make: "Audi", Model: "RS6", Year: 2022, Price: 130000,
		Mileage: 1, FuelType: model.FuelGasoline, Status: model.StatusAvailable,
	})
	svc := newTestService(store, 6)

	snap, _ := svc.OpenForm(context.Background(), "c1")

	store.updErr = errors.New("deadline exceeded")
	_, err := svc.Save(context.Background(), snap.ID)
	require.Error(t, err)

	form, err := svc.Form(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, StateEditing, form.State)

	store.updErr = nil
	_, err = svc.Save(context.Background(), snap.ID)
	require.NoError(t, err)
}

func TestPreviewRequiresMakeAndModel(t *testing.T) {
	svc := newTestService(newFakeStore(), 6)
	snap, _ := svc.OpenForm(context.Background(), "")

	_, _, err := svc.Preview(snap.ID, "/admin/cars/new")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	// A blocked preview must not arm the autosave.
	form, _ := svc.Form(snap.ID)
	assert.False(t, form.AutosavePending)
}

func TestPreviewPrefersPendingLocalImages(t *testing.T) {
	store := newFakeStore(model.Car{
		ID: "c1", Make: "Audi", Model: "RS6", Year: 2022, Price: 130000,
		Mileage: 1, FuelType: model.FuelGasoline, Status: model.StatusAvailable,
		Images: []string{"persisted-1"},
	})
	// Uploader that always fails keeps the files in the pending buffer.
	svc := NewService(store, &mockUploader{failOn: ".jpg"}, NewCapacityGuard(store, 6))

	snap, _ := svc.OpenForm(context.Background(), "c1")
	_, _ = svc.AddImages(context.Background(), snap.ID, []PendingFile{pf("new.jpg")})

	car, returnTo, err := svc.Preview(snap.ID, "/admin/cars/c1/edit")
	require.NoError(t, err)

	assert.Equal(t, model.PreviewID, car.ID)
	assert.Equal(t, []string{"blob:new.jpg"}, car.Images)
	assert.Equal(t, "/admin/cars/c1/edit", returnTo)
}

func TestResumeAutosavesExactlyOnce(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, 6)

	snap, _ := svc.OpenForm(context.Background(), "")
	_, _ = svc.UpdateDraft(snap.ID, validDraft())

	_, _, err := svc.Preview(snap.ID, "/admin/cars/new")
	require.NoError(t, err)

	saved, car, err := svc.Resume(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.NotEmpty(t, car.ID)
	assert.Equal(t, 1, store.creates)

	// A second back-navigation must not save again.
	saved, _, err = svc.Resume(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, 1, store.creates)
}

func TestResumeWithoutPreviewIsNoOp(t *testing.T) {
	svc := newTestService(newFakeStore(), 6)
	snap, _ := svc.OpenForm(context.Background(), "")

	saved, _, err := svc.Resume(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestToggleFeaturedAtCeiling(t *testing.T) {
	store := newFakeStore(
		model.Car{ID: "f1", Featured: true},
		model.Car{ID: "f2", Featured: true},
		model.Car{ID: "plain"},
	)
	svc := newTestService(store, 2)

	err := svc.ToggleFeatured(context.Background(), "plain", true)
	require.ErrorIs(t, err, ErrFeaturedLimit)
	assert.Equal(t, 0, store.toggles, "rejection must not write")
	assert.Equal(t, 2, store.featuredCount())

	// Turning a featured car off always passes and frees a slot.
	require.NoError(t, svc.ToggleFeatured(context.Background(), "f1", false))
	require.NoError(t, svc.ToggleFeatured(context.Background(), "plain", true))
	assert.Equal(t, 2, store.featuredCount())
}

func TestServiceWithoutStore(t *testing.T) {
	svc := NewService(nil, nil, NewCapacityGuard(nil, 6))

	_, err := svc.Cars(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	err = svc.ToggleFeatured(context.Background(), "x", true)
	assert.ErrorIs(t, err, ErrNotConfigured)

	snap, err := svc.OpenForm(context.Background(), "")
	require.NoError(t, err, "a blank form can open without a store")
	_, err = svc.Save(context.Background(), snap.ID)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSessionExpiryDiscardsForm(t *testing.T) {
	svc := newTestService(newFakeStore(), 6)
	snap, _ := svc.OpenForm(context.Background(), "")

	svc.CloseForm(snap.ID)
	_, err := svc.Form(snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
