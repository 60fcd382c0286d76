package listing

import (
	"sync"
	"time"

	"github.com/apexmotors/dealership-api/pkg/model"
)

// FormState tracks where a form session is in its lifecycle.
type FormState string

const (
	StateLoading    FormState = "loading"
	StateEditing    FormState = "editing"
	StateValidating FormState = "validating"
	StateSaving     FormState = "saving"
	StateSaved      FormState = "saved"
)

// FormSession owns the full add/edit lifecycle for a single car: the draft
// fields, the image set, and the original featured flag needed by the
// capacity guard. Sessions are discarded on expiry, the server-side
// equivalent of navigating away without saving.
type FormSession struct {
	mu sync.Mutex

	ID    string
	CarID string

	Draft  model.CarDraft
	Images *ImageSet
	State  FormState

	originalFeatured  bool
	originalCreatedAt time.Time

	// Set by a preview request; consumed exactly once on return so
	// back-navigation cannot loop the autosave.
	autosavePending bool
	returnTo        string
}

// newFormSession seeds a session for a brand-new car with static defaults.
func newFormSession(id string, uploader Uploader) *FormSession {
	return &FormSession{
		ID: id,
		Draft: model.CarDraft{
			Year:     time.Now().Year(),
			Status:   model.StatusAvailable,
			Category: "luxury",
		},
		Images: NewImageSet(uploader, nil),
		State:  StateEditing,
	}
}

// loadFormSession seeds a session from an existing record, keeping the
// original featured flag and creation time for the save path.
func loadFormSession(id string, car model.Car, uploader Uploader) *FormSession {
	return &FormSession{
		ID:                id,
		CarID:             car.ID,
		Draft:             model.DraftFromCar(car),
		Images:            NewImageSet(uploader, car.Images),
		State:             StateEditing,
		originalFeatured:  car.Featured,
		originalCreatedAt: car.CreatedAt,
	}
}

// Snapshot is the session view returned to the admin client.
type Snapshot struct {
	ID              string        `json:"id"`
	CarID           string        `json:"carId,omitempty"`
	State           FormState     `json:"state"`
	Draft           model.CarDraft `json:"draft"`
	Images          []string      `json:"images"`
	Pending         []PendingFile `json:"pendingFiles"`
	RemovalTarget   int           `json:"removalTarget"`
	ConfirmOpen     bool          `json:"confirmOpen"`
	AutosavePending bool          `json:"autosavePending"`
	ReturnTo        string        `json:"returnTo,omitempty"`
}

// snapshot captures the current session state. Callers must hold mu.
func (s *FormSession) snapshot() Snapshot {
	target, open := s.Images.RemovalPending()
	return Snapshot{
		ID:              s.ID,
		CarID:           s.CarID,
		State:           s.State,
		Draft:           s.Draft,
		Images:          s.Images.URLs(),
		Pending:         s.Images.Pending(),
		RemovalTarget:   target,
		ConfirmOpen:     open,
		AutosavePending: s.autosavePending,
		ReturnTo:        s.returnTo,
	}
}

// previewCar builds the throwaway car rendered by the preview page. Pending
// local previews win over persisted URLs so the admin sees what they just
// picked. Callers must hold mu.
func (s *FormSession) previewCar() model.Car {
	// Preview is intentionally lenient: only make/model were validated, the
	// rest renders as-is.
	car := model.Car{
		ID:                model.PreviewID,
		Make:              s.Draft.Make,
		Model:             s.Draft.Model,
		Year:              s.Draft.Year,
		Price:             s.Draft.Price,
		Mileage:           s.Draft.Mileage,
		FuelType:          s.Draft.FuelType,
		Transmission:      s.Draft.Transmission,
		Status:            s.Draft.Status,
		Category:          s.Draft.Category,
		Featured:          s.Draft.Featured,
		ShowFinancedPrice: s.Draft.ShowFinancedPrice,
		Description:       s.Draft.Description,
		Specs:             s.Draft.Specs,
		ParallaxHeadline:  s.Draft.ParallaxHeadline,
		ParallaxSubtext:   s.Draft.ParallaxSubtext,
	}
	if previews := s.Images.PendingPreviews(); len(previews) > 0 {
		car.Images = previews
	} else {
		car.Images = s.Images.URLs()
	}
	now := time.Now().UTC()
	car.CreatedAt = now
	car.UpdatedAt = now
	return car
}
