package model

import (
	"fmt"
	"strings"
)

// CarDraft is the mutable form state for one add/edit session. Fields are
// collected free-form and only converted into a Car through ToCar, which
// reports every missing or invalid field at once.
type CarDraft struct {
	Make              string  `json:"make"`
	Model             string  `json:"model"`
	Year              int     `json:"year"`
	Price             float64 `json:"price"`
	Mileage           int     `json:"mileage"`
	FuelType          string  `json:"fuelType"`
	Transmission      string  `json:"transmission"`
	Status            string  `json:"status"`
	Category          string  `json:"category"`
	Featured          bool    `json:"featured"`
	ShowFinancedPrice bool    `json:"showFinancedPrice"`
	Description       string  `json:"description"`
	Specs             Specs   `json:"specs"`
	ParallaxHeadline  string  `json:"parallaxHeadline"`
	ParallaxSubtext   string  `json:"parallaxSubtext"`
}

// FieldError names one invalid draft field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every field problem found in a draft.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "invalid car: " + strings.Join(parts, "; ")
}

func validFuelType(ft string) bool {
	switch ft {
	case FuelGasoline, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}

// ToCar validates the draft and converts it into a Car. Images, identity and
// timestamps are owned by the caller and left zero here. On failure the
// returned *ValidationError lists every offending field.
func (d CarDraft) ToCar() (Car, *ValidationError) {
	var verr ValidationError
	add := func(field, reason string) {
		verr.Fields = append(verr.Fields, FieldError{Field: field, Reason: reason})
	}

	if strings.TrimSpace(d.Make) == "" {
		add("make", "required")
	}
	if strings.TrimSpace(d.Model) == "" {
		add("model", "required")
	}
	if d.Year < 1900 {
		add("year", "must be 1900 or later")
	}
	if d.Price < 0 {
		add("price", "must not be negative")
	}
	if d.Mileage < 0 {
		add("mileage", "must not be negative")
	}
	if !validFuelType(d.FuelType) {
		add("fuelType", "must be one of Gasoline, Diesel, Electric, Hybrid")
	}
	if !validStatus(d.Status) {
		add("status", "must be one of available, reserved, sold")
	}

	if len(verr.Fields) > 0 {
		return Car{}, &verr
	}

	return Car{
		Make:              strings.TrimSpace(d.Make),
		Model:             strings.TrimSpace(d.Model),
		Year:              d.Year,
		Price:             d.Price,
		Mileage:           d.Mileage,
		FuelType:          d.FuelType,
		Transmission:      d.Transmission,
		Status:            d.Status,
		Category:          d.Category,
		Featured:          d.Featured,
		ShowFinancedPrice: d.ShowFinancedPrice,
		Description:       d.Description,
		Specs:             d.Specs,
		ParallaxHeadline:  d.ParallaxHeadline,
		ParallaxSubtext:   d.ParallaxSubtext,
	}, nil
}

// DraftFromCar seeds a form draft from an existing record.
func DraftFromCar(c Car) CarDraft {
	return CarDraft{
		Make:              c.Make,
		Model:             c.Model,
		Year:              c.Year,
		Price:             c.Price,
		Mileage:           c.Mileage,
		FuelType:          c.FuelType,
		Transmission:      c.Transmission,
		Status:            c.Status,
		Category:          c.Category,
		Featured:          c.Featured,
		ShowFinancedPrice: c.ShowFinancedPrice,
		Description:       c.Description,
		Specs:             c.Specs,
		ParallaxHeadline:  c.ParallaxHeadline,
		ParallaxSubtext:   c.ParallaxSubtext,
	}
}
