package catalog

import (
	"sort"

	"github.com/apexmotors/dealership-api/pkg/model"
)

// Similarity scoring weights.
const (
	categoryWeight   = 3
	priceBandWeight  = 2
	makeWeight       = 1
	fuelTypeWeight   = 1
	drivetrainWeight = 1
)

// Score rates how close a candidate is to the reference car. Price earns
// points when within ±20% of the reference (ratio in [0.8, 1.2] inclusive).
func Score(ref, candidate model.Car) int {
	score := 0
	if candidate.Category == ref.Category {
		score += categoryWeight
	}
	if ref.Price > 0 {
		ratio := candidate.Price / ref.Price
		if ratio >= 0.8 && ratio <= 1.2 {
			score += priceBandWeight
		}
	}
	if candidate.Make == ref.Make {
		score += makeWeight
	}
	if candidate.FuelType == ref.FuelType {
		score += fuelTypeWeight
	}
	if candidate.Specs.Drivetrain == ref.Specs.Drivetrain {
		score += drivetrainWeight
	}
	return score
}

// Rank returns the top limit candidates by descending similarity score.
// The reference car never appears in the result, ties keep the original
// collection order, and the input slice is not mutated.
func Rank(ref model.Car, candidates []model.Car, limit int) []model.Car {
	if limit <= 0 {
		return nil
	}

	type scored struct {
		car   model.Car
		score int
	}
	pool := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == ref.ID {
			continue
		}
		pool = append(pool, scored{car: c, score: Score(ref, c)})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].score > pool[j].score
	})

	if limit > len(pool) {
		limit = len(pool)
	}
	result := make([]model.Car, 0, limit)
	for _, s := range pool[:limit] {
		result = append(result, s.car)
	}
	return result
}
