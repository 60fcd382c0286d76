package catalog

import (
	"testing"

	"github.com/apexmotors/dealership-api/pkg/model"
)

func refCar() model.Car {
	return model.Car{
		ID: "ref", Make: "Porsche", Category: "luxury", Price: 200000,
		FuelType: model.FuelGasoline, Specs: model.Specs{Drivetrain: "AWD"},
	}
}

func TestScore(t *testing.T) {
	ref := refCar()

	tests := []struct {
		name      string
		candidate model.Car
		want      int
	}{
		{
			// category(3) + price band(2) + make(1) + fuel(1) = 7
			"close match",
			model.Car{ID: "a", Make: "Porsche", Category: "luxury", Price: 210000,
				FuelType: model.FuelGasoline, Specs: model.Specs{Drivetrain: "RWD"}},
			7,
		},
		{
			// drivetrain only
			"distant match",
			model.Car{ID: "b", Make: "Audi", Category: "suv", Price: 500000,
				FuelType: model.FuelDiesel, Specs: model.Specs{Drivetrain: "AWD"}},
			1,
		},
		{
			"price at lower band edge",
			model.Car{ID: "c", Make: "Ferrari", Category: "supercar", Price: 160000,
				FuelType: model.FuelHybrid, Specs: model.Specs{Drivetrain: "RWD"}},
			2,
		},
		{
			"price at upper band edge",
			model.Car{ID: "d", Make: "Ferrari", Category: "supercar", Price: 240000,
				FuelType: model.FuelHybrid, Specs: model.Specs{Drivetrain: "RWD"}},
			2,
		},
		{
			"price just outside band",
			model.Car{ID: "e", Make: "Ferrari", Category: "supercar", Price: 240001,
				FuelType: model.FuelHybrid, Specs: model.Specs{Drivetrain: "RWD"}},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(ref, tt.candidate); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRankPicksBestCandidate(t *testing.T) {
	ref := refCar()
	a := model.Car{ID: "a", Make: "Porsche", Category: "luxury", Price: 210000,
		FuelType: model.FuelGasoline, Specs: model.Specs{Drivetrain: "RWD"}}
	b := model.Car{ID: "b", Make: "Audi", Category: "suv", Price: 500000,
		FuelType: model.FuelDiesel, Specs: model.Specs{Drivetrain: "AWD"}}

	got := Rank(ref, []model.Car{a, b}, 1)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("Rank = %+v, want [a]", got)
	}
}

func TestRankExcludesReferenceAndBoundsLength(t *testing.T) {
	ref := refCar()
	candidates := []model.Car{ref,
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}

	for _, limit := range []int{0, 1, 2, 3, 10} {
		got := Rank(ref, candidates, limit)
		wantLen := limit
		if wantLen > 3 {
			wantLen = 3
		}
		if len(got) != wantLen {
			t.Errorf("limit %d: len = %d, want %d", limit, len(got), wantLen)
		}
		for _, c := range got {
			if c.ID == ref.ID {
				t.Errorf("limit %d: reference car leaked into result", limit)
			}
		}
	}
}

func TestRankTiesKeepCollectionOrder(t *testing.T) {
	ref := refCar()
	// All candidates score identically (zero).
	candidates := []model.Car{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	got := Rank(ref, candidates, 3)
	for i, want := range []string{"x", "y", "z"} {
		if got[i].ID != want {
			t.Fatalf("tie order broken: got %v", got)
		}
	}
}
