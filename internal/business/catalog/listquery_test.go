package catalog

import (
	"testing"

	"github.com/apexmotors/dealership-api/pkg/model"
	"github.com/stretchr/testify/assert"
)

func testCars() []model.Car {
	return []model.Car{
		{ID: "1", Make: "porsche", Year: 2020, Price: 150000, Status: model.StatusSold},
		{ID: "2", Make: "Audi", Year: 2023, Price: 90000, Status: model.StatusAvailable},
		{ID: "3", Make: "BMW", Year: 2021, Price: 110000, Status: model.StatusReserved},
		{ID: "4", Make: "audi", Year: 2019, Price: 60000, Status: model.StatusAvailable},
	}
}

func ids(cars []model.Car) []string {
	out := make([]string, 0, len(cars))
	for _, c := range cars {
		out = append(out, c.ID)
	}
	return out
}

func TestToggleCycle(t *testing.T) {
	s := SortState{}

	s = s.Toggle(SortYear)
	assert.Equal(t, SortState{Field: SortYear, Dir: DirAsc}, s)

	s = s.Toggle(SortYear)
	assert.Equal(t, SortState{Field: SortYear, Dir: DirDesc}, s)

	s = s.Toggle(SortYear)
	assert.Equal(t, SortState{}, s, "third click returns to unsorted")
}

func TestToggleDifferentFieldResetsToAsc(t *testing.T) {
	s := SortState{Field: SortYear, Dir: DirDesc}
	s = s.Toggle(SortPrice)
	assert.Equal(t, SortState{Field: SortPrice, Dir: DirAsc}, s)
}

func TestApplyStatusFilter(t *testing.T) {
	cars := testCars()

	assert.Equal(t, []string{"2", "4"}, ids(ListQuery{Status: model.StatusAvailable}.Apply(cars)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(ListQuery{Status: "all"}.Apply(cars)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(ListQuery{}.Apply(cars)))
}

func TestApplySortComparators(t *testing.T) {
	cars := testCars()

	tests := []struct {
		name string
		sort SortState
		want []string
	}{
		{"make asc is case-insensitive", SortState{SortMake, DirAsc}, []string{"2", "4", "3", "1"}},
		{"status rank", SortState{SortStatus, DirAsc}, []string{"2", "4", "3", "1"}},
		{"year desc", SortState{SortYear, DirDesc}, []string{"2", "3", "1", "4"}},
		{"price asc", SortState{SortPrice, DirAsc}, []string{"4", "2", "3", "1"}},
		{"unsorted keeps fetch order", SortState{}, []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ListQuery{Sort: tt.sort}.Apply(cars)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	cars := testCars()
	_ = ListQuery{Sort: SortState{SortPrice, DirDesc}}.Apply(cars)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(cars))
}

func TestApplyStableForEqualKeys(t *testing.T) {
	cars := []model.Car{
		{ID: "a", Make: "Audi", Status: model.StatusAvailable},
		{ID: "b", Make: "AUDI", Status: model.StatusAvailable},
		{ID: "c", Make: "audi", Status: model.StatusAvailable},
	}
	got := ListQuery{Sort: SortState{SortMake, DirAsc}}.Apply(cars)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}
