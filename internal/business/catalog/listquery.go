package catalog

import (
	"sort"
	"strings"

	"github.com/apexmotors/dealership-api/pkg/model"
)

// SortField names a sortable car column.
type SortField string

const (
	SortNone   SortField = ""
	SortMake   SortField = "make"
	SortStatus SortField = "status"
	SortYear   SortField = "year"
	SortPrice  SortField = "price"
)

// SortDir is the sort direction; empty means unsorted.
type SortDir string

const (
	DirNone SortDir = ""
	DirAsc  SortDir = "asc"
	DirDesc SortDir = "desc"
)

// SortState is the tri-state sort selection of the cars list.
type SortState struct {
	Field SortField `json:"field"`
	Dir   SortDir   `json:"dir"`
}

// Toggle advances the sort state for a header click: repeated clicks on the
// same field cycle asc → desc → unsorted, a different field resets to asc.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field != field {
		return SortState{Field: field, Dir: DirAsc}
	}
	switch s.Dir {
	case DirAsc:
		return SortState{Field: field, Dir: DirDesc}
	case DirDesc:
		return SortState{}
	default:
		return SortState{Field: field, Dir: DirAsc}
	}
}

// ListQuery is the client-side filter + sort applied to a fetched collection.
type ListQuery struct {
	Status string
	Sort   SortState
}

// statusRank orders available < reserved < sold.
func statusRank(status string) int {
	switch status {
	case model.StatusAvailable:
		return 1
	case model.StatusReserved:
		return 2
	case model.StatusSold:
		return 3
	default:
		return 4
	}
}

func compare(field SortField, a, b model.Car) int {
	switch field {
	case SortMake:
		return strings.Compare(strings.ToLower(a.Make), strings.ToLower(b.Make))
	case SortStatus:
		return statusRank(a.Status) - statusRank(b.Status)
	case SortYear:
		return a.Year - b.Year
	case SortPrice:
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// Apply filters by status (unless "all" or empty) and sorts per the current
// sort state. An unsorted state preserves the original fetch order. The input
// slice is never mutated.
func (q ListQuery) Apply(cars []model.Car) []model.Car {
	out := make([]model.Car, 0, len(cars))
	for _, c := range cars {
		if q.Status != "" && q.Status != "all" && c.Status != q.Status {
			continue
		}
		out = append(out, c)
	}

	if q.Sort.Field == SortNone || q.Sort.Dir == DirNone {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(q.Sort.Field, out[i], out[j])
		if q.Sort.Dir == DirDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// FilterByCategory keeps cars whose category matches (empty keeps all).
func FilterByCategory(cars []model.Car, category string) []model.Car {
	if category == "" || category == "all" {
		return cars
	}
	out := make([]model.Car, 0, len(cars))
	for _, c := range cars {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}
