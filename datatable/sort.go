package datatable

import (
	"fmt"
	"slices"
	"strings"
)

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// Ascending orders smallest first.
	Ascending SortDirection = iota
	// Descending orders largest first.
	Descending
)

// String returns the query-string form of the direction ("asc" or "desc").
func (d SortDirection) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// ParseSortDirection parses "asc"/"desc" (case-insensitive). Anything else
// is Ascending.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Descending
	}
	return Ascending
}

// SortSpec names the column the data is ordered by. An empty Column means
// unsorted: records keep their source order.
type SortSpec struct {
	Column    ColumnKey
	Direction SortDirection
}

// IsSorted reports whether a column is selected.
func (s SortSpec) IsSorted() bool {
	return s.Column != ""
}

// SortState tracks the active SortSpec.
//
// Transitions:
//
//	Unsorted       --Toggle(c)--> (c, Ascending)
//	(c, dir)       --Toggle(c)--> (c, dir.Flip())
//	(c, dir)       --Toggle(c2)-> (c2, Ascending)
type SortState struct {
	Observable[SortSpec]
	spec        SortSpec
	defaultSpec SortSpec
}

// NewSortState returns a SortState starting at def. Pass the zero SortSpec
// to start unsorted.
func NewSortState(def SortSpec) *SortState {
	return &SortState{spec: def, defaultSpec: def}
}

// Spec returns the current sort specification.
func (s *SortState) Spec() SortSpec {
	return s.spec
}

// Toggle applies a click on the header of column key.
func (s *SortState) Toggle(key ColumnKey) SortSpec {
	if s.spec.Column == key && key != "" {
		s.spec.Direction = s.spec.Direction.Flip()
	} else {
		s.spec = SortSpec{Column: key, Direction: Ascending}
	}
	s.notify(s.spec)
	return s.spec
}

// Set replaces the specification, e.g. when restoring it from a query string.
func (s *SortState) Set(spec SortSpec) {
	if s.spec == spec {
		return
	}
	s.spec = spec
	s.notify(s.spec)
}

// Reset returns to the default specification.
func (s *SortState) Reset() {
	s.Set(s.defaultSpec)
}

// CompareFunc returns a comparator for spec. When the spec is unsorted or the
// column has no comparator, the returned function reports every pair as
// equal so a stable sort leaves the order untouched. Descending swaps the
// arguments.
func CompareFunc[R any](spec SortSpec, reg *ColumnRegistry[R]) func(a, b R) int {
	noop := func(a, b R) int { return 0 }
	if !spec.IsSorted() || reg == nil {
		return noop
	}
	col, ok := reg.Lookup(spec.Column)
	if !ok || col.Compare == nil {
		return noop
	}
	if spec.Direction == Descending {
		return func(a, b R) int { return col.Compare(b, a) }
	}
	return col.Compare
}

// SortRecords returns a stably sorted copy of records.
func SortRecords[R any](records []R, spec SortSpec, reg *ColumnRegistry[R]) []R {
	out := slices.Clone(records)
	slices.SortStableFunc(out, CompareFunc(spec, reg))
	return out
}
