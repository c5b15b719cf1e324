package datatable

import (
	"cmp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	id   int
	name string
	size int
	note string
}

func (i item) RecordID() int { return i.id }

func itemColumns(t *testing.T) *ColumnRegistry[item] {
	t.Helper()
	reg, err := NewColumnRegistry(
		Column[item]{Key: "name", Title: "Name", Visible: true, SortField: "name",
			Value:   func(i item) string { return i.name },
			Compare: func(a, b item) int { return cmp.Compare(a.name, b.name) }},
		Column[item]{Key: "size", Title: "Size", Visible: true,
			Value:   func(i item) string { return strconv.Itoa(i.size) },
			Compare: func(a, b item) int { return cmp.Compare(a.size, b.size) }},
		Column[item]{Key: "note", Title: "Note", Visible: false,
			Value: func(i item) string { return i.note }},
	)
	if err != nil {
		t.Fatalf("NewColumnRegistry: %v", err)
	}
	return reg
}

func TestSortToggleStateMachine(t *testing.T) {
	s := NewSortState(SortSpec{})
	assert.False(t, s.Spec().IsSorted(), "initial state is unsorted")

	assert.Equal(t, SortSpec{Column: "name", Direction: Ascending}, s.Toggle("name"))
	assert.Equal(t, SortSpec{Column: "name", Direction: Descending}, s.Toggle("name"))
	assert.Equal(t, SortSpec{Column: "name", Direction: Ascending}, s.Toggle("name"),
		"two toggles return to the original direction")

	s.Toggle("name")
	assert.Equal(t, SortSpec{Column: "size", Direction: Ascending}, s.Toggle("size"),
		"another column always starts ascending")
}

func TestSortResetAndSubscribe(t *testing.T) {
	def := SortSpec{Column: "size", Direction: Descending}
	s := NewSortState(def)

	var seen []SortSpec
	s.Subscribe(func(spec SortSpec) { seen = append(seen, spec) })

	s.Toggle("name")
	s.Set(SortSpec{Column: "name", Direction: Ascending}) // unchanged, no notification
	s.Reset()

	assert.Equal(t, def, s.Spec())
	assert.Equal(t, []SortSpec{{Column: "name", Direction: Ascending}, def}, seen)
}

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, Descending, ParseSortDirection("DESC"))
	assert.Equal(t, Ascending, ParseSortDirection("asc"))
	assert.Equal(t, Ascending, ParseSortDirection(""))
	assert.Equal(t, "desc", Descending.String())
}

func TestSortRecords(t *testing.T) {
	reg := itemColumns(t)
	records := []item{
		{id: 1, name: "b", size: 2, note: "x"},
		{id: 2, name: "a", size: 2, note: "y"},
		{id: 3, name: "c", size: 1, note: "z"},
	}

	ids := func(rs []item) []int {
		out := make([]int, len(rs))
		for i, r := range rs {
			out[i] = r.id
		}
		return out
	}

	assert.Equal(t, []int{2, 1, 3}, ids(SortRecords(records, SortSpec{Column: "name"}, reg)))
	assert.Equal(t, []int{3, 1, 2}, ids(SortRecords(records, SortSpec{Column: "name", Direction: Descending}, reg)))
	assert.Equal(t, []int{3, 1, 2}, ids(SortRecords(records, SortSpec{Column: "size"}, reg)),
		"equal sizes keep source order")
	assert.Equal(t, []int{1, 2, 3}, ids(SortRecords(records, SortSpec{Column: "note"}, reg)),
		"column without comparator leaves order alone")
	assert.Equal(t, []int{1, 2, 3}, ids(SortRecords(records, SortSpec{}, reg)))
	assert.Equal(t, []int{1, 2, 3}, ids(records), "input is not modified")
}
