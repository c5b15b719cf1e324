package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnRegistryValidation(t *testing.T) {
	value := func(item) string { return "" }

	_, err := NewColumnRegistry(
		Column[item]{Key: "a", Title: "A", Value: value},
		Column[item]{Key: "a", Title: "B", Value: value},
	)
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = NewColumnRegistry(
		Column[item]{Key: "a", Title: "Same", Value: value},
		Column[item]{Key: "b", Title: "Same", Value: value},
	)
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = NewColumnRegistry(Column[item]{Key: "a", Title: "A"})
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestColumnRegistryAssignsKeys(t *testing.T) {
	value := func(item) string { return "" }
	reg, err := NewColumnRegistry(
		Column[item]{Title: "First", Value: value, Visible: true},
		Column[item]{Title: "Second", Value: value, Visible: true},
	)
	require.NoError(t, err)

	_, ok := reg.Lookup("col-1")
	assert.True(t, ok)
	require.NoError(t, reg.SetVisible("col-0", false))

	col, ok := reg.Lookup("col-1")
	require.True(t, ok)
	assert.Equal(t, "Second", col.Title, "identity survives hiding an earlier column")
}

func TestColumnRegistryVisibility(t *testing.T) {
	reg := itemColumns(t)
	assert.Equal(t, 2, reg.VisibleCount())

	require.NoError(t, reg.ToggleVisible("name"))
	require.NoError(t, reg.SetVisible("note", true))

	var titles []string
	for _, c := range reg.Visible() {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"Size", "Note"}, titles)

	err := reg.SetVisible("missing", true)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestColumnRegistrySortable(t *testing.T) {
	reg := itemColumns(t)
	var keys []ColumnKey
	for _, c := range reg.Sortable() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []ColumnKey{"name", "size"}, keys)
}

func TestColumnRegistryApplyVisibility(t *testing.T) {
	reg := itemColumns(t)
	calls := 0
	reg.Subscribe(func(map[ColumnKey]bool) { calls++ })

	reg.ApplyVisibility(map[ColumnKey]bool{"note": true, "size": false, "gone": true})

	assert.Equal(t, map[ColumnKey]bool{"name": true, "size": false, "note": true}, reg.Visibility())
	assert.Equal(t, 1, calls)

	reg.ApplyVisibility(map[ColumnKey]bool{"note": true})
	assert.Equal(t, 1, calls, "no change, no notification")
}
