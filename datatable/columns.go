package datatable

import (
	"fmt"
	"sync"
)

// ColumnKey is the stable identity of a column. It never changes when
// columns are hidden or reordered.
type ColumnKey string

// Column describes how one column of a record is rendered and compared.
type Column[R any] struct {
	// Key identifies the column. An empty key is replaced by "col-<n>" at
	// registration, n being the registration order.
	Key ColumnKey
	// Title is the header text. It must be unique within a registry.
	Title string
	// Value renders the cell.
	Value func(R) string
	// Compare orders two records for client-side sorting. Optional.
	Compare func(a, b R) int
	// SortField is the name the backend sorts by. Optional.
	SortField string
	// Visible marks the column as shown.
	Visible bool
}

// Sortable reports whether the column can be sorted either in memory or by
// the backend.
func (c Column[R]) Sortable() bool {
	return c.Compare != nil || c.SortField != ""
}

// ColumnRegistry is the ordered list of columns of one table. Its shape is
// fixed at construction; only visibility changes afterwards. Subscribers
// receive the visibility map after each change. A registry may be read by a
// fetch running outside the table lock, so it guards its own state.
type ColumnRegistry[R any] struct {
	Observable[map[ColumnKey]bool]
	mu    sync.RWMutex
	cols  []Column[R]
	index map[ColumnKey]int
}

// NewColumnRegistry validates cols and returns a registry holding them in
// the given order.
func NewColumnRegistry[R any](cols ...Column[R]) (*ColumnRegistry[R], error) {
	r := &ColumnRegistry[R]{
		cols:  make([]Column[R], 0, len(cols)),
		index: make(map[ColumnKey]int, len(cols)),
	}
	titles := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if c.Key == "" {
			c.Key = ColumnKey(fmt.Sprintf("col-%d", i))
		}
		if c.Value == nil {
			return nil, fmt.Errorf("%w: %q has no value accessor", ErrInvalidColumn, c.Key)
		}
		if _, ok := r.index[c.Key]; ok {
			return nil, fmt.Errorf("%w: key %q", ErrDuplicateColumn, c.Key)
		}
		if _, ok := titles[c.Title]; ok {
			return nil, fmt.Errorf("%w: title %q", ErrDuplicateColumn, c.Title)
		}
		titles[c.Title] = struct{}{}
		r.index[c.Key] = len(r.cols)
		r.cols = append(r.cols, c)
	}
	return r, nil
}

// MustColumnRegistry is like NewColumnRegistry but panics on error. It is
// meant for column sets declared in code.
func MustColumnRegistry[R any](cols ...Column[R]) *ColumnRegistry[R] {
	r, err := NewColumnRegistry(cols...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of registered columns.
func (r *ColumnRegistry[R]) Len() int {
	return len(r.cols)
}

// All returns every column in registration order.
func (r *ColumnRegistry[R]) All() []Column[R] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Column[R], len(r.cols))
	copy(out, r.cols)
	return out
}

// Lookup returns the column registered under key.
func (r *ColumnRegistry[R]) Lookup(key ColumnKey) (Column[R], bool) {
	i, ok := r.index[key]
	if !ok {
		return Column[R]{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cols[i], true
}

// SetVisible shows or hides the column registered under key.
func (r *ColumnRegistry[R]) SetVisible(key ColumnKey, visible bool) error {
	i, ok := r.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, key)
	}
	r.mu.Lock()
	if r.cols[i].Visible == visible {
		r.mu.Unlock()
		return nil
	}
	r.cols[i].Visible = visible
	vis := r.visibility()
	r.mu.Unlock()
	r.notify(vis)
	return nil
}

// ToggleVisible flips the visibility of the column registered under key.
func (r *ColumnRegistry[R]) ToggleVisible(key ColumnKey) error {
	i, ok := r.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, key)
	}
	r.mu.RLock()
	visible := r.cols[i].Visible
	r.mu.RUnlock()
	return r.SetVisible(key, !visible)
}

// Visible returns the shown columns in registration order.
func (r *ColumnRegistry[R]) Visible() []Column[R] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Column[R]
	for _, c := range r.cols {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// VisibleCount returns how many columns are shown.
func (r *ColumnRegistry[R]) VisibleCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, c := range r.cols {
		if c.Visible {
			n++
		}
	}
	return n
}

// Sortable returns the columns that have a comparator or a backend sort field.
func (r *ColumnRegistry[R]) Sortable() []Column[R] {
	var out []Column[R]
	for _, c := range r.All() {
		if c.Sortable() {
			out = append(out, c)
		}
	}
	return out
}

// Visibility returns the visible flag of every column keyed by column key.
func (r *ColumnRegistry[R]) Visibility() map[ColumnKey]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.visibility()
}

func (r *ColumnRegistry[R]) visibility() map[ColumnKey]bool {
	out := make(map[ColumnKey]bool, len(r.cols))
	for _, c := range r.cols {
		out[c.Key] = c.Visible
	}
	return out
}

// ApplyVisibility sets visibility from a stored map. Unknown keys are
// ignored so stale preferences never fail a table.
func (r *ColumnRegistry[R]) ApplyVisibility(vis map[ColumnKey]bool) {
	r.mu.Lock()
	changed := false
	for key, visible := range vis {
		i, ok := r.index[key]
		if !ok || r.cols[i].Visible == visible {
			continue
		}
		r.cols[i].Visible = visible
		changed = true
	}
	var snapshot map[ColumnKey]bool
	if changed {
		snapshot = r.visibility()
	}
	r.mu.Unlock()
	if changed {
		r.notify(snapshot)
	}
}
