package datatable

// PlaceholderKind says why a table body shows a single spanning row.
type PlaceholderKind int

const (
	// PlaceholderNone means the body has rows.
	PlaceholderNone PlaceholderKind = iota
	// PlaceholderLoading is shown while a request is in flight.
	PlaceholderLoading
	// PlaceholderEmpty is shown when the loaded page has no records.
	PlaceholderEmpty
	// PlaceholderError is shown when the last request failed.
	PlaceholderError
)

// Placeholder is the single row spanning every visible column plus the
// selection column.
type Placeholder struct {
	Kind    PlaceholderKind
	ColSpan int
	Message string
}

// HeaderCell is one visible column header.
type HeaderCell struct {
	Key       ColumnKey
	Title     string
	Sortable  bool
	Sorted    bool
	Direction SortDirection
}

// ColumnToggle is one entry of the column visibility menu.
type ColumnToggle struct {
	Key     ColumnKey
	Title   string
	Visible bool
}

// Row is one rendered record.
type Row struct {
	ID       int
	Selected bool
	Cells    []string
}

// View is everything a template needs to draw a table.
type View struct {
	Status         Status
	Error          string
	Headers        []HeaderCell
	Columns        []ColumnToggle
	VisibleColumns int
	TotalColumns   int
	Rows           []Row
	Placeholder    Placeholder
	SelectedCount  int
	TotalCount     int
	AllSelected    bool
	Sort           SortSpec
	PerPage        int
	Pager          Pager
}

// Render builds the View of the current state.
func (t *Table[R]) Render() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	visible := t.columns.Visible()
	spec := t.sort.Spec()
	v := View{
		Status:         t.status,
		VisibleColumns: len(visible),
		TotalColumns:   t.columns.Len(),
		SelectedCount:  t.selection.Len(),
		TotalCount:     t.pagination.TotalItems(),
		AllSelected:    t.selection.IsAllSelected(t.ids()),
		Sort:           spec,
		PerPage:        t.pagination.ItemsPerPage(),
		Pager:          t.pagination.Pager(t.opts.maxVisible),
	}
	for _, c := range t.columns.All() {
		v.Columns = append(v.Columns, ColumnToggle{Key: c.Key, Title: c.Title, Visible: c.Visible})
	}
	for _, c := range visible {
		h := HeaderCell{Key: c.Key, Title: c.Title, Sortable: c.Sortable()}
		if spec.Column == c.Key {
			h.Sorted = true
			h.Direction = spec.Direction
		}
		v.Headers = append(v.Headers, h)
	}

	span := len(visible) + 1
	switch {
	case t.status == StatusIdle || t.status == StatusLoading:
		v.Placeholder = Placeholder{Kind: PlaceholderLoading, ColSpan: span, Message: "Loading..."}
	case t.status == StatusFailed:
		v.Error = t.opts.message(t.err)
		v.Placeholder = Placeholder{Kind: PlaceholderError, ColSpan: span, Message: v.Error}
	case len(t.records) == 0:
		v.Placeholder = Placeholder{Kind: PlaceholderEmpty, ColSpan: span, Message: "No data"}
	default:
		v.Rows = make([]Row, 0, len(t.records))
		for _, r := range t.records {
			id := r.RecordID()
			row := Row{ID: id, Selected: t.selection.Contains(id), Cells: make([]string, len(visible))}
			for i, c := range visible {
				row.Cells[i] = c.Value(r)
			}
			v.Rows = append(v.Rows, row)
		}
	}
	return v
}
