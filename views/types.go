package views

import "github.com/eringen/pubadmin/datatable"

// PageMeta carries per-page settings into the layout. BodyClass applies to
// this render only.
type PageMeta struct {
	Title     string
	BodyClass string
	CSRFToken string
	Nav       []NavLink
}

// NavLink is one entry of the admin navigation.
type NavLink struct {
	Title  string
	Href   string
	Active bool
}

// Notice kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is one toast notification, usually read from a session flash.
type Notice struct {
	Kind string
	Text string
}

// TableModel is everything the table templates need besides the engine View.
type TableModel struct {
	Resource       string // "posts", used in element ids
	Title          string
	BasePath       string // "/admin/posts"
	CSRFToken      string
	View           datatable.View
	Deletable      bool
	Creatable      bool
	PerPageOptions []int
	Statuses       []string // choices of the quick-create form
}

// ID returns the id of the element the table is swapped into.
func (m TableModel) ID() string {
	return "table-" + m.Resource
}

// Target returns the htmx target selector of the table.
func (m TableModel) Target() string {
	return "#" + m.ID()
}

// Loading reports whether the table is waiting for a fetch.
func (m TableModel) Loading() bool {
	return m.View.Status == datatable.StatusIdle || m.View.Status == datatable.StatusLoading
}
