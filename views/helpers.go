package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pubadmin/datatable"
)

// writer writes HTML and keeps the first error.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) rawf(format string, args ...any) {
	w.raw(fmt.Sprintf(format, args...))
}

// attr writes ` name="value"` with value escaped.
func (w *writer) attr(name, value string) {
	w.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// flag writes a boolean attribute when on.
func (w *writer) flag(name string, on bool) {
	if on {
		w.raw(" " + name)
	}
}

func (w *writer) component(c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(w.ctx, w.w)
	}
}

func component(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{ctx: ctx, w: out}
		fn(w)
		return w.err
	})
}

// hxTable writes the htmx attributes that swap the response into the table.
func (w *writer) hxTable(m TableModel, method, path string) {
	w.attr("hx-"+method, path)
	w.attr("hx-target", m.Target())
	w.attr("hx-swap", "outerHTML")
}

// PagePath returns the URL of page n of the table at base.
func PagePath(base string, n int) string {
	return strings.TrimRight(base, "/") + "/page/" + strconv.Itoa(n) + "/"
}

// SortIndicator returns the arrow shown next to a sorted header.
func SortIndicator(h datatable.HeaderCell) string {
	if !h.Sorted {
		return ""
	}
	if h.Direction == datatable.Descending {
		return "▼"
	}
	return "▲"
}

// AriaSort returns the aria-sort value of a header.
func AriaSort(h datatable.HeaderCell) string {
	switch {
	case !h.Sorted:
		return "none"
	case h.Direction == datatable.Descending:
		return "descending"
	default:
		return "ascending"
	}
}

// ButtonClass returns CSS classes for a toolbar button, with danger variant.
func ButtonClass(danger bool) string {
	base := "inline-flex items-center rounded border px-3 py-1.5 text-sm font-semibold transition disabled:opacity-40 disabled:cursor-not-allowed"
	if danger {
		return base + " border-red-700 text-red-700 hover:bg-red-700 hover:text-white"
	}
	return base + " border-ink hover:bg-ink hover:text-white"
}

// RowClass returns CSS classes for a body row.
func RowClass(selected bool) string {
	base := "border-b border-stone-200 hover:bg-stone-50"
	if selected {
		base += " bg-amber-50"
	}
	return base
}

// PageLinkClass returns CSS classes for a pager link.
func PageLinkClass(l datatable.PageLink) string {
	base := "inline-flex min-w-8 justify-center rounded border px-2 py-1 text-sm"
	switch {
	case l.Active:
		return base + " border-ink bg-ink text-white"
	case l.Disabled:
		return base + " border-stone-200 text-stone-400 pointer-events-none"
	default:
		return base + " border-stone-300 hover:border-ink"
	}
}

// NoticeClass returns CSS classes for a toast.
func NoticeClass(kind string) string {
	base := "notice rounded border px-4 py-2 text-sm shadow"
	if kind == NoticeError {
		return base + " notice-error border-red-700 bg-red-50 text-red-800"
	}
	return base + " notice-success border-green-700 bg-green-50 text-green-800"
}
