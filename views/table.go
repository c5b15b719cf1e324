package views

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/pubadmin/datatable"
)

// TablePage is the full admin page of one resource table.
func TablePage(meta PageMeta, notices []Notice, m TableModel) templ.Component {
	return Layout(meta, notices, component(func(w *writer) {
		w.raw(`<header class="mb-4 flex items-center justify-between"><h1 class="text-2xl font-semibold">`)
		w.text(m.Title)
		w.raw("</h1></header>")
		if m.Creatable {
			w.component(quickCreate(m))
		}
		w.component(Table(m))
	}))
}

// TableFragment is the htmx response of a table interaction: the table and
// an out-of-band update of the toast area.
func TableFragment(notices []Notice, m TableModel) templ.Component {
	return component(func(w *writer) {
		w.component(Table(m))
		w.component(Notices(notices, true))
	})
}

// Table renders the toolbar, the table and the pager. While a fetch is in
// flight the container polls for the finished rows.
func Table(m TableModel) templ.Component {
	return component(func(w *writer) {
		w.raw("<section")
		w.attr("id", m.ID())
		w.attr("class", "data-table")
		w.attr("aria-busy", strconv.FormatBool(m.Loading()))
		if m.Loading() {
			w.attr("hx-get", m.BasePath+"/rows/")
			w.attr("hx-trigger", "load delay:1s")
			w.attr("hx-target", "this")
			w.attr("hx-swap", "outerHTML")
		}
		w.raw(">")
		toolbar(w, m)
		w.raw(`<div class="overflow-x-auto"><table class="w-full border-collapse text-left text-sm">`)
		head(w, m)
		body(w, m)
		w.raw("</table></div>")
		w.component(Pager(m))
		w.raw("</section>")
	})
}

func toolbar(w *writer, m TableModel) {
	v := m.View
	w.raw(`<div class="toolbar mb-3 flex flex-wrap items-center gap-3">`)

	// column visibility
	w.raw(`<details class="column-menu relative"><summary`)
	w.attr("class", ButtonClass(false))
	w.raw(">")
	w.rawf("%d/%d Columns", v.VisibleColumns, v.TotalColumns)
	w.raw(`</summary><ul class="absolute z-10 mt-1 min-w-48 rounded border border-stone-300 bg-white p-2 shadow">`)
	for _, c := range v.Columns {
		w.raw(`<li><label class="flex items-center gap-2 px-1 py-0.5"><input type="checkbox"`)
		w.hxTable(m, "post", m.BasePath+"/columns/"+string(c.Key)+"/")
		w.flag("checked", c.Visible)
		w.raw(">")
		w.text(c.Title)
		w.raw("</label></li>")
	}
	w.raw("</ul></details>")

	// page size
	w.raw(`<label class="flex items-center gap-2 text-sm">Rows per page <select name="per_page"`)
	w.hxTable(m, "post", m.BasePath+"/per-page/")
	w.attr("hx-trigger", "change")
	w.raw(">")
	for _, n := range m.PerPageOptions {
		w.raw("<option")
		w.attr("value", strconv.Itoa(n))
		w.flag("selected", n == v.PerPage)
		w.raw(">")
		w.raw(strconv.Itoa(n))
		w.raw("</option>")
	}
	w.raw("</select></label>")

	// bulk actions
	if m.Deletable {
		w.raw("<button type=\"button\"")
		w.attr("class", ButtonClass(true))
		w.hxTable(m, "delete", m.BasePath+"/")
		w.attr("hx-confirm", fmt.Sprintf("Delete %d selected %s? This cannot be undone.", v.SelectedCount, m.Resource))
		w.flag("disabled", v.SelectedCount == 0)
		w.raw(">Delete selected</button>")
	}

	w.raw(`<span class="ml-auto text-sm text-stone-500">`)
	w.rawf("%d selected, %d total", v.SelectedCount, v.TotalCount)
	w.raw("</span></div>")
}

func head(w *writer, m TableModel) {
	v := m.View
	w.raw(`<thead><tr class="border-b-2 border-ink"><th class="w-8 p-2"><input type="checkbox" aria-label="Select all"`)
	w.hxTable(m, "post", m.BasePath+"/select/")
	w.flag("checked", v.AllSelected)
	w.flag("disabled", len(v.Rows) == 0)
	w.raw("></th>")
	for _, h := range v.Headers {
		w.raw(`<th class="p-2"`)
		w.attr("aria-sort", AriaSort(h))
		w.raw(">")
		if !h.Sortable {
			w.text(h.Title)
			w.raw("</th>")
			continue
		}
		w.raw(`<button type="button" class="font-semibold hover:underline"`)
		w.hxTable(m, "post", m.BasePath+"/sort/"+string(h.Key)+"/")
		w.raw(">")
		w.text(h.Title)
		if ind := SortIndicator(h); ind != "" {
			w.raw(` <span aria-hidden="true">`)
			w.raw(ind)
			w.raw("</span>")
		}
		w.raw("</button></th>")
	}
	w.raw("</tr></thead>")
}

func body(w *writer, m TableModel) {
	v := m.View
	w.raw("<tbody>")
	if v.Placeholder.Kind != datatable.PlaceholderNone {
		placeholder(w, m, v.Placeholder)
		w.raw("</tbody>")
		return
	}
	for _, r := range v.Rows {
		w.raw("<tr")
		w.attr("class", RowClass(r.Selected))
		w.raw(`><td class="p-2"><input type="checkbox"`)
		w.attr("aria-label", "Select row "+strconv.Itoa(r.ID))
		w.hxTable(m, "post", m.BasePath+"/select/"+strconv.Itoa(r.ID)+"/")
		w.flag("checked", r.Selected)
		w.raw("></td>")
		for _, cell := range r.Cells {
			w.raw(`<td class="p-2">`)
			w.text(cell)
			w.raw("</td>")
		}
		w.raw("</tr>")
	}
	w.raw("</tbody>")
}

func placeholder(w *writer, m TableModel, p datatable.Placeholder) {
	kind := map[datatable.PlaceholderKind]string{
		datatable.PlaceholderLoading: "loading",
		datatable.PlaceholderEmpty:   "empty",
		datatable.PlaceholderError:   "error",
	}[p.Kind]
	w.raw("<tr")
	w.attr("class", "placeholder placeholder-"+kind)
	w.raw("><td")
	w.attr("colspan", strconv.Itoa(p.ColSpan))
	w.attr("class", "p-6 text-center text-stone-500")
	if p.Kind == datatable.PlaceholderError {
		w.attr("role", "alert")
	}
	w.raw(">")
	w.text(p.Message)
	if p.Kind == datatable.PlaceholderError {
		w.raw(` <button type="button"`)
		w.attr("class", ButtonClass(false))
		w.hxTable(m, "post", m.BasePath+"/retry/")
		w.raw(">Retry</button>")
	}
	w.raw("</td></tr>")
}

func quickCreate(m TableModel) templ.Component {
	return component(func(w *writer) {
		w.raw(`<form method="post" class="quick-create mb-4 flex flex-wrap items-center gap-2"`)
		w.attr("action", m.BasePath+"/")
		w.raw(`><input type="hidden" name="_csrf"`)
		w.attr("value", m.CSRFToken)
		w.raw(`><input type="text" name="title" required placeholder="New post title" class="rounded border border-stone-300 px-2 py-1.5 text-sm">`)
		w.raw(`<input type="text" name="slug" placeholder="slug (optional)" class="rounded border border-stone-300 px-2 py-1.5 text-sm">`)
		if len(m.Statuses) > 0 {
			w.raw(`<select name="status" class="rounded border border-stone-300 px-2 py-1.5 text-sm">`)
			for _, s := range m.Statuses {
				w.raw("<option")
				w.attr("value", s)
				w.raw(">")
				w.text(s)
				w.raw("</option>")
			}
			w.raw("</select>")
		}
		w.raw("<button type=\"submit\"")
		w.attr("class", ButtonClass(false))
		w.raw(">Create</button></form>")
	})
}
