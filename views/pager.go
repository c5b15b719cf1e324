package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/pubadmin/datatable"
)

// Pager renders the page navigation of a table.
func Pager(m TableModel) templ.Component {
	return component(func(w *writer) {
		p := m.View.Pager
		w.raw(`<nav class="pager mt-4 flex flex-wrap items-center gap-1" aria-label="Pagination">`)
		pageLink(w, m, p.Prev)
		if p.ShowFirst {
			pageLink(w, m, p.First)
			w.raw(`<span class="px-1">…</span>`)
		}
		for _, l := range p.Pages {
			pageLink(w, m, l)
		}
		if p.ShowLast {
			w.raw(`<span class="px-1">…</span>`)
			pageLink(w, m, p.Last)
		}
		pageLink(w, m, p.Next)
		w.raw(`<span class="ml-2 text-sm text-stone-500">Page `)
		w.raw(strconv.Itoa(p.Current))
		w.raw(" of ")
		w.raw(strconv.Itoa(p.Total))
		w.raw("</span></nav>")
	})
}

func pageLink(w *writer, m TableModel, l datatable.PageLink) {
	if l.Disabled {
		w.raw("<span")
		w.attr("class", PageLinkClass(l))
		w.attr("aria-disabled", "true")
		w.raw(">")
		w.text(l.Label)
		w.raw("</span>")
		return
	}
	href := PagePath(m.BasePath, l.Page)
	w.raw("<a")
	w.attr("class", PageLinkClass(l))
	w.attr("href", href)
	w.hxTable(m, "get", href)
	if l.Active {
		w.attr("aria-current", "page")
	}
	w.raw(">")
	w.text(l.Label)
	w.raw("</a>")
}
