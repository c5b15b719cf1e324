package views

import (
	"encoding/json"

	"github.com/a-h/templ"
)

// Layout wraps body in the admin page shell.
func Layout(meta PageMeta, notices []Notice, body templ.Component) templ.Component {
	return component(func(w *writer) {
		w.raw("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\">")
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw("<title>")
		w.text(meta.Title)
		w.raw(" | Admin</title>")
		w.raw(`<link rel="stylesheet" href="/public/admin.css">`)
		w.raw(`<script src="/public/htmx.min.js" defer></script>`)
		w.raw("</head><body")
		w.attr("class", meta.BodyClass)
		if meta.CSRFToken != "" {
			w.attr("hx-headers", csrfHeaders(meta.CSRFToken))
		}
		w.raw(">")
		w.component(nav(meta.Nav))
		w.raw(`<main class="mx-auto max-w-6xl px-4 py-6">`)
		w.component(Notices(notices, false))
		w.component(body)
		w.raw("</main></body></html>")
	})
}

func csrfHeaders(token string) string {
	b, err := json.Marshal(map[string]string{"X-CSRF-Token": token})
	if err != nil {
		return "{}"
	}
	return string(b)
}

func nav(links []NavLink) templ.Component {
	return component(func(w *writer) {
		if len(links) == 0 {
			return
		}
		w.raw(`<nav class="border-b border-stone-200 bg-white"><ul class="mx-auto flex max-w-6xl gap-4 px-4 py-3">`)
		for _, l := range links {
			w.raw("<li><a")
			w.attr("href", l.Href)
			if l.Active {
				w.attr("class", "font-semibold underline")
				w.attr("aria-current", "page")
			}
			w.raw(">")
			w.text(l.Title)
			w.raw("</a></li>")
		}
		w.raw("</ul></nav>")
	})
}

// Notices renders the toast area. With oob set it replaces the toast area
// of an already loaded page from an htmx response.
func Notices(notices []Notice, oob bool) templ.Component {
	return component(func(w *writer) {
		w.raw(`<div id="notices" class="notices fixed right-4 top-4 flex flex-col gap-2" aria-live="polite"`)
		if oob {
			w.attr("hx-swap-oob", "true")
		}
		w.raw(">")
		for _, n := range notices {
			w.raw("<div")
			w.attr("class", NoticeClass(n.Kind))
			if n.Kind == NoticeError {
				w.attr("role", "alert")
			} else {
				w.attr("role", "status")
			}
			w.raw(">")
			w.text(n.Text)
			w.raw("</div>")
		}
		w.raw("</div>")
	})
}

// NotFound is the 404 page.
func NotFound() templ.Component {
	return Layout(PageMeta{Title: "Not found", BodyClass: "admin admin-error"}, nil, component(func(w *writer) {
		w.raw(`<section class="py-16 text-center"><h1 class="text-2xl font-semibold">Page not found</h1>`)
		w.raw(`<p class="mt-2"><a class="underline" href="/admin/posts/page/1/">Back to posts</a></p></section>`)
	}))
}

// ServerError is the 5xx page.
func ServerError() templ.Component {
	return Layout(PageMeta{Title: "Error", BodyClass: "admin admin-error"}, nil, component(func(w *writer) {
		w.raw(`<section class="py-16 text-center"><h1 class="text-2xl font-semibold">Something went wrong</h1>`)
		w.raw(`<p class="mt-2">Try again in a moment.</p></section>`)
	}))
}
