package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pubadmin/datatable"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func readyModel() TableModel {
	return TableModel{
		Resource:       "posts",
		Title:          "Posts",
		BasePath:       "/admin/posts",
		Deletable:      true,
		PerPageOptions: []int{10, 20},
		View: datatable.View{
			Status: datatable.StatusReady,
			Headers: []datatable.HeaderCell{
				{Key: "id", Title: "ID", Sortable: true, Sorted: true, Direction: datatable.Descending},
				{Key: "title", Title: "Title", Sortable: true},
				{Key: "categories", Title: "Categories"},
			},
			Columns: []datatable.ColumnToggle{
				{Key: "id", Title: "ID", Visible: true},
				{Key: "title", Title: "Title", Visible: true},
				{Key: "categories", Title: "Categories", Visible: true},
				{Key: "slug", Title: "Slug"},
			},
			VisibleColumns: 3,
			TotalColumns:   4,
			Rows: []datatable.Row{
				{ID: 7, Selected: true, Cells: []string{"7", "<b>bold</b> & co", "News"}},
				{ID: 6, Cells: []string{"6", "Plain", "-"}},
			},
			SelectedCount: 1,
			TotalCount:    2,
			PerPage:       20,
			Pager: datatable.Pager{
				Prev:    datatable.PageLink{Label: "Prev", Page: 1, Disabled: true},
				Next:    datatable.PageLink{Label: "Next", Page: 1, Disabled: true},
				Pages:   []datatable.PageLink{{Label: "1", Page: 1, Active: true}},
				Current: 1,
				Total:   1,
			},
		},
	}
}

func TestTableRendersRowsEscaped(t *testing.T) {
	html := render(t, Table(readyModel()))

	assert.Contains(t, html, `id="table-posts"`)
	assert.Contains(t, html, `aria-busy="false"`)
	assert.NotContains(t, html, "load delay:1s")
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt; &amp; co")
	assert.NotContains(t, html, "<b>bold</b>")
	assert.Contains(t, html, "3/4 Columns")
	assert.Contains(t, html, "1 selected, 2 total")
	assert.Contains(t, html, `hx-post="/admin/posts/select/7/"`)
	assert.Contains(t, html, RowClass(true))
}

func TestTableHeaders(t *testing.T) {
	html := render(t, Table(readyModel()))

	assert.Contains(t, html, `aria-sort="descending"`)
	assert.Contains(t, html, "▼")
	assert.Contains(t, html, `hx-post="/admin/posts/sort/title/"`)
	assert.NotContains(t, html, "/sort/categories/")
}

func TestTableToolbar(t *testing.T) {
	m := readyModel()
	html := render(t, Table(m))
	assert.Contains(t, html, `<option value="20" selected>`)
	assert.Contains(t, html, "Delete 1 selected posts? This cannot be undone.")
	assert.NotContains(t, html, ` disabled>Delete selected`)

	m.View.SelectedCount = 0
	html = render(t, Table(m))
	assert.Contains(t, html, ` disabled>Delete selected`)

	m.Deletable = false
	html = render(t, Table(m))
	assert.NotContains(t, html, "Delete selected")
}

func TestTablePlaceholders(t *testing.T) {
	m := readyModel()
	m.View.Rows = nil
	m.View.Status = datatable.StatusLoading
	m.View.Placeholder = datatable.Placeholder{Kind: datatable.PlaceholderLoading, ColSpan: 4, Message: "Loading..."}

	html := render(t, Table(m))
	assert.Contains(t, html, "placeholder-loading")
	assert.Contains(t, html, `colspan="4"`)
	assert.Contains(t, html, `hx-get="/admin/posts/rows/"`)
	assert.Contains(t, html, `hx-trigger="load delay:1s"`)
	assert.Contains(t, html, `aria-busy="true"`)

	m.View.Status = datatable.StatusFailed
	m.View.Placeholder = datatable.Placeholder{Kind: datatable.PlaceholderError, ColSpan: 4, Message: "backend down"}
	html = render(t, Table(m))
	assert.Contains(t, html, "placeholder-error")
	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, `hx-post="/admin/posts/retry/"`)
	assert.NotContains(t, html, "load delay:1s")

	m.View.Status = datatable.StatusReady
	m.View.Placeholder = datatable.Placeholder{Kind: datatable.PlaceholderEmpty, ColSpan: 4, Message: "No data"}
	html = render(t, Table(m))
	assert.Contains(t, html, "placeholder-empty")
	assert.Contains(t, html, "No data")
	assert.NotContains(t, html, "Retry")
}

func TestPagerEllipsis(t *testing.T) {
	m := readyModel()
	m.View.Pager = datatable.Pager{
		Prev:      datatable.PageLink{Label: "Prev", Page: 4},
		Next:      datatable.PageLink{Label: "Next", Page: 6},
		First:     datatable.PageLink{Label: "1", Page: 1},
		Last:      datatable.PageLink{Label: "10", Page: 10},
		ShowFirst: true,
		ShowLast:  true,
		Pages: []datatable.PageLink{
			{Label: "4", Page: 4},
			{Label: "5", Page: 5, Active: true},
			{Label: "6", Page: 6},
		},
		Current: 5,
		Total:   10,
	}

	html := render(t, Pager(m))
	assert.Equal(t, 2, strings.Count(html, "…"))
	assert.Contains(t, html, `href="/admin/posts/page/10/"`)
	assert.Contains(t, html, `aria-current="page"`)
	assert.Contains(t, html, "Page 5 of 10")

	m.View.Pager.Pages = []datatable.PageLink{{Label: "2", Page: 2}, {Label: "3", Page: 3}}
	m.View.Pager.ShowLast = false
	html = render(t, Pager(m))
	assert.Equal(t, 1, strings.Count(html, "…"), "the first page link always comes with an ellipsis")
	assert.NotContains(t, html, `href="/admin/posts/page/10/"`)

	m.View.Pager.ShowFirst = false
	html = render(t, Pager(m))
	assert.Zero(t, strings.Count(html, "…"))
}

func TestTableFragmentSwapsNoticesOutOfBand(t *testing.T) {
	html := render(t, TableFragment([]Notice{{Kind: NoticeError, Text: "Delete failed."}}, readyModel()))
	assert.Contains(t, html, `hx-swap-oob="true"`)
	assert.Contains(t, html, "notice-error")
	assert.Contains(t, html, "Delete failed.")
}

func TestTablePageLayout(t *testing.T) {
	m := readyModel()
	m.Creatable = true
	m.Statuses = []string{"Draft", "Published"}
	meta := PageMeta{
		Title:     "Posts",
		BodyClass: "admin admin-table admin-posts",
		CSRFToken: "tok",
		Nav:       []NavLink{{Title: "Posts", Href: "/admin/posts/page/1/", Active: true}},
	}

	html := render(t, TablePage(meta, nil, m))
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `class="admin admin-table admin-posts"`)
	assert.Contains(t, html, `hx-headers="{&#34;X-CSRF-Token&#34;:&#34;tok&#34;}"`)
	assert.Contains(t, html, `<form method="post" class="quick-create`)
	assert.Contains(t, html, `<option value="Published">`)
	assert.NotContains(t, html, `hx-swap-oob`)
}
