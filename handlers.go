package pubadmin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubadmin/api"
	"github.com/eringen/pubadmin/datatable"
	"github.com/eringen/pubadmin/views"
)

// perPageOptions are the choices of the rows-per-page selector.
var perPageOptions = []int{10, 20, 50, 100}

// tableHandlers serves one resource table. Every handler applies one
// interaction to the browser's table, makes sure a fetch for the resulting
// state is running, and renders the table.
type tableHandlers[R datatable.Record] struct {
	app *App
	res *resource[R]
}

func registerTable[R datatable.Record](a *App, res *resource[R]) {
	h := &tableHandlers[R]{app: a, res: res}
	e := a.Echo
	base := res.basePath()

	e.GET(base+"/", h.handleIndex)
	e.GET(base+"/page/:page/", h.handlePage)
	e.GET(base+"/rows/", h.handleRows)
	e.POST(base+"/retry/", h.handleRetry)
	e.POST(base+"/sort/:column/", h.handleSort)
	e.POST(base+"/columns/:column/", h.handleColumn)
	e.POST(base+"/select/", h.handleSelectAll)
	e.POST(base+"/select/:id/", h.handleSelectRow)
	e.POST(base+"/per-page/", h.handlePerPage)
	if res.deleter != nil {
		e.DELETE(base+"/", h.handleDelete)
	}
}

func (h *tableHandlers[R]) table(c echo.Context) (*datatable.Table[R], *datatable.Location, error) {
	ws, err := h.app.workspace(c)
	if err != nil {
		return nil, nil, err
	}
	t, loc := tableFor(ws, h.res, h.build)
	return t, loc, nil
}

// build creates a table with the stored preferences applied and keeps the
// preferences up to date.
func (h *tableHandlers[R]) build() (*datatable.Table[R], *datatable.Location) {
	a, res := h.app, h.res
	logger := a.Echo.Logger

	reg := res.columns()
	if vis, err := a.Prefs.Visibility(res.name); err != nil {
		logger.Warnf("prefs: load %s columns: %v", res.name, err)
	} else {
		reg.ApplyVisibility(vis)
	}
	perPage := a.Config.ItemsPerPage
	if n, err := a.Prefs.PageSize(res.name); err != nil {
		logger.Warnf("prefs: load %s page size: %v", res.name, err)
	} else if n > 0 {
		perPage = n
	}

	fetch := res.fetcher(reg)
	if res.cache != nil {
		fetch = res.cache.Wrap(fetch)
	}
	loc := datatable.NewLocation(res.pagePath(1))
	opts := []datatable.Option{
		datatable.WithItemsPerPage(perPage),
		datatable.WithMaxVisiblePages(a.Config.MaxVisiblePages),
		datatable.WithDefaultSort(res.defaultSort),
		datatable.WithLogger(logger),
		datatable.WithNavigator(loc),
		datatable.WithErrorMessage(api.Message),
	}
	if res.deleter != nil {
		opts = append(opts, datatable.WithDeleter(res.deleter))
	}
	t := datatable.New(reg, fetch, opts...)

	t.SubscribeColumns(func(vis map[datatable.ColumnKey]bool) {
		if err := a.Prefs.SaveVisibility(res.name, vis); err != nil {
			logger.Errorf("prefs: save %s columns: %v", res.name, err)
		}
	})
	saved := perPage
	t.SubscribePagination(func(s datatable.PageState) {
		if s.PerPage == saved {
			return
		}
		saved = s.PerPage
		if err := a.Prefs.SavePageSize(res.name, s.PerPage); err != nil {
			logger.Errorf("prefs: save %s page size: %v", res.name, err)
		}
	})
	return t, loc
}

// refresh starts a fetch when the table state moved away from the loaded
// page, or from the page being fetched, and waits up to FetchWait for it. A
// slower fetch keeps running in the background and the table renders its
// loading placeholder, which polls for the result.
func (h *tableHandlers[R]) refresh(c echo.Context, t *datatable.Table[R]) {
	if !t.NeedsLoad() {
		return
	}
	a := h.app
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.FetchTimeout)
	done := t.Start(ctx)

	finish := func(err error) {
		cancel()
		switch {
		case err == nil, errors.Is(err, datatable.ErrStaleResponse):
		default:
			a.Echo.Logger.Warnf("fetch %s: %v", h.res.name, err)
		}
	}

	timer := time.NewTimer(a.Config.FetchWait)
	defer timer.Stop()
	select {
	case err := <-done:
		finish(err)
	case <-timer.C:
		go func() { finish(<-done) }()
	case <-c.Request().Context().Done():
		go func() { finish(<-done) }()
	}
}

// respond renders the table, as a fragment for htmx and as a full page
// otherwise. A page correction made by the table is forwarded first.
func (h *tableHandlers[R]) respond(c echo.Context, t *datatable.Table[R], loc *datatable.Location) error {
	h.refresh(c, t)
	if path, ok := loc.TakeReplaced(); ok {
		if written, err := replaceURL(c, path); written || err != nil {
			return err
		}
	}
	notices := takeNotices(c)
	m := h.model(c, t.Render())
	if isHTMX(c) {
		return Render(c, views.TableFragment(notices, m))
	}
	return Render(c, views.TablePage(h.meta(c), notices, m))
}

func (h *tableHandlers[R]) model(c echo.Context, v datatable.View) views.TableModel {
	m := views.TableModel{
		Resource:       h.res.name,
		Title:          h.res.title,
		BasePath:       h.res.basePath(),
		CSRFToken:      CsrfToken(c),
		View:           v,
		Deletable:      h.res.deleter != nil,
		Creatable:      h.res.creatable,
		PerPageOptions: perPageOptions,
	}
	if h.res.creatable {
		for _, s := range api.PostStatuses() {
			m.Statuses = append(m.Statuses, string(s))
		}
	}
	return m
}

func (h *tableHandlers[R]) meta(c echo.Context) views.PageMeta {
	return views.PageMeta{
		Title:     h.res.title,
		BodyClass: "admin admin-table admin-" + h.res.name,
		CSRFToken: CsrfToken(c),
		Nav:       h.app.nav(h.res.name),
	}
}

func (a *App) nav(active string) []views.NavLink {
	links := []views.NavLink{
		{Title: a.posts.title, Href: a.posts.pagePath(1)},
		{Title: a.categories.title, Href: a.categories.pagePath(1)},
		{Title: a.tags.title, Href: a.tags.pagePath(1)},
	}
	for i, name := range []string{a.posts.name, a.categories.name, a.tags.name} {
		links[i].Active = name == active
	}
	return links
}

func (h *tableHandlers[R]) handleIndex(c echo.Context) error {
	t, _, err := h.table(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, h.res.pagePath(t.PageState().Current))
}

// handlePage shows page :page. Full loads restore the page from the URL;
// htmx pager clicks navigate to it.
func (h *tableHandlers[R]) handlePage(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	t, loc, err := h.table(c)
	if err != nil {
		return err
	}
	if isHTMX(c) {
		t.GoToPage(page)
	} else {
		t.SetPage(page)
	}
	return h.respond(c, t, loc)
}

func (h *tableHandlers[R]) handleRows(c echo.Context) error {
	t, loc, err := h.table(c)
	if err != nil {
		return err
	}
	return h.respond(c, t, loc)
}

func (h *tableHandlers[R]) handleRetry(c echo.Context) error {
	t, loc, err := h.table(c)
	if err != nil {
		return err
	}
	if h.res.cache != nil {
		h.res.cache.Invalidate()
	}
	t.Invalidate()
	return h.respond(c, t, loc)
}

func (h *tableHandlers[R]) handleSort(c echo.Context) error {
	t, loc, err := h.table(c)
	if err != nil {
		return err
	}
	if _, err := t.ToggleSort(datatable.ColumnKey(c.Param("column"))); err != nil {
		if errors.Is(err, datatable.ErrColumnNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.respond(c, t, loc)
}

func (h *tableHandlers[R]) handleColumn(c echo.Context) error {
	t, loc, err := h.table(c)
	if err != nil {
		return err
	}
	if err := t.ToggleColumn(datatable.ColumnKey(c.Param("column"))); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return h.respond(c, t, loc)
}

func (h *tableHandlers[R]) handleSelectAll(c echo.Context) error {
	t, loc, err := h.table(c)
	if err != nil {
		return err
	}
	t.ToggleAll()
	return h.respond(c, t, loc)
}

func (h *tableHandlers[R]) handleSelectRow(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, loc, err := h.table(c)
	if err != nil {
		return err
	}
	t.ToggleRow(id)
	return h.respond(c, t, loc)
}

func (h *tableHandlers[R]) handlePerPage(c echo.Context) error {
	n, err := strconv.Atoi(c.FormValue("per_page"))
	if err != nil || n < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page size")
	}
	t, loc, err := h.table(c)
	if err != nil {
		return err
	}
	t.SetItemsPerPage(n)
	return h.respond(c, t, loc)
}

// handleDelete deletes the selected records. Failures are reported as a
// notification and leave the table as it was.
func (h *tableHandlers[R]) handleDelete(c echo.Context) error {
	t, loc, err := h.table(c)
	if err != nil {
		return err
	}
	if !h.app.deleteLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many delete requests. Try again later.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.app.Config.FetchTimeout)
	defer cancel()
	res, err := t.DeleteSelected(ctx)

	var notice views.Notice
	switch {
	case errors.Is(err, datatable.ErrNothingSelected):
		notice = views.Notice{Kind: views.NoticeError, Text: "Nothing is selected."}
	case err != nil:
		c.Logger().Errorf("delete %s: %v", h.res.name, err)
		notice = views.Notice{Kind: views.NoticeError, Text: "Delete failed. " + api.Message(err)}
	default:
		if h.res.cache != nil {
			h.res.cache.Invalidate()
		}
		notice = views.Notice{Kind: views.NoticeSuccess, Text: "Deleted " + plural(len(res.Deleted), h.res.singular, h.res.name) + "."}
		if missed := res.Missed(); missed > 0 {
			notice.Text += fmt.Sprintf(" %d could not be deleted and stay selected.", missed)
		}
	}
	if err := addNotice(c, notice); err != nil {
		return err
	}
	return h.respond(c, t, loc)
}

func handleRootRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/admin/posts/page/1/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound && !isHTMX(c) {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		if !isHTMX(c) {
			_ = RenderStatus(c, code, views.ServerError())
			return
		}
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
