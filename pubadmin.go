// Package pubadmin is the admin interface of a blog content backend, built
// with Go, Echo, templ and htmx. It renders paged, sortable and selectable
// tables of posts, categories and tags over the backend's REST API.
//
// All table behavior lives in the datatable package; pubadmin keeps one set
// of tables per browser, forwards the browser's clicks to them and renders
// their views.
package pubadmin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pubadmin/api"
	"github.com/eringen/pubadmin/datatable"
)

// App is the central pubadmin application. It wires together the backend
// client, preference store, caches, handlers and middleware.
type App struct {
	Config     Config
	Echo       *echo.Echo
	API        *api.Client
	Prefs      *PrefStore
	Workspaces *Workspaces

	posts      *resource[api.Post]
	categories *resource[api.Category]
	tags       *resource[api.Tag]

	deleteLimiter *ActionLimiter
	customRoutes  []func(*App)
	staticDir     string
	ready         bool
}

// New creates a new pubadmin App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.API == nil {
		a.API = api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.APITimeout))
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(ParseLogLevel(cfg.LogLevel))

	return a
}

// ParseLogLevel maps a level name to an echo log level. Unknown names map
// to INFO.
func ParseLogLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Setup opens the preference store and registers middleware and routes.
// Start calls it; tests call it directly to serve requests without
// listening.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	prefs, err := NewPrefStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pubadmin: init preference store: %w", err)
	}
	a.Prefs = prefs

	a.Workspaces = NewWorkspaces(a.Config.WorkspaceTTL)
	a.deleteLimiter = NewActionLimiter(a.Config.DeleteLimit, a.Config.DeleteWindow)

	a.posts = &resource[api.Post]{
		name:      "posts",
		singular:  "post",
		title:     "Posts",
		columns:   postColumns,
		fetcher:   postFetcher(a.API),
		deleter:   a.API.DeletePosts,
		cache:     NewPageCache[api.Post](a.Config.PageCacheTTL),
		creatable: true,
	}
	a.categories = &resource[api.Category]{
		name:        "categories",
		singular:    "category",
		title:       "Categories",
		columns:     categoryColumns,
		fetcher:     categoryFetcher(a.API),
		defaultSort: datatable.SortSpec{Column: "name", Direction: datatable.Ascending},
		cache:       NewPageCache[api.Category](a.Config.PageCacheTTL),
	}
	a.tags = &resource[api.Tag]{
		name:        "tags",
		singular:    "tag",
		title:       "Tags",
		columns:     tagColumns,
		fetcher:     tagFetcher(a.API),
		defaultSort: datatable.SortSpec{Column: "name", Direction: datatable.Ascending},
		cache:       NewPageCache[api.Tag](a.Config.PageCacheTTL),
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and starts the server.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)

	e.GET("/", handleRootRedirect)
	e.GET("/admin/", handleRootRedirect)

	registerTable(a, a.posts)
	registerTable(a, a.categories)
	registerTable(a, a.tags)

	e.POST("/admin/posts/", a.handleCreatePost)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Workspaces != nil {
		a.Workspaces.Stop()
	}
	if a.deleteLimiter != nil {
		a.deleteLimiter.Stop()
	}
	if a.Prefs != nil {
		return a.Prefs.Close()
	}
	return nil
}
