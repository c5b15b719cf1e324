package pubadmin

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/pubadmin/datatable"
)

// Workspace is the table state of one browser: one Table per resource and
// the location each table reports page corrections to.
type Workspace struct {
	ID string

	mu        sync.Mutex
	tables    map[string]any
	locations map[string]*datatable.Location
	seen      time.Time
}

// Workspaces keeps a Workspace per browser, keyed by the id stored in its
// session cookie. Workspaces idle for longer than ttl are dropped.
type Workspaces struct {
	mu    sync.Mutex
	items map[string]*Workspace
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
	now   func() time.Time
}

// NewWorkspaces creates a registry and starts its cleanup loop. A
// non-positive ttl falls back to two hours.
func NewWorkspaces(ttl time.Duration) *Workspaces {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	w := &Workspaces{
		items: make(map[string]*Workspace),
		ttl:   ttl,
		stop:  make(chan struct{}),
		now:   time.Now,
	}
	go w.cleanup()
	return w
}

func (w *Workspaces) cleanup() {
	ticker := time.NewTicker(w.ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.Evict()
		}
	}
}

// Evict drops every workspace idle for longer than the ttl and returns how
// many were removed.
func (w *Workspaces) Evict() int {
	cutoff := w.now().Add(-w.ttl)
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for id, ws := range w.items {
		ws.mu.Lock()
		idle := ws.seen.Before(cutoff)
		ws.mu.Unlock()
		if idle {
			delete(w.items, id)
			n++
		}
	}
	return n
}

// Stop ends the cleanup loop.
func (w *Workspaces) Stop() {
	w.once.Do(func() { close(w.stop) })
}

// Get returns the workspace registered under id, creating it when id is
// empty or unknown. The returned workspace may carry a new id.
func (w *Workspaces) Get(id string) *Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()
	ws, ok := w.items[id]
	if !ok {
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ws = &Workspace{
			ID:        id,
			tables:    make(map[string]any),
			locations: make(map[string]*datatable.Location),
		}
		w.items[id] = ws
	}
	ws.mu.Lock()
	ws.seen = w.now()
	ws.mu.Unlock()
	return ws
}

// Len returns the number of live workspaces.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// tableFor returns the workspace's table of res, building it with build on
// first use.
func tableFor[R datatable.Record](ws *Workspace, res *resource[R], build func() (*datatable.Table[R], *datatable.Location)) (*datatable.Table[R], *datatable.Location) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if t, ok := ws.tables[res.name].(*datatable.Table[R]); ok {
		return t, ws.locations[res.name]
	}
	t, loc := build()
	ws.tables[res.name] = t
	ws.locations[res.name] = loc
	return t, loc
}
