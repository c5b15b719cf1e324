// Package datatable is a generic engine for sortable, paginated,
// multi-select tables over records fetched page by page from a backend.
//
// A Table composes four observable state objects: ColumnRegistry (column
// shape and visibility), SortState, Selection and Pagination. Handlers mutate
// them through Table methods, start a fetch keyed by (page, page size, sort)
// and render the resulting View. Responses for superseded keys are dropped.
package datatable

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotSortable is returned when sorting is requested on a column that has
// neither a comparator nor a backend sort field.
var ErrNotSortable = errors.New("column is not sortable")

// maxReloads bounds how often Load refetches after a commit moved the key,
// which happens when the reported total clamps the current page.
const maxReloads = 2

// Status is the load state of a table.
type Status int

const (
	// StatusIdle means nothing has been requested yet.
	StatusIdle Status = iota
	// StatusLoading means a request is in flight.
	StatusLoading
	// StatusReady means the last request succeeded.
	StatusReady
	// StatusFailed means the last request failed.
	StatusFailed
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Logger is the subset of a leveled logger the table writes to.
// echo.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

type options struct {
	perPage     int
	maxVisible  int
	defaultSort SortSpec
	clientSort  bool
	logger      Logger
	nav         Navigator
	deleter     Deleter
	message     func(error) string
}

// Option configures a Table.
type Option func(*options)

// WithItemsPerPage sets the initial page size.
func WithItemsPerPage(n int) Option {
	return func(o *options) { o.perPage = n }
}

// WithMaxVisiblePages sets how many numbered links the pager shows.
func WithMaxVisiblePages(n int) Option {
	return func(o *options) { o.maxVisible = n }
}

// WithDefaultSort sets the sort applied before the user clicks any header.
func WithDefaultSort(spec SortSpec) Option {
	return func(o *options) { o.defaultSort = spec }
}

// WithClientSort sorts loaded rows in memory with the column comparators
// instead of asking the fetcher to sort. The fetch key then carries no sort,
// so this only orders rows within the loaded page.
//
// Deprecated: server-side sorting composes with pagination; use it unless
// the data source cannot sort.
func WithClientSort() Option {
	return func(o *options) { o.clientSort = true }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithNavigator mirrors the current page into nav.
func WithNavigator(nav Navigator) Option {
	return func(o *options) { o.nav = nav }
}

// WithDeleter enables bulk deletion through d.
func WithDeleter(d Deleter) Option {
	return func(o *options) { o.deleter = d }
}

// WithErrorMessage sets how fetch errors are turned into display text.
func WithErrorMessage(fn func(error) string) Option {
	return func(o *options) { o.message = fn }
}

// Table is the data-table engine. It composes the column registry, sort,
// selection and pagination states with a fetch boundary and renders Views.
// All methods are safe for concurrent use.
type Table[R Record] struct {
	mu         sync.Mutex
	columns    *ColumnRegistry[R]
	sort       *SortState
	selection  *Selection
	pagination *Pagination
	fetch      Fetcher[R]
	opts       options

	records   []R
	status    Status
	err       error
	seq       uint64
	inflight  FetchKey
	loadedKey FetchKey
	needsLoad bool
}

// New returns a Table over columns that loads pages through fetch.
func New[R Record](columns *ColumnRegistry[R], fetch Fetcher[R], opts ...Option) *Table[R] {
	o := options{
		perPage:    20,
		maxVisible: DefaultMaxVisiblePages,
		logger:     nopLogger{},
		message:    func(err error) string { return err.Error() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	t := &Table[R]{
		columns:    columns,
		sort:       NewSortState(o.defaultSort),
		selection:  NewSelection(),
		pagination: NewPagination(o.perPage),
		fetch:      fetch,
		opts:       o,
		needsLoad:  true,
	}
	if o.nav != nil {
		t.pagination.SetNavigator(o.nav)
	}
	t.pagination.OnPageChange(func(int) { t.needsLoad = true })
	t.sort.Subscribe(func(spec SortSpec) {
		if t.opts.clientSort {
			t.records = SortRecords(t.records, spec, t.columns)
			return
		}
		t.needsLoad = true
	})
	return t
}

// Key returns the fetch key of the current state.
func (t *Table[R]) Key() FetchKey {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.key()
}

func (t *Table[R]) key() FetchKey {
	k := FetchKey{Page: t.pagination.Current(), PerPage: t.pagination.ItemsPerPage()}
	if !t.opts.clientSort {
		k.Sort = t.sort.Spec()
	}
	return k
}

// NeedsLoad reports whether a fetch has to be started for the current
// state. While a fetch is in flight it is true only when the state moved
// away from the key being fetched.
func (t *Table[R]) NeedsLoad() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.needsLoad {
		return true
	}
	if t.status == StatusLoading {
		return t.key() != t.inflight
	}
	return t.status == StatusIdle || t.key() != t.loadedKey
}

// Invalidate marks the loaded page as outdated so that NeedsLoad reports
// true until the next Load.
func (t *Table[R]) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.needsLoad = true
}

// Status returns the load state.
func (t *Table[R]) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Load fetches the page for the current key and commits it. If another Load
// started meanwhile, the response is discarded and ErrStaleResponse is
// returned. A response whose key no longer matches the state is dropped and
// the current key is fetched instead. Fetch errors move the table to
// StatusFailed and are returned.
func (t *Table[R]) Load(ctx context.Context) error {
	t.mu.Lock()
	key, seq := t.begin()
	t.mu.Unlock()
	return t.run(ctx, key, seq)
}

// Start runs Load in the background. The fetch is registered before Start
// returns, so any earlier fetch is already superseded. The returned channel
// receives the result and is then closed.
func (t *Table[R]) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	t.mu.Lock()
	key, seq := t.begin()
	t.mu.Unlock()
	go func() {
		defer close(done)
		done <- t.run(ctx, key, seq)
	}()
	return done
}

// begin registers a fetch for the current key. t.mu must be held.
func (t *Table[R]) begin() (FetchKey, uint64) {
	key := t.key()
	t.seq++
	t.status = StatusLoading
	t.needsLoad = false
	t.inflight = key
	return key, t.seq
}

func (t *Table[R]) run(ctx context.Context, key FetchKey, seq uint64) error {
	reloads := 0
	for {
		page, err := t.fetch(ctx, key)

		t.mu.Lock()
		if seq != t.seq {
			t.mu.Unlock()
			t.opts.logger.Debugf("datatable: discarding response for %s", key)
			return ErrStaleResponse
		}
		if cur := t.key(); cur != key {
			t.opts.logger.Debugf("datatable: discarding response for %s, state is at %s", key, cur)
			if cerr := ctx.Err(); cerr != nil {
				t.needsLoad = true
				t.mu.Unlock()
				return cerr
			}
			key, seq = t.begin()
			t.mu.Unlock()
			continue
		}
		if err != nil {
			t.status = StatusFailed
			t.err = err
			t.mu.Unlock()
			return err
		}
		t.commit(key, page)
		// the reported total may have clamped the current page
		if t.key() == key || reloads >= maxReloads {
			t.mu.Unlock()
			return nil
		}
		reloads++
		key, seq = t.begin()
		t.mu.Unlock()
	}
}

func (t *Table[R]) commit(key FetchKey, page Page[R]) {
	records := page.Records
	if t.opts.clientSort {
		records = SortRecords(records, t.sort.Spec(), t.columns)
	}
	t.records = records
	t.loadedKey = key
	t.status = StatusReady
	t.err = nil
	t.pagination.SetTotalItems(page.TotalItems)
	t.selection.Prune(t.ids())
}

func (t *Table[R]) ids() []int {
	ids := make([]int, len(t.records))
	for i, r := range t.records {
		ids[i] = r.RecordID()
	}
	return ids
}

// Records returns the loaded records in display order.
func (t *Table[R]) Records() []R {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]R, len(t.records))
	copy(out, t.records)
	return out
}

// ToggleSort applies a header click on column key.
func (t *Table[R]) ToggleSort(key ColumnKey) (SortSpec, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	col, ok := t.columns.Lookup(key)
	if !ok {
		return t.sort.Spec(), fmt.Errorf("%w: %q", ErrColumnNotFound, key)
	}
	if !col.Sortable() {
		return t.sort.Spec(), fmt.Errorf("%w: %q", ErrNotSortable, key)
	}
	return t.sort.Toggle(key), nil
}

// SetSort restores a sort specification. Unknown or unsortable columns
// reset to the default sort.
func (t *Table[R]) SetSort(spec SortSpec) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if spec.IsSorted() {
		if col, ok := t.columns.Lookup(spec.Column); !ok || !col.Sortable() {
			t.sort.Reset()
			return
		}
	}
	t.sort.Set(spec)
}

// Sort returns the active sort specification.
func (t *Table[R]) Sort() SortSpec {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sort.Spec()
}

// ToggleColumn shows or hides the column registered under key.
func (t *Table[R]) ToggleColumn(key ColumnKey) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.columns.ToggleVisible(key)
}

// ApplyVisibility restores stored column visibility.
func (t *Table[R]) ApplyVisibility(vis map[ColumnKey]bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.columns.ApplyVisibility(vis)
}

// ToggleRow flips the selection of the loaded record id. Ids that are not
// on the loaded page are ignored. It returns whether id is selected.
func (t *Table[R]) ToggleRow(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.records {
		if r.RecordID() == id {
			return t.selection.Toggle(id)
		}
	}
	return false
}

// ToggleAll selects every loaded record, or clears the selection when all
// of them are selected already.
func (t *Table[R]) ToggleAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := t.ids()
	if t.selection.IsAllSelected(ids) {
		t.selection.Clear()
		return
	}
	t.selection.SelectAll(ids)
}

// ClearSelection deselects everything.
func (t *Table[R]) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Clear()
}

// Selected returns the selected ids in ascending order.
func (t *Table[R]) Selected() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selection.IDs()
}

// GoToPage navigates to requested, clamped into range.
func (t *Table[R]) GoToPage(requested int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pagination.GoToPage(requested)
}

// SetPage sets the page from an untrusted source such as the URL.
func (t *Table[R]) SetPage(page int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pagination.SetCurrent(page)
	return t.pagination.Current()
}

// PrevPage moves one page back unless already on the first page.
func (t *Table[R]) PrevPage() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	page, _ := t.pagination.Prev()
	return page
}

// NextPage moves one page forward unless already on the last page.
func (t *Table[R]) NextPage() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	page, _ := t.pagination.Next()
	return page
}

// SetItemsPerPage changes the page size.
func (t *Table[R]) SetItemsPerPage(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pagination.SetItemsPerPage(n)
}

// PageState returns a snapshot of the pagination.
func (t *Table[R]) PageState() PageState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pagination.State()
}

// DeleteResult reports a bulk delete: the ids sent to the deleter and the
// ids it confirmed.
type DeleteResult struct {
	Requested []int
	Deleted   []int
}

// Missed returns how many requested ids were not confirmed.
func (r DeleteResult) Missed() int {
	return len(r.Requested) - len(r.Deleted)
}

// DeleteSelected asks the deleter to remove the selected records. Only the
// ids it confirms are removed from the loaded records and the selection;
// the others stay selected. On error nothing changes.
func (t *Table[R]) DeleteSelected(ctx context.Context) (DeleteResult, error) {
	if t.opts.deleter == nil {
		return DeleteResult{}, ErrNoDeleter
	}
	t.mu.Lock()
	ids := t.selection.IDs()
	t.mu.Unlock()
	if len(ids) == 0 {
		return DeleteResult{}, ErrNothingSelected
	}

	deleted, err := t.opts.deleter(ctx, ids)
	if err != nil {
		return DeleteResult{Requested: ids}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	gone := make(map[int]struct{}, len(deleted))
	for _, id := range deleted {
		gone[id] = struct{}{}
	}
	kept := t.records[:0:0]
	for _, r := range t.records {
		if _, ok := gone[r.RecordID()]; !ok {
			kept = append(kept, r)
		}
	}
	removed := len(t.records) - len(kept)
	t.records = kept
	t.selection.RemoveIDs(deleted)
	t.needsLoad = true
	t.pagination.SetTotalItems(t.pagination.TotalItems() - removed)
	return DeleteResult{Requested: ids, Deleted: deleted}, nil
}

// SubscribeColumns registers fn for column visibility changes.
func (t *Table[R]) SubscribeColumns(fn func(map[ColumnKey]bool)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locked(t.columns.Subscribe(fn))
}

// SubscribePagination registers fn for pagination changes.
func (t *Table[R]) SubscribePagination(fn func(PageState)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locked(t.pagination.Subscribe(fn))
}

// SubscribeSort registers fn for sort changes.
func (t *Table[R]) SubscribeSort(fn func(SortSpec)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locked(t.sort.Subscribe(fn))
}

// SubscribeSelection registers fn for selection changes.
func (t *Table[R]) SubscribeSelection(fn func([]int)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locked(t.selection.Subscribe(fn))
}

// locked wraps an unsubscribe func so that it runs under the table lock,
// like every notify does.
func (t *Table[R]) locked(unsubscribe func()) func() {
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		unsubscribe()
	}
}
