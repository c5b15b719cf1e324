package datatable

import (
	"strconv"
	"strings"
	"sync"
)

// DefaultMaxVisiblePages is the number of numbered page links a pager shows
// when the caller does not choose one.
const DefaultMaxVisiblePages = 6

// Navigator is the location the current page is mirrored into.
type Navigator interface {
	// Path returns the current location path.
	Path() string
	// Replace swaps the current location for path without adding a
	// history entry.
	Replace(path string)
}

// Location is an in-memory Navigator. HTTP handlers read the replaced path
// back with TakeReplaced and forward it to the browser. It is safe for
// concurrent use.
type Location struct {
	mu      sync.Mutex
	path    string
	pending bool
}

// NewLocation returns a Location starting at path.
func NewLocation(path string) *Location {
	return &Location{path: path}
}

// Path implements Navigator.
func (l *Location) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// Replace implements Navigator.
func (l *Location) Replace(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.path = path
	l.pending = true
}

// TakeReplaced returns the last replaced path once.
func (l *Location) TakeReplaced() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.pending {
		return "", false
	}
	l.pending = false
	return l.path, true
}

// PagePath rewrites path so that it ends in "/page/{page}/", dropping any
// page segment already present.
func PagePath(path string, page int) string {
	base := strings.TrimRight(path, "/")
	if i := strings.LastIndex(base, "/"); i >= 0 {
		if _, err := strconv.Atoi(base[i+1:]); err == nil && strings.HasSuffix(base[:i], "/page") {
			base = strings.TrimSuffix(base[:i], "/page")
		}
	}
	return base + "/page/" + strconv.Itoa(page) + "/"
}

// PageState is the snapshot handed to pagination subscribers.
type PageState struct {
	Current    int
	PerPage    int
	TotalItems int
	TotalPages int
}

// Pagination tracks the current page, the page size and the item total.
// The current page is kept inside [1, TotalPages] at all times once the data
// source has reported a total; before that only the lower bound applies, so
// a page restored from the URL survives until the first fetch answers.
type Pagination struct {
	Observable[PageState]
	current    int
	perPage    int
	totalItems int
	totalKnown bool
	onChange   func(page int)
	nav        Navigator
	correcting bool
}

// NewPagination returns a Pagination on page 1. A non-positive perPage
// falls back to 1.
func NewPagination(perPage int) *Pagination {
	if perPage < 1 {
		perPage = 1
	}
	return &Pagination{current: 1, perPage: perPage}
}

// OnPageChange sets the callback invoked with the clamped page after every
// navigation.
func (p *Pagination) OnPageChange(fn func(page int)) {
	p.onChange = fn
}

// SetNavigator sets where the current page is mirrored.
func (p *Pagination) SetNavigator(nav Navigator) {
	p.nav = nav
}

// Current returns the current page.
func (p *Pagination) Current() int { return p.current }

// ItemsPerPage returns the page size.
func (p *Pagination) ItemsPerPage() int { return p.perPage }

// TotalItems returns the item total across all pages.
func (p *Pagination) TotalItems() int { return p.totalItems }

// TotalPages returns ceil(TotalItems/ItemsPerPage), never less than 1.
func (p *Pagination) TotalPages() int {
	n := (p.totalItems + p.perPage - 1) / p.perPage
	if n < 1 {
		return 1
	}
	return n
}

// State returns a snapshot of the pagination.
func (p *Pagination) State() PageState {
	return PageState{
		Current:    p.current,
		PerPage:    p.perPage,
		TotalItems: p.totalItems,
		TotalPages: p.TotalPages(),
	}
}

// GoToPage clamps requested into [1, TotalPages], makes it current, calls
// the page-change callback with the clamped value and replaces the
// navigator location. It returns the clamped page.
func (p *Pagination) GoToPage(requested int) int {
	page := clamp(requested, 1, p.TotalPages())
	p.current = page
	if p.onChange != nil {
		p.onChange(page)
	}
	if p.nav != nil {
		p.nav.Replace(PagePath(p.nav.Path(), page))
	}
	p.notify(p.State())
	return page
}

// Prev moves one page back. It is a no-op on the first page.
func (p *Pagination) Prev() (int, bool) {
	if p.current <= 1 {
		return p.current, false
	}
	return p.GoToPage(p.current - 1), true
}

// Next moves one page forward. It is a no-op on the last page.
func (p *Pagination) Next() (int, bool) {
	if p.current >= p.TotalPages() {
		return p.current, false
	}
	return p.GoToPage(p.current + 1), true
}

// SetCurrent sets the page from an untrusted source such as a URL segment.
// An out-of-range value is corrected through GoToPage.
func (p *Pagination) SetCurrent(page int) {
	if p.current != page {
		p.current = page
		p.notify(p.State())
	}
	p.checkBounds()
}

// SetTotalItems records the item total reported by the data source.
func (p *Pagination) SetTotalItems(n int) {
	if n < 0 {
		n = 0
	}
	p.totalKnown = true
	if p.totalItems != n {
		p.totalItems = n
		p.notify(p.State())
	}
	p.checkBounds()
}

// SetItemsPerPage changes the page size. Non-positive values are ignored.
func (p *Pagination) SetItemsPerPage(n int) {
	if n < 1 || n == p.perPage {
		return
	}
	p.perPage = n
	p.notify(p.State())
	p.checkBounds()
}

// checkBounds corrects an out-of-range current page exactly once.
func (p *Pagination) checkBounds() {
	if p.correcting {
		return
	}
	total := p.TotalPages()
	if p.current >= 1 && (p.current <= total || !p.totalKnown) {
		return
	}
	p.correcting = true
	defer func() { p.correcting = false }()
	p.GoToPage(clamp(p.current, 1, total))
}

// Window returns the range of numbered page links to show.
func (p *Pagination) Window(maxVisible int) (start, end int) {
	return VisiblePageWindow(p.current, p.TotalPages(), maxVisible)
}

// VisiblePageWindow returns the inclusive range of at most maxVisible page
// numbers around current. The window is centered on current except near the
// ends, where it pins to page 1 or to total.
func VisiblePageWindow(current, total, maxVisible int) (start, end int) {
	if maxVisible < 1 {
		maxVisible = 1
	}
	if total < 1 {
		total = 1
	}
	half := maxVisible / 2
	switch {
	case current <= half:
		start = 1
	case current+half >= total:
		start = max(total-maxVisible+1, 1)
	default:
		start = current - half
	}
	end = min(start+maxVisible-1, total)
	return start, end
}

// PageLink is one control of a pager.
type PageLink struct {
	Label    string
	Page     int
	Active   bool
	Disabled bool
}

// Pager is the complete set of controls of a pagination bar.
type Pager struct {
	Prev      PageLink
	Next      PageLink
	First     PageLink
	Last      PageLink
	ShowFirst bool // page 1 and an ellipsis precede the window
	ShowLast  bool // an ellipsis and the last page follow the window
	Pages     []PageLink
	Current   int
	Total     int
}

// Pager builds the controls for the current state.
func (p *Pagination) Pager(maxVisible int) Pager {
	total := p.TotalPages()
	cur := p.current
	start, end := VisiblePageWindow(cur, total, maxVisible)
	pg := Pager{
		Prev:      PageLink{Label: "Previous", Page: max(cur-1, 1), Disabled: cur <= 1},
		Next:      PageLink{Label: "Next", Page: min(cur+1, total), Disabled: cur >= total},
		First:     PageLink{Label: "1", Page: 1, Active: cur == 1},
		Last:      PageLink{Label: strconv.Itoa(total), Page: total, Active: cur == total},
		ShowFirst: start > 1,
		ShowLast:  end < total,
		Current:   cur,
		Total:     total,
	}
	for n := start; n <= end; n++ {
		pg.Pages = append(pg.Pages, PageLink{Label: strconv.Itoa(n), Page: n, Active: n == cur})
	}
	return pg
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
