package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisiblePageWindowScenarios(t *testing.T) {
	tests := []struct {
		name                string
		current, total, max int
		wantStart, wantEnd  int
	}{
		{"pinned to start", 1, 20, 8, 1, 8},
		{"pinned to end", 20, 20, 8, 13, 20},
		{"centered", 10, 20, 8, 6, 13},
		{"fewer pages than slots", 2, 3, 8, 1, 3},
		{"single page", 1, 1, 6, 1, 1},
		{"one slot", 7, 20, 1, 7, 7},
		{"one slot on last page", 20, 20, 1, 20, 20},
		{"near end", 18, 20, 6, 15, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := VisiblePageWindow(tt.current, tt.total, tt.max)
			assert.Equal(t, tt.wantStart, start, "start")
			assert.Equal(t, tt.wantEnd, end, "end")
		})
	}
}

func TestVisiblePageWindowBounds(t *testing.T) {
	for maxVisible := 1; maxVisible <= 12; maxVisible++ {
		for total := 1; total <= 30; total++ {
			for current := 1; current <= total; current++ {
				start, end := VisiblePageWindow(current, total, maxVisible)
				if start < 1 || start > current || current > end || end > total {
					t.Fatalf("window(%d,%d,%d) = (%d,%d) does not contain current within bounds",
						current, total, maxVisible, start, end)
				}
				if end-start+1 > maxVisible {
					t.Fatalf("window(%d,%d,%d) = (%d,%d) wider than %d",
						current, total, maxVisible, start, end, maxVisible)
				}
			}
		}
	}
}

func TestPaginationTotalPages(t *testing.T) {
	p := NewPagination(10)
	assert.Equal(t, 1, p.TotalPages(), "empty collection still has one page")

	p.SetTotalItems(95)
	assert.Equal(t, 10, p.TotalPages())

	p.SetTotalItems(100)
	assert.Equal(t, 10, p.TotalPages())
}

func TestGoToPageClamps(t *testing.T) {
	p := NewPagination(10)
	p.SetTotalItems(95)

	assert.Equal(t, 10, p.GoToPage(11))
	assert.Equal(t, 10, p.Current())
	assert.Equal(t, 1, p.GoToPage(0))
	assert.Equal(t, 1, p.GoToPage(-4))
	assert.Equal(t, 4, p.GoToPage(4))
}

func TestGoToPageIdempotent(t *testing.T) {
	for _, x := range []int{-3, 0, 1, 5, 10, 11, 500} {
		p := NewPagination(10)
		p.SetTotalItems(95)
		once := p.GoToPage(x)
		first := p.State()
		p.GoToPage(once)
		assert.Equal(t, first, p.State(), "GoToPage(%d)", x)
	}
}

func TestGoToPageCallbackAndNavigator(t *testing.T) {
	p := NewPagination(10)
	p.SetTotalItems(95)
	loc := NewLocation("/admin/posts/page/3/")
	p.SetNavigator(loc)

	var got []int
	p.OnPageChange(func(page int) { got = append(got, page) })

	p.GoToPage(42)

	assert.Equal(t, []int{10}, got, "callback receives the clamped page")
	path, ok := loc.TakeReplaced()
	require.True(t, ok)
	assert.Equal(t, "/admin/posts/page/10/", path)

	_, ok = loc.TakeReplaced()
	assert.False(t, ok, "replaced path is handed out once")
}

func TestSetCurrentCorrectsOnce(t *testing.T) {
	p := NewPagination(10)
	p.SetTotalItems(30)

	calls := 0
	p.OnPageChange(func(int) { calls++ })

	p.SetCurrent(9)
	assert.Equal(t, 3, p.Current())
	assert.Equal(t, 1, calls)

	p.SetCurrent(2)
	assert.Equal(t, 2, p.Current())
	assert.Equal(t, 1, calls, "in-range page is not a navigation")
}

func TestShrinkingTotalClampsCurrent(t *testing.T) {
	p := NewPagination(10)
	p.SetTotalItems(100)
	p.GoToPage(10)

	var got []int
	p.OnPageChange(func(page int) { got = append(got, page) })

	p.SetTotalItems(25)
	assert.Equal(t, 3, p.Current())
	assert.Equal(t, []int{3}, got)
}

func TestSetItemsPerPage(t *testing.T) {
	p := NewPagination(10)
	p.SetTotalItems(95)
	p.GoToPage(10)

	p.SetItemsPerPage(50)
	assert.Equal(t, 2, p.TotalPages())
	assert.Equal(t, 2, p.Current())

	p.SetItemsPerPage(0)
	assert.Equal(t, 50, p.ItemsPerPage(), "non-positive sizes are ignored")
}

func TestPrevNextAtEdges(t *testing.T) {
	p := NewPagination(10)
	p.SetTotalItems(30)

	calls := 0
	p.OnPageChange(func(int) { calls++ })

	page, moved := p.Prev()
	assert.False(t, moved)
	assert.Equal(t, 1, page)

	p.GoToPage(3)
	page, moved = p.Next()
	assert.False(t, moved)
	assert.Equal(t, 3, page)
	assert.Equal(t, 1, calls, "disabled edges do not navigate")

	page, moved = p.Prev()
	assert.True(t, moved)
	assert.Equal(t, 2, page)
}

func TestPager(t *testing.T) {
	p := NewPagination(10)
	p.SetTotalItems(200)
	p.GoToPage(10)

	pg := p.Pager(8)
	assert.True(t, pg.ShowFirst)
	assert.True(t, pg.ShowLast)
	assert.Equal(t, 20, pg.Last.Page)
	assert.False(t, pg.Prev.Disabled)
	assert.False(t, pg.Next.Disabled)
	require.Len(t, pg.Pages, 8)
	assert.Equal(t, 6, pg.Pages[0].Page)
	assert.Equal(t, 13, pg.Pages[7].Page)
	for _, l := range pg.Pages {
		assert.Equal(t, l.Page == 10, l.Active, "page %d", l.Page)
	}

	p.GoToPage(1)
	pg = p.Pager(8)
	assert.False(t, pg.ShowFirst)
	assert.True(t, pg.Prev.Disabled)
	assert.Equal(t, 1, pg.Prev.Page)

	p.GoToPage(20)
	pg = p.Pager(8)
	assert.False(t, pg.ShowLast)
	assert.True(t, pg.Next.Disabled)
	assert.Equal(t, 20, pg.Next.Page)
}

func TestPagePath(t *testing.T) {
	tests := []struct {
		path string
		page int
		want string
	}{
		{"/admin/posts/", 2, "/admin/posts/page/2/"},
		{"/admin/posts", 2, "/admin/posts/page/2/"},
		{"/admin/posts/page/9/", 3, "/admin/posts/page/3/"},
		{"/admin/posts/page/9", 3, "/admin/posts/page/3/"},
		{"", 1, "/page/1/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PagePath(tt.path, tt.page), tt.path)
	}
}

func TestPaginationNotifiesSubscribers(t *testing.T) {
	p := NewPagination(10)
	var states []PageState
	unsubscribe := p.Subscribe(func(s PageState) { states = append(states, s) })

	p.SetTotalItems(40)
	p.GoToPage(2)
	unsubscribe()
	p.GoToPage(3)

	require.Len(t, states, 2)
	assert.Equal(t, PageState{Current: 2, PerPage: 10, TotalItems: 40, TotalPages: 4}, states[1])
}

func TestSetCurrentBeforeTotalIsKnown(t *testing.T) {
	p := NewPagination(10)
	loc := NewLocation("/admin/items/page/5/")
	p.SetNavigator(loc)

	p.SetCurrent(5)
	assert.Equal(t, 5, p.Current(), "page from the URL is kept until a total arrives")
	_, ok := loc.TakeReplaced()
	assert.False(t, ok)

	p.SetCurrent(0)
	assert.Equal(t, 1, p.Current(), "lower bound always applies")

	p.SetCurrent(5)
	p.SetTotalItems(20)
	assert.Equal(t, 2, p.Current())
	path, ok := loc.TakeReplaced()
	require.True(t, ok)
	assert.Equal(t, "/admin/items/page/2/", path)
}
