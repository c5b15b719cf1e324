package datatable

import (
	"context"
	"fmt"
)

// Record is anything with a stable unique identifier.
type Record interface {
	RecordID() int
}

// FetchKey identifies one page request. A change of key supersedes any
// request still in flight for an older key.
type FetchKey struct {
	Page    int
	PerPage int
	Sort    SortSpec
}

// String returns a compact form usable as a cache key.
func (k FetchKey) String() string {
	return fmt.Sprintf("page=%d&limit=%d&sort=%s&order=%s", k.Page, k.PerPage, k.Sort.Column, k.Sort.Direction)
}

// Page is one page of records and the total item count across all pages.
type Page[R any] struct {
	Records    []R
	TotalItems int
}

// Fetcher loads the page described by key.
type Fetcher[R any] func(ctx context.Context, key FetchKey) (Page[R], error)

// Deleter removes records by id and returns the ids actually deleted.
type Deleter func(ctx context.Context, ids []int) ([]int, error)

// SliceFetcher adapts a loader that returns a whole, unpaged collection. The
// collection is sorted in memory with the column comparators and then cut
// to the requested page.
func SliceFetcher[R any](load func(ctx context.Context) ([]R, error), reg *ColumnRegistry[R]) Fetcher[R] {
	return func(ctx context.Context, key FetchKey) (Page[R], error) {
		all, err := load(ctx)
		if err != nil {
			return Page[R]{}, err
		}
		sorted := SortRecords(all, key.Sort, reg)
		perPage := max(key.PerPage, 1)
		from := min(max(key.Page-1, 0)*perPage, len(sorted))
		to := min(from+perPage, len(sorted))
		return Page[R]{Records: sorted[from:to], TotalItems: len(sorted)}, nil
	}
}
