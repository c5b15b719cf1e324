package pubadmin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pubadmin/datatable"
)

func countingFetcher(calls *int, err error) datatable.Fetcher[int] {
	return func(_ context.Context, key datatable.FetchKey) (datatable.Page[int], error) {
		*calls++
		if err != nil {
			return datatable.Page[int]{}, err
		}
		return datatable.Page[int]{Records: []int{key.Page}, TotalItems: 10}, nil
	}
}

func TestPageCacheServesRepeatedKeys(t *testing.T) {
	c := NewPageCache[int](time.Minute)
	calls := 0
	fetch := c.Wrap(countingFetcher(&calls, nil))
	key := datatable.FetchKey{Page: 2, PerPage: 5}

	first, err := fetch(context.Background(), key)
	require.NoError(t, err)
	second, err := fetch(context.Background(), key)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	_, err = fetch(context.Background(), datatable.FetchKey{Page: 3, PerPage: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestPageCacheExpires(t *testing.T) {
	c := NewPageCache[int](time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	calls := 0
	fetch := c.Wrap(countingFetcher(&calls, nil))
	key := datatable.FetchKey{Page: 1, PerPage: 5}

	_, _ = fetch(context.Background(), key)
	now = now.Add(2 * time.Minute)
	_, _ = fetch(context.Background(), key)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, c.Len())
}

func TestPageCacheInvalidate(t *testing.T) {
	c := NewPageCache[int](time.Minute)
	calls := 0
	fetch := c.Wrap(countingFetcher(&calls, nil))
	key := datatable.FetchKey{Page: 1, PerPage: 5}

	_, _ = fetch(context.Background(), key)
	c.Invalidate()
	assert.Equal(t, 0, c.Len())
	_, _ = fetch(context.Background(), key)
	assert.Equal(t, 2, calls)
}

func TestPageCacheSkipsErrors(t *testing.T) {
	c := NewPageCache[int](time.Minute)
	calls := 0
	boom := errors.New("boom")
	fetch := c.Wrap(countingFetcher(&calls, boom))

	_, err := fetch(context.Background(), datatable.FetchKey{Page: 1})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestPageCacheDisabled(t *testing.T) {
	c := NewPageCache[int](-1)
	calls := 0
	fetch := c.Wrap(countingFetcher(&calls, nil))
	key := datatable.FetchKey{Page: 1, PerPage: 5}

	_, _ = fetch(context.Background(), key)
	_, _ = fetch(context.Background(), key)

	assert.Equal(t, 2, calls)
	assert.False(t, c.Enabled())
}
