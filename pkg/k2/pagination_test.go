package k2_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// pagedFetch serves pre-cut pages and records how often it was called.
func pagedFetch(pages [][]string, total *int) (k2.PageFunc[string], *int) {
	calls := 0

	return func(_ context.Context, _, offset int) ([]string, *int, error) {
		calls++

		served := 0
		for _, page := range pages {
			if served == offset {
				return page, total, nil
			}

			served += len(page)
		}

		return nil, total, nil
	}, &calls
}

func TestPaginationIterator_WalksAllPages(t *testing.T) {
	t.Parallel()

	total := 3
	fetch, calls := pagedFetch([][]string{{"a", "b"}, {"c"}}, &total)

	iterator := k2.NewPaginationIterator(context.Background(), fetch, 2)

	var items []string

	for iterator.HasNext() {
		item, err := iterator.Next()
		require.NoError(t, err)

		items = append(items, item)
	}

	assert.Equal(t, []string{"a", "b", "c"}, items)
	assert.Equal(t, 2, *calls)
	require.NoError(t, iterator.Err())

	_, err := iterator.Next()
	require.ErrorIs(t, err, k2.ErrNoMoreItems)
}

func TestPaginationIterator_TotalStopsExtraFetch(t *testing.T) {
	t.Parallel()

	// Both pages are full-sized, so only the reported total can tell the
	// iterator the second page was the last one.
	total := 4
	fetch, calls := pagedFetch([][]string{{"a", "b"}, {"c", "d"}}, &total)

	iterator := k2.NewPaginationIterator(context.Background(), fetch, 2)

	items, err := iterator.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, items)
	assert.Equal(t, 2, *calls)
}

func TestPaginationIterator_EmptyFirstPage(t *testing.T) {
	t.Parallel()

	fetch, calls := pagedFetch(nil, nil)

	iterator := k2.NewPaginationIterator(context.Background(), fetch, 2)

	assert.False(t, iterator.HasNext())

	_, err := iterator.Next()
	require.ErrorIs(t, err, k2.ErrNoMoreItems)
	assert.Equal(t, 1, *calls)
}

func TestPaginationIterator_ErrorIsSticky(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("list failed")
	calls := 0
	fetch := func(_ context.Context, _, _ int) ([]string, *int, error) {
		calls++

		return nil, nil, fetchErr
	}

	iterator := k2.NewPaginationIterator(context.Background(), fetch, 2)

	assert.True(t, iterator.HasNext())

	_, err := iterator.Next()
	require.ErrorIs(t, err, fetchErr)

	// The failed fetch is not retried and the error keeps coming back.
	_, err = iterator.Next()
	require.ErrorIs(t, err, fetchErr)
	require.ErrorIs(t, iterator.Err(), fetchErr)
	assert.Equal(t, 1, calls)
}

func TestPaginationIterator_DefaultPageSize(t *testing.T) {
	t.Parallel()

	var gotLimit int

	fetch := func(_ context.Context, limit, _ int) ([]string, *int, error) {
		gotLimit = limit

		return []string{"a"}, nil, nil
	}

	iterator := k2.NewPaginationIterator(context.Background(), fetch, 0)

	require.True(t, iterator.HasNext())
	assert.Equal(t, 100, gotLimit)
}

func TestPaginationIterator_ForEach(t *testing.T) {
	t.Parallel()

	t.Run("visits every item", func(t *testing.T) {
		t.Parallel()

		fetch, _ := pagedFetch([][]string{{"a", "b"}, {"c"}}, nil)
		iterator := k2.NewPaginationIterator(context.Background(), fetch, 2)

		var seen []string

		err := iterator.ForEach(func(item string) error {
			seen = append(seen, item)

			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, seen)
	})

	t.Run("stops on callback error", func(t *testing.T) {
		t.Parallel()

		fetch, _ := pagedFetch([][]string{{"a", "b"}, {"c"}}, nil)
		iterator := k2.NewPaginationIterator(context.Background(), fetch, 2)

		stop := errors.New("stop")
		visited := 0

		err := iterator.ForEach(func(string) error {
			visited++

			return stop
		})
		require.ErrorIs(t, err, stop)
		assert.Equal(t, 1, visited)
	})
}

func TestFetchAllPages(t *testing.T) {
	t.Parallel()

	t.Run("collects every page", func(t *testing.T) {
		t.Parallel()

		fetch, calls := pagedFetch([][]string{{"a", "b"}, {"c", "d"}, {"e"}}, nil)

		items, err := k2.FetchAllPages(context.Background(), fetch, &k2.PaginationOptions{PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
		assert.Equal(t, 3, *calls)
	})

	t.Run("honors MaxPages", func(t *testing.T) {
		t.Parallel()

		fetch, calls := pagedFetch([][]string{{"a", "b"}, {"c", "d"}, {"e"}}, nil)

		items, err := k2.FetchAllPages(context.Background(), fetch,
			&k2.PaginationOptions{PageSize: 2, MaxPages: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, items)
		assert.Equal(t, 2, *calls)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		fetchErr := errors.New("list failed")
		fetch := func(_ context.Context, _, _ int) ([]string, *int, error) {
			return nil, nil, fetchErr
		}

		_, err := k2.FetchAllPages(context.Background(), fetch, nil)
		require.ErrorIs(t, err, fetchErr)
	})
}

func TestStreamPages(t *testing.T) {
	t.Parallel()

	t.Run("delivers pages in order and closes", func(t *testing.T) {
		t.Parallel()

		fetch, _ := pagedFetch([][]string{{"a", "b"}, {"c"}}, nil)

		var pages [][]string

		for page := range k2.StreamPages(context.Background(), fetch, &k2.PaginationOptions{PageSize: 2}) {
			require.NoError(t, page.Err)
			pages = append(pages, page.Items)
		}

		assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, pages)
	})

	t.Run("delivers the error as the final result", func(t *testing.T) {
		t.Parallel()

		fetchErr := errors.New("list failed")
		call := 0
		fetch := func(_ context.Context, _, _ int) ([]string, *int, error) {
			call++
			if call == 1 {
				return []string{"a", "b"}, nil, nil
			}

			return nil, nil, fetchErr
		}

		var results []k2.PageResult[string]

		for page := range k2.StreamPages(context.Background(), fetch, &k2.PaginationOptions{PageSize: 2}) {
			results = append(results, page)
		}

		require.Len(t, results, 2)
		require.NoError(t, results[0].Err)
		require.ErrorIs(t, results[1].Err, fetchErr)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(_ context.Context, _, _ int) ([]string, *int, error) {
			return []string{"a", "b"}, nil, nil
		}

		pages := k2.StreamPages(ctx, fetch, &k2.PaginationOptions{PageSize: 2})

		first, ok := <-pages
		require.True(t, ok)
		require.NoError(t, first.Err)

		cancel()

		// The channel closes once the producer observes cancellation.
		for range pages { //nolint:revive // draining until close
		}
	})
}
