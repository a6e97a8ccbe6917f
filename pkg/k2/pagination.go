package k2

import (
	"context"
	"errors"

	"github.com/knowledge2-io/knowledge2-go/internal/constants"
)

// ErrNoMoreItems is returned by PaginationIterator.Next when the sequence is
// exhausted.
var ErrNoMoreItems = errors.New("no more items")

// PageFunc fetches one page of a list endpoint: up to limit items starting at
// offset, plus the reported total when the endpoint provides one (nil
// otherwise).
type PageFunc[T any] func(ctx context.Context, limit, offset int) (items []T, total *int, err error)

// PaginationIterator lazily walks a list endpoint, fetching the next page
// only when the buffered one is exhausted. Iteration stops when a page comes
// back short, empty, or the offset reaches the reported total. An error
// raised mid-iteration ends the sequence with that error.
//
// Each call-site should construct a fresh iterator; instances are restartable
// only by constructing a new one and are not safe for concurrent use.
type PaginationIterator[T any] struct {
	ctx       context.Context
	fetch     PageFunc[T]
	pageSize  int
	offset    int
	buffer    []T
	exhausted bool
	err       error
}

// NewPaginationIterator creates a new iterator over a list endpoint.
// pageSize <= 0 selects the default page size.
func NewPaginationIterator[T any](ctx context.Context, fetch PageFunc[T], pageSize int) *PaginationIterator[T] {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}

	return &PaginationIterator[T]{
		ctx:      ctx,
		fetch:    fetch,
		pageSize: pageSize,
	}
}

// fill fetches the next page when the buffer is empty. The offset only ever
// advances; a page is never re-requested once consumed.
func (it *PaginationIterator[T]) fill() {
	if len(it.buffer) > 0 || it.exhausted || it.err != nil {
		return
	}

	items, total, err := it.fetch(it.ctx, it.pageSize, it.offset)
	if err != nil {
		it.err = err
		it.exhausted = true

		return
	}

	it.buffer = items
	it.offset += len(items)

	if len(items) < it.pageSize {
		it.exhausted = true
	} else if total != nil && it.offset >= *total {
		it.exhausted = true
	}
}

// HasNext reports whether Next will yield another item or a pending error.
func (it *PaginationIterator[T]) HasNext() bool {
	it.fill()

	return len(it.buffer) > 0 || it.err != nil
}

// Next returns the next item. It returns ErrNoMoreItems once the sequence is
// exhausted; an error raised by a page fetch is sticky and returned on every
// subsequent call.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	it.fill()

	if len(it.buffer) == 0 {
		if it.err != nil {
			return zero, it.err
		}

		return zero, ErrNoMoreItems
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

// Err returns the error that terminated iteration, if any.
func (it *PaginationIterator[T]) Err() error {
	return it.err
}

// All drains the iterator and returns every remaining item.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var items []T

	for {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return items, nil
		}

		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}
}

// ForEach applies fn to every remaining item. Iteration stops on the first
// error from fn or from a page fetch.
func (it *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}
}

// PaginationOptions tunes the page-level helpers.
type PaginationOptions struct {
	// PageSize is the number of items requested per page.
	PageSize int

	// MaxPages bounds the number of page fetches; 0 means unbounded.
	MaxPages int
}

// DefaultPaginationOptions returns the default helper options.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: constants.DefaultPageSize,
	}
}

// FetchAllPages collects every item of a list endpoint into one slice.
func FetchAllPages[T any](ctx context.Context, fetch PageFunc[T], options *PaginationOptions) ([]T, error) {
	if options == nil {
		options = DefaultPaginationOptions()
	}

	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}

	var (
		all    []T
		offset int
		pages  int
	)

	for {
		items, total, err := fetch(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)
		offset += len(items)
		pages++

		if len(items) < pageSize {
			return all, nil
		}

		if total != nil && offset >= *total {
			return all, nil
		}

		if options.MaxPages > 0 && pages >= options.MaxPages {
			return all, nil
		}
	}
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages fetches pages in a background goroutine and delivers them on
// the returned channel. The channel is closed after the last page, after an
// error (delivered as the final PageResult), or when ctx is cancelled.
func StreamPages[T any](ctx context.Context, fetch PageFunc[T], options *PaginationOptions) <-chan PageResult[T] {
	if options == nil {
		options = DefaultPaginationOptions()
	}

	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}

	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		var (
			offset int
			pages  int
		)

		for {
			items, total, err := fetch(ctx, pageSize, offset)
			if err != nil {
				select {
				case results <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: items}:
			case <-ctx.Done():
				return
			}

			offset += len(items)
			pages++

			if len(items) < pageSize {
				return
			}

			if total != nil && offset >= *total {
				return
			}

			if options.MaxPages > 0 && pages >= options.MaxPages {
				return
			}
		}
	}()

	return results
}
