// Package window provides a fixed-size sliding view over an ordered list,
// the paging model behind carousels.
//
// The offset always stays within [0, MaxOffset] where
// MaxOffset = max(0, Len - PageSize). Advance and Retreat move by one page
// and clamp at either end rather than wrap.
package window

import (
	"slices"

	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
)

// DefaultPageSize is the number of items a carousel shows at once.
const DefaultPageSize = constants.DefaultPageSize

// Window is a paginated view over items. It is not safe for concurrent use.
type Window[T any] struct {
	items    []T
	pageSize int
	offset   int
}

// New creates a window at offset 0. pageSize must be at least 1.
func New[T any](items []T, pageSize int) (*Window[T], error) {
	if pageSize < 1 {
		return nil, errors.NewValidationError("page_size", pageSize, "must be at least 1")
	}
	return &Window[T]{items: slices.Clone(items), pageSize: pageSize}, nil
}

// Len returns the number of items.
func (w *Window[T]) Len() int {
	return len(w.items)
}

// PageSize returns the page size.
func (w *Window[T]) PageSize() int {
	return w.pageSize
}

// Offset returns the index of the first item on the current page.
func (w *Window[T]) Offset() int {
	return w.offset
}

// MaxOffset returns the largest valid offset.
func (w *Window[T]) MaxOffset() int {
	return max(0, len(w.items)-w.pageSize)
}

// Advance moves forward one page, clamping at MaxOffset.
func (w *Window[T]) Advance() {
	w.offset = min(w.offset+w.pageSize, w.MaxOffset())
}

// Retreat moves back one page, clamping at 0.
func (w *Window[T]) Retreat() {
	w.offset = max(w.offset-w.pageSize, 0)
}

// Seek moves to offset, clamped into [0, MaxOffset].
func (w *Window[T]) Seek(offset int) {
	w.offset = min(max(offset, 0), w.MaxOffset())
}

// Page returns the items on the current page. It may be shorter than the
// page size when fewer items remain, and is empty for an empty window.
func (w *Window[T]) Page() []T {
	end := min(w.offset+w.pageSize, len(w.items))
	return slices.Clone(w.items[w.offset:end])
}

// PageCount returns ceil(Len / PageSize), and 1 for an empty window so a
// surface always has one page to show its empty state on.
func (w *Window[T]) PageCount() int {
	if len(w.items) == 0 {
		return 1
	}
	return (len(w.items) + w.pageSize - 1) / w.pageSize
}

// PageIndex returns floor(Offset / PageSize).
func (w *Window[T]) PageIndex() int {
	return w.offset / w.pageSize
}

// HasNext reports whether Advance would move.
func (w *Window[T]) HasNext() bool {
	return w.offset < w.MaxOffset()
}

// HasPrevious reports whether Retreat would move.
func (w *Window[T]) HasPrevious() bool {
	return w.offset > 0
}
