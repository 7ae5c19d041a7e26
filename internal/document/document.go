// Package document inspects print-ready documents: page count and the
// physical size of each page.
package document

import (
	"context"
	"errors"
	"fmt"
)

// ErrPageOutOfRange is returned for a page index outside [1, PageCount].
var ErrPageOutOfRange = errors.New("page index out of range")

// PageSize is a page's width and height in PDF points (1/72 inch).
type PageSize struct {
	Width  float64
	Height float64
}

// Document is an opened, read-only document.
type Document interface {
	PageCount() int
	// Page returns the size of the 1-based page index.
	Page(index int) (PageSize, error)
}

// Inspector opens a document from a retrieval URL.
type Inspector interface {
	Open(ctx context.Context, url string) (Document, error)
}

// Pages is an in-memory Document backed by a slice of page sizes.
type Pages []PageSize

// PageCount implements Document.
func (p Pages) PageCount() int {
	return len(p)
}

// Page implements Document.
func (p Pages) Page(index int) (PageSize, error) {
	if index < 1 || index > len(p) {
		return PageSize{}, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, len(p))
	}
	return p[index-1], nil
}
