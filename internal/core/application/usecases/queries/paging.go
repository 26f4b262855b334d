// Package queries contains read-only operations. Handlers read straight from the
// database with SQL instead of loading aggregates.
package queries

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps Offset well inside int for every allowed limit.
	MaxPage = 100_000
)

// Page is a 1-based page request. Zero values select the defaults.
type Page struct {
	number int
	limit  int
}

// NewPage validates a page request. Number must lie in [1, MaxPage] and limit in
// [1, MaxLimit].
func NewPage(number, limit int) (Page, error) {
	if number == 0 {
		number = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if number < 1 {
		return Page{}, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is below 1", number))
	}
	if number > MaxPage {
		return Page{}, errs.NewValueIsOutOfRangeError("page", number, 1, MaxPage)
	}
	if limit < 1 || limit > MaxLimit {
		return Page{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	return Page{number: number, limit: limit}, nil
}

func (p Page) Number() int { return p.number }
func (p Page) Limit() int { return p.limit }
func (p Page) Offset() int { return (p.number - 1) * p.limit }

func (p Page) orDefault() Page {
	if p.number == 0 || p.limit == 0 {
		return Page{number: DefaultPage, limit: DefaultLimit}
	}
	return p
}

// PageInfo accompanies every list response.
type PageInfo struct {
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

func newPageInfo(p Page, total int64) PageInfo {
	pages := int((total + int64(p.limit) - 1) / int64(p.limit))
	return PageInfo{Total: total, Page: p.number, Limit: p.limit, TotalPages: pages}
}
