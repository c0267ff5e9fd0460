package model

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/libraryman/libraryman-api/internal/errs"
)

const DefaultPageSize = 5

type Order struct {
	Column string
	Desc   bool
}

// Pageable is a resolved pagination request: 0-based page index, page
// size and the orderings to apply, with columns already mapped through
// the entity allow-list.
type Pageable struct {
	Page    int
	Size    int
	OrderBy []Order
}

func (p Pageable) Limit() uint64 {
	return uint64(p.Size)
}

func (p Pageable) Offset() uint64 {
	return uint64(p.Page * p.Size)
}

// SortFields maps API sort names to database columns. Only mapped names
// may reach a query; raw request strings never do.
type SortFields map[string]string

var BookSortFields = SortFields{
	"id":              "book_id",
	"title":           "title",
	"author":          "author",
	"genre":           "genre",
	"totalCopies":     "total_copies",
	"availableCopies": "available_copies",
}

var BorrowingSortFields = SortFields{
	"id":         "borrowing_id",
	"borrowDate": "borrow_date",
	"dueDate":    "due_date",
	"returnDate": "return_date",
	"fine":       "fine_amount",
	"status":     "status",
}

// ResolvePageable applies the entity defaults and the optional
// sortBy/sortDir overrides. Direction is case-insensitive and defaults
// to ascending on absent or unrecognized values. An unknown sort field
// is a client error.
func ResolvePageable(fields SortFields, defaultSort string, page, size int, sortBy, sortDir string) (Pageable, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	field := defaultSort
	if sortBy != "" {
		field = sortBy
	}
	column, ok := fields[field]
	if !ok {
		return Pageable{}, errors.Wrap(errs.ErrInvalidSortField, field)
	}

	return Pageable{
		Page: page,
		Size: size,
		OrderBy: []Order{{
			Column: column,
			Desc:   strings.EqualFold(sortDir, "desc"),
		}},
	}, nil
}
