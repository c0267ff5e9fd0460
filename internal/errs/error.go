package errs

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrAlreadyReturned   = errors.New("borrowing already returned")
	ErrNoFineDue         = errors.New("no outstanding fine")
	ErrForbidden         = errors.New("forbidden")
)
