package handler

import (
	"context"
	"time"

	"github.com/libraryman/libraryman-api/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=service_mocks

type BookService interface {
	ListBooks(ctx context.Context, p model.Pageable) (model.PageBooks, error)
	SearchBooks(ctx context.Context, keyword string, p model.Pageable) (model.PageBooks, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
}

type BorrowingService interface {
	ListBorrowings(ctx context.Context, p model.Pageable) (model.PageBorrowings, error)
	ListMemberBorrowings(ctx context.Context, memberID int, p model.Pageable) (model.PageBorrowings, error)
	GetBorrowing(ctx context.Context, id int) (model.Borrowing, error)
	BorrowBook(ctx context.Context, req model.CreateBorrowingRequest) (model.Borrowing, error)
	ReturnBook(ctx context.Context, id int) (model.Borrowing, error)
	PayFine(ctx context.Context, id int) (model.Borrowing, error)
	MostBorrowed(ctx context.Context, limit int) ([]model.BookCount, error)
	BorrowingTrend(ctx context.Context, start, end time.Time) ([]model.TrendPoint, error)
}
