package service

import (
	"context"

	"github.com/libraryman/libraryman-api/internal/model"
)

func (s *Service) ListBooks(ctx context.Context, p model.Pageable) (model.PageBooks, error) {
	return s.repo.ListBooks(ctx, p)
}

func (s *Service) SearchBooks(ctx context.Context, keyword string, p model.Pageable) (model.PageBooks, error) {
	return s.repo.SearchBooks(ctx, keyword, p)
}

func (s *Service) GetBook(ctx context.Context, id int) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		TotalCopies: req.TotalCopies,
	})
}

func (s *Service) UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error) {
	return s.repo.UpdateBook(ctx, id, model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		TotalCopies: req.TotalCopies,
	})
}

func (s *Service) DeleteBook(ctx context.Context, id int) error {
	return s.repo.DeleteBook(ctx, id)
}
