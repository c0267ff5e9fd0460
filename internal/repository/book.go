package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libraryman/libraryman-api/internal/errs"
	"github.com/libraryman/libraryman-api/internal/model"
)

var bookColumns = []string{"book_id", "title", "author", "genre", "total_copies", "available_copies"}

func (r *repository) ListBooks(ctx context.Context, p model.Pageable) (model.PageBooks, error) {
	return r.pageBooks(ctx, nil, p)
}

func (r *repository) SearchBooks(ctx context.Context, keyword string, p model.Pageable) (model.PageBooks, error) {
	if keyword == "" {
		return r.pageBooks(ctx, nil, p)
	}
	kw := fmt.Sprint("%", keyword, "%")
	pred := sq.Or{
		sq.ILike{"title": kw},
		sq.ILike{"author": kw},
		sq.ILike{"genre": kw},
	}
	return r.pageBooks(ctx, pred, p)
}

func (r *repository) pageBooks(ctx context.Context, pred interface{}, p model.Pageable) (model.PageBooks, error) {
	countQ := qb.Select("count(*)").From(booksTableName)
	if pred != nil {
		countQ = countQ.Where(pred)
	}
	query, args, err := countQ.ToSql()
	if err != nil {
		return model.PageBooks{}, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return model.PageBooks{}, err
	}

	q := qb.Select(bookColumns...).From(booksTableName)
	if pred != nil {
		q = q.Where(pred)
	}
	query, args, err = q.OrderBy(orderClauses(p)...).
		Limit(p.Limit()).
		Offset(p.Offset()).
		ToSql()
	if err != nil {
		return model.PageBooks{}, err
	}
	r.log.Debug("pageBooks", zap.String("query", query), zap.Any("args", args))

	books := make([]model.Book, 0, p.Size)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return model.PageBooks{}, err
	}

	return model.PageBooks{
		Paging: model.Paging{
			Page:          p.Page,
			PageSize:      p.Size,
			TotalElements: total,
		},
		Items: books,
	}, nil
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"book_id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "genre", "total_copies", "available_copies").
		Values(book.Title, book.Author, book.Genre, book.TotalCopies, book.TotalCopies).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var created model.Book
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, err
	}
	return created, nil
}

func (r *repository) UpdateBook(ctx context.Context, id int, book model.Book) (model.Book, error) {
	// Shrinking total_copies clamps availability so the
	// available <= total invariant holds.
	query, args, err := qb.Update(booksTableName).
		Set("title", book.Title).
		Set("author", book.Author).
		Set("genre", book.Genre).
		Set("total_copies", book.TotalCopies).
		Set("available_copies", sq.Expr("least(available_copies, ?)", book.TotalCopies)).
		Where(sq.Eq{"book_id": id}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var updated model.Book
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return updated, nil
}

func (r *repository) DeleteBook(ctx context.Context, id int) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"book_id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
