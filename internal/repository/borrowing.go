package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libraryman/libraryman-api/internal/errs"
	"github.com/libraryman/libraryman-api/internal/model"
)

var borrowingColumns = []string{
	"borrowing_id", "borrowing_uid", "book_id", "member_id",
	"borrow_date", "due_date", "return_date", "fine_amount", "status",
}

func (r *repository) ListBorrowings(ctx context.Context, p model.Pageable) (model.PageBorrowings, error) {
	return r.pageBorrowings(ctx, nil, p)
}

func (r *repository) ListMemberBorrowings(ctx context.Context, memberID int, p model.Pageable) (model.PageBorrowings, error) {
	return r.pageBorrowings(ctx, sq.Eq{"member_id": memberID}, p)
}

func (r *repository) pageBorrowings(ctx context.Context, pred interface{}, p model.Pageable) (model.PageBorrowings, error) {
	countQ := qb.Select("count(*)").From(borrowingsTableName)
	if pred != nil {
		countQ = countQ.Where(pred)
	}
	query, args, err := countQ.ToSql()
	if err != nil {
		return model.PageBorrowings{}, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return model.PageBorrowings{}, err
	}

	q := qb.Select(borrowingColumns...).From(borrowingsTableName)
	if pred != nil {
		q = q.Where(pred)
	}
	query, args, err = q.OrderBy(orderClauses(p)...).
		Limit(p.Limit()).
		Offset(p.Offset()).
		ToSql()
	if err != nil {
		return model.PageBorrowings{}, err
	}
	r.log.Debug("pageBorrowings", zap.String("query", query), zap.Any("args", args))

	items := make([]model.Borrowing, 0, p.Size)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return model.PageBorrowings{}, err
	}

	return model.PageBorrowings{
		Paging: model.Paging{
			Page:          p.Page,
			PageSize:      p.Size,
			TotalElements: total,
		},
		Items: items,
	}, nil
}

func (r *repository) GetBorrowing(ctx context.Context, id int) (model.Borrowing, error) {
	query, args, err := qb.Select(borrowingColumns...).
		From(borrowingsTableName).
		Where(sq.Eq{"borrowing_id": id}).
		ToSql()
	if err != nil {
		return model.Borrowing{}, err
	}

	var b model.Borrowing
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Borrowing{}, errs.ErrNotFound
		}
		return model.Borrowing{}, err
	}
	return b, nil
}

// Borrow decrements availability and inserts the ACTIVE record in one
// transaction. The guarded update is the mutual exclusion point for
// concurrent borrows of the same book.
func (r *repository) Borrow(ctx context.Context, memberID, bookID int, borrowDate, dueDate time.Time) (model.Borrowing, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Borrowing{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`update books set available_copies = available_copies - 1
		 where book_id = $1 and available_copies > 0`, bookID)
	if err != nil {
		if isCheckViolation(err) {
			return model.Borrowing{}, errs.ErrNoCopiesAvailable
		}
		return model.Borrowing{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Borrowing{}, err
	}
	if affected == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`select exists(select 1 from books where book_id = $1)`, bookID); err != nil {
			return model.Borrowing{}, err
		}
		if !exists {
			return model.Borrowing{}, errs.ErrNotFound
		}
		return model.Borrowing{}, errs.ErrNoCopiesAvailable
	}

	query, args, err := qb.Insert(borrowingsTableName).
		Columns("borrowing_uid", "book_id", "member_id", "borrow_date", "due_date", "status").
		Values(uuid.New(), bookID, memberID, borrowDate, dueDate, model.StatusActive).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Borrowing{}, err
	}
	var b model.Borrowing
	if err := tx.GetContext(ctx, &b, query, args...); err != nil {
		r.log.Error("Borrow", zap.String("q", query), zap.Any("args", args))
		return model.Borrowing{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Borrowing{}, err
	}
	return b, nil
}

// Return sets the return date exactly once, restores availability and
// stores the computed fine, all in one transaction.
func (r *repository) Return(ctx context.Context, id int, returnedAt time.Time, finePerDay int) (model.Borrowing, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Borrowing{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	var b model.Borrowing
	if err := tx.GetContext(ctx, &b,
		`select * from borrowings where borrowing_id = $1 for update`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Borrowing{}, errs.ErrNotFound
		}
		return model.Borrowing{}, err
	}
	if b.Status != model.StatusActive {
		return model.Borrowing{}, errs.ErrAlreadyReturned
	}

	fine := model.ComputeFine(returnedAt, b.DueDate, finePerDay)
	status := model.StatusClosed
	if fine > 0 {
		status = model.StatusReturnedUnpaid
	}

	if err := tx.GetContext(ctx, &b,
		`update borrowings set return_date = $2, fine_amount = $3, status = $4
		 where borrowing_id = $1
		 returning *`, id, returnedAt, fine, status); err != nil {
		return model.Borrowing{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`update books set available_copies = available_copies + 1
		 where book_id = $1`, b.BookID); err != nil {
		return model.Borrowing{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Borrowing{}, err
	}
	return b, nil
}

func (r *repository) PayFine(ctx context.Context, id int) (model.Borrowing, error) {
	var b model.Borrowing
	err := r.db.GetContext(ctx, &b,
		`update borrowings set fine_amount = 0, status = $2
		 where borrowing_id = $1 and status = $3
		 returning *`, id, model.StatusClosed, model.StatusReturnedUnpaid)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Borrowing{}, err
	}

	// Distinguish missing record from a record with nothing owed.
	if _, err := r.GetBorrowing(ctx, id); err != nil {
		return model.Borrowing{}, err
	}
	return model.Borrowing{}, errs.ErrNoFineDue
}

func (r *repository) MostBorrowed(ctx context.Context, limit int) ([]model.BookCount, error) {
	query, args, err := qb.Select("b.title", "count(*) as borrow_count").
		From(borrowingsTableName + " br").
		Join(booksTableName + " b on br.book_id = b.book_id").
		GroupBy("b.book_id", "b.title").
		OrderBy("borrow_count desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	items := make([]model.BookCount, 0, limit)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// BorrowingTrend counts borrowings per calendar day over the inclusive
// [start, end] date range.
func (r *repository) BorrowingTrend(ctx context.Context, start, end time.Time) ([]model.TrendPoint, error) {
	const q = `
	select date(borrow_date)::text as day, count(*) as cnt
	from borrowings
	where borrow_date >= $1 and borrow_date < $2
	group by day
	order by day`

	var items []model.TrendPoint
	if err := r.db.SelectContext(ctx, &items, q, start, end.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	return items, nil
}
