package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libraryman/libraryman-api/internal/errs"
	"github.com/libraryman/libraryman-api/internal/model"
)

type Repository interface {
	ListBooks(ctx context.Context, p model.Pageable) (model.PageBooks, error)
	SearchBooks(ctx context.Context, keyword string, p model.Pageable) (model.PageBooks, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, id int, book model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error

	GetMember(ctx context.Context, id int) (model.Member, error)

	ListBorrowings(ctx context.Context, p model.Pageable) (model.PageBorrowings, error)
	ListMemberBorrowings(ctx context.Context, memberID int, p model.Pageable) (model.PageBorrowings, error)
	GetBorrowing(ctx context.Context, id int) (model.Borrowing, error)
	Borrow(ctx context.Context, memberID, bookID int, borrowDate, dueDate time.Time) (model.Borrowing, error)
	Return(ctx context.Context, id int, returnedAt time.Time, finePerDay int) (model.Borrowing, error)
	PayFine(ctx context.Context, id int) (model.Borrowing, error)

	MostBorrowed(ctx context.Context, limit int) ([]model.BookCount, error)
	BorrowingTrend(ctx context.Context, start, end time.Time) ([]model.TrendPoint, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName      = `books`
	membersTableName    = `members`
	borrowingsTableName = `borrowings`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func orderClauses(p model.Pageable) []string {
	clauses := make([]string, 0, len(p.OrderBy))
	for _, o := range p.OrderBy {
		dir := " asc"
		if o.Desc {
			dir = " desc"
		}
		clauses = append(clauses, o.Column+dir)
	}
	return clauses
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation
}

func (r *repository) GetMember(ctx context.Context, id int) (model.Member, error) {
	query, args, err := qb.Select("member_id", "name", "email", "role").
		From(membersTableName).
		Where(sq.Eq{"member_id": id}).
		ToSql()
	if err != nil {
		return model.Member{}, err
	}

	var member model.Member
	if err := r.db.GetContext(ctx, &member, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Member{}, errs.ErrNotFound
		}
		return model.Member{}, err
	}
	return member, nil
}
