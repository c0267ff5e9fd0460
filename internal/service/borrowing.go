package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libraryman/libraryman-api/internal/model"
	"github.com/libraryman/libraryman-api/pkg/kafka"
)

func (s *Service) ListBorrowings(ctx context.Context, p model.Pageable) (model.PageBorrowings, error) {
	return s.repo.ListBorrowings(ctx, p)
}

func (s *Service) ListMemberBorrowings(ctx context.Context, memberID int, p model.Pageable) (model.PageBorrowings, error) {
	return s.repo.ListMemberBorrowings(ctx, memberID, p)
}

func (s *Service) GetBorrowing(ctx context.Context, id int) (model.Borrowing, error) {
	return s.repo.GetBorrowing(ctx, id)
}

func (s *Service) BorrowBook(ctx context.Context, req model.CreateBorrowingRequest) (model.Borrowing, error) {
	if _, err := s.repo.GetMember(ctx, req.MemberID); err != nil {
		return model.Borrowing{}, errors.Wrap(err, "member")
	}

	now := time.Now().UTC()
	b, err := s.repo.Borrow(ctx, req.MemberID, req.BookID, now, now.AddDate(0, 0, s.policy.BorrowDays))
	if err != nil {
		return model.Borrowing{}, err
	}
	s.emit(ctx, kafka.EventBorrowed, b)
	return b, nil
}

func (s *Service) ReturnBook(ctx context.Context, id int) (model.Borrowing, error) {
	b, err := s.repo.Return(ctx, id, time.Now().UTC(), s.policy.FinePerDay)
	if err != nil {
		return model.Borrowing{}, err
	}
	s.emit(ctx, kafka.EventReturned, b)
	return b, nil
}

func (s *Service) PayFine(ctx context.Context, id int) (model.Borrowing, error) {
	b, err := s.repo.PayFine(ctx, id)
	if err != nil {
		return model.Borrowing{}, err
	}
	s.emit(ctx, kafka.EventFinePaid, b)
	return b, nil
}

func (s *Service) MostBorrowed(ctx context.Context, limit int) ([]model.BookCount, error) {
	return s.repo.MostBorrowed(ctx, limit)
}

func (s *Service) BorrowingTrend(ctx context.Context, start, end time.Time) ([]model.TrendPoint, error) {
	return s.repo.BorrowingTrend(ctx, start, end)
}

// emit is fire-and-forget: the audit stream never fails a request.
func (s *Service) emit(ctx context.Context, typ kafka.EventType, b model.Borrowing) {
	event := kafka.Event{
		Type:        typ,
		BorrowingID: b.ID,
		BookID:      b.BookID,
		MemberID:    b.MemberID,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.events.Emit(ctx, event); err != nil {
		s.log.Warn("emit event", zap.String("type", string(typ)), zap.Error(err))
	}
}
