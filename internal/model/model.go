package model

import (
	"time"

	"github.com/libraryman/libraryman-api/pkg/auth"
)

type Book struct {
	ID              int    `json:"id" db:"book_id"`
	Title           string `json:"title" db:"title"`
	Author          string `json:"author" db:"author"`
	Genre           string `json:"genre" db:"genre"`
	TotalCopies     int    `json:"totalCopies" db:"total_copies"`
	AvailableCopies int    `json:"availableCopies" db:"available_copies"`
}

type Member struct {
	ID    int       `json:"id" db:"member_id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
	Role  auth.Role `json:"role" db:"role"`
}

type BorrowingStatus string

const (
	StatusActive         BorrowingStatus = "ACTIVE"
	StatusReturnedUnpaid BorrowingStatus = "RETURNED_UNPAID"
	StatusClosed         BorrowingStatus = "CLOSED"
)

type Borrowing struct {
	ID           int             `json:"id" db:"borrowing_id"`
	BorrowingUid string          `json:"borrowingUid" db:"borrowing_uid"`
	BookID       int             `json:"bookId" db:"book_id"`
	MemberID     int             `json:"memberId" db:"member_id"`
	BorrowDate   time.Time       `json:"borrowDate" db:"borrow_date"`
	DueDate      time.Time       `json:"dueDate" db:"due_date"`
	ReturnDate   *time.Time      `json:"returnDate" db:"return_date"`
	Fine         int             `json:"fine" db:"fine_amount"`
	Status       BorrowingStatus `json:"status" db:"status"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type PageBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

type PageBorrowings struct {
	Paging `json:",inline"`
	Items  []Borrowing `json:"items"`
}

type BookCount struct {
	Title       string `json:"title" db:"title"`
	BorrowCount int    `json:"borrowCount" db:"borrow_count"`
}

type TrendPoint struct {
	Date  string `json:"date" db:"day"`
	Count int    `json:"count" db:"cnt"`
}

type AnalyticsOverview struct {
	MostBorrowed []BookCount  `json:"mostBorrowed"`
	Trend        []TrendPoint `json:"trend"`
}

// ComputeFine charges perDay for each full day past the due date.
// Never negative.
func ComputeFine(returnDate, dueDate time.Time, perDay int) int {
	days := int(returnDate.Sub(dueDate).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return days * perDay
}
