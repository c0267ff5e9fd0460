package model

type CreateBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre" validate:"required"`
	TotalCopies int    `json:"totalCopies" validate:"required,gt=0"`
}

type UpdateBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre" validate:"required"`
	TotalCopies int    `json:"totalCopies" validate:"required,gt=0"`
}

type CreateBorrowingRequest struct {
	BookID   int `json:"bookId" validate:"required,gt=0"`
	MemberID int `json:"memberId" validate:"required,gt=0"`
}
