package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/libraryman/libraryman-api/internal/errs"
	"github.com/libraryman/libraryman-api/internal/handler"
	service_mocks "github.com/libraryman/libraryman-api/internal/handler/mocks"
	"github.com/libraryman/libraryman-api/internal/model"
	"github.com/libraryman/libraryman-api/pkg/auth"
	"github.com/libraryman/libraryman-api/pkg/validate"
)

func TestHandler_GetBooks(t *testing.T) {
	t.Parallel()
	type input struct {
		query string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookService)

	titlePageable := model.Pageable{
		Page: 0, Size: 5,
		OrderBy: []model.Order{{Column: "title"}},
	}

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					ListBooks(context.Background(), titlePageable).
					Return(model.PageBooks{
						Paging: model.Paging{Page: 0, PageSize: 5, TotalElements: 1},
						Items: []model.Book{
							{
								ID:              1,
								Title:           "The Go Programming Language",
								Author:          "Alan A. A. Donovan",
								Genre:           "Programming",
								TotalCopies:     3,
								AvailableCopies: 2,
							},
						},
					}, nil)
			},
			input: input{query: "?page=0&size=5"},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"page":0,"pageSize":5,"totalElements":1,"items":[{"id":1,"title":"The Go Programming Language","author":"Alan A. A. Donovan","genre":"Programming","totalCopies":3,"availableCopies":2}]}`,
			},
		},
		{
			name: "sorted desc by availableCopies",
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					ListBooks(context.Background(), model.Pageable{
						Page: 0, Size: 5,
						OrderBy: []model.Order{{Column: "available_copies", Desc: true}},
					}).
					Return(model.PageBooks{
						Paging: model.Paging{Page: 0, PageSize: 5, TotalElements: 0},
						Items:  []model.Book{},
					}, nil)
			},
			input: input{query: "?sortBy=availableCopies&sortDir=desc"},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"page":0,"pageSize":5,"totalElements":0,"items":[]}`,
			},
		},
		{
			name:         "err. invalid sort field",
			mockBehavior: func(r *service_mocks.MockBookService) {},
			input:        input{query: "?sortBy=publishedYear"},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"publishedYear: invalid sort field"}`,
			},
		},
		{
			name:         "err. page is invalid",
			mockBehavior: func(r *service_mocks.MockBookService) {},
			input:        input{query: "?page=abc"},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"page is invalid"}`,
			},
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					ListBooks(context.Background(), titlePageable).
					Return(model.PageBooks{}, errors.New("db internal"))
			},
			input: input{query: ""},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBookService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, service_mocks.NewMockBorrowingService(c), auth.Config{Secret: "test-secret"}, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/api/books", h.GetBooks)

			r := httptest.NewRequest(http.MethodGet, "/api/books"+tt.input.query, http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetBook(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockBookService(c)
	log := zap.NewExample().Named("test")
	h := handler.New(svc, service_mocks.NewMockBorrowingService(c), auth.Config{Secret: "test-secret"}, log)

	e := echo.New()
	e.GET("/api/books/:id", h.GetBook)

	svc.EXPECT().GetBook(context.Background(), 99).Return(model.Book{}, errs.ErrNotFound)

	r := httptest.NewRequest(http.MethodGet, "/api/books/99", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, `{"message":"not found"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_SearchBooks(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookService)

	titlePageable := model.Pageable{
		Page: 0, Size: 5,
		OrderBy: []model.Order{{Column: "title"}},
	}

	var tests = []struct {
		name         string
		keyword      string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:    "matches found",
			keyword: "go",
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					SearchBooks(context.Background(), "go", titlePageable).
					Return(model.PageBooks{
						Paging: model.Paging{Page: 0, PageSize: 5, TotalElements: 1},
						Items: []model.Book{
							{ID: 1, Title: "Go in Action", Author: "William Kennedy", Genre: "Programming", TotalCopies: 1, AvailableCopies: 1},
						},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"page":0,"pageSize":5,"totalElements":1,"items":[{"id":1,"title":"Go in Action","author":"William Kennedy","genre":"Programming","totalCopies":1,"availableCopies":1}]}`,
			},
		},
		{
			name:    "no matches",
			keyword: "nomatch",
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					SearchBooks(context.Background(), "nomatch", titlePageable).
					Return(model.PageBooks{
						Paging: model.Paging{Page: 0, PageSize: 5, TotalElements: 0},
						Items:  []model.Book{},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusNoContent,
				expectedBody: ``,
			},
		},
		{
			name:    "absent keyword lists everything",
			keyword: "",
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().
					SearchBooks(context.Background(), "", titlePageable).
					Return(model.PageBooks{
						Paging: model.Paging{Page: 0, PageSize: 5, TotalElements: 1},
						Items: []model.Book{
							{ID: 2, Title: "Clean Code", Author: "Robert C. Martin", Genre: "Programming", TotalCopies: 2, AvailableCopies: 2},
						},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"page":0,"pageSize":5,"totalElements":1,"items":[{"id":2,"title":"Clean Code","author":"Robert C. Martin","genre":"Programming","totalCopies":2,"availableCopies":2}]}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBookService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, service_mocks.NewMockBorrowingService(c), auth.Config{Secret: "test-secret"}, log)

			e := echo.New()
			e.GET("/api/books/search", h.SearchBooks)

			r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/books/search?keyword=%s", tt.keyword), http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
