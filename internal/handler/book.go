package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libraryman/libraryman-api/internal/errs"
	"github.com/libraryman/libraryman-api/internal/model"
	"github.com/libraryman/libraryman-api/pkg/auth"
)

// GetBooks lists books, sorted by title ascending unless overridden
// with sortBy/sortDir.
func (h *Handler) GetBooks(c echo.Context) error {
	page, size, err := pageParams(c)
	if err != nil {
		return err
	}
	pageable, err := model.ResolvePageable(model.BookSortFields, "title",
		page, size, c.QueryParam("sortBy"), c.QueryParam("sortDir"))
	if err != nil {
		return httpError(err)
	}

	books, err := h.bookSvc.ListBooks(c.Request().Context(), pageable)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	book, err := h.bookSvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// SearchBooks matches the keyword case-insensitively across
// title/author/genre. An absent keyword lists everything; an empty
// result page is 204 No Content.
func (h *Handler) SearchBooks(c echo.Context) error {
	page, size, err := pageParams(c)
	if err != nil {
		return err
	}
	pageable, err := model.ResolvePageable(model.BookSortFields, "title",
		page, size, c.QueryParam("sortBy"), c.QueryParam("sortDir"))
	if err != nil {
		return httpError(err)
	}

	books, err := h.bookSvc.SearchBooks(c.Request().Context(), c.QueryParam("keyword"), pageable)
	if err != nil {
		return httpError(err)
	}
	if len(books.Items) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) CreateBook(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ManageBooks, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	book, err := h.bookSvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ManageBooks, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	book, err := h.bookSvc.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ManageBooks, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.bookSvc.DeleteBook(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
