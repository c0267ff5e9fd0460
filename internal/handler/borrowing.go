package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libraryman/libraryman-api/internal/errs"
	"github.com/libraryman/libraryman-api/internal/model"
	"github.com/libraryman/libraryman-api/pkg/auth"
)

func (h *Handler) GetBorrowings(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ListBorrowings, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	page, size, err := pageParams(c)
	if err != nil {
		return err
	}
	pageable, err := model.ResolvePageable(model.BorrowingSortFields, "borrowDate",
		page, size, c.QueryParam("sortBy"), c.QueryParam("sortDir"))
	if err != nil {
		return httpError(err)
	}

	borrowings, err := h.borrowingSvc.ListBorrowings(c.Request().Context(), pageable)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrowings)
}

func (h *Handler) GetMemberBorrowings(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	memberID, err := pathID(c, "memberId")
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ListMemberBorrowings, auth.Resource{MemberID: memberID}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	page, size, err := pageParams(c)
	if err != nil {
		return err
	}
	pageable, err := model.ResolvePageable(model.BorrowingSortFields, "borrowDate",
		page, size, c.QueryParam("sortBy"), c.QueryParam("sortDir"))
	if err != nil {
		return httpError(err)
	}

	borrowings, err := h.borrowingSvc.ListMemberBorrowings(c.Request().Context(), memberID, pageable)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, borrowings)
}

func (h *Handler) GetBorrowing(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ViewBorrowing, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.borrowingSvc.GetBorrowing(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

// BorrowBook creates an ACTIVE borrowing. USER may only borrow for
// their own member id.
func (h *Handler) BorrowBook(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	var req model.CreateBorrowingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.CreateBorrowing, auth.Resource{MemberID: req.MemberID}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	b, err := h.borrowingSvc.BorrowBook(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) ReturnBook(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ReturnBorrowing, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.borrowingSvc.ReturnBook(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) PayFine(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.PayFine, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.borrowingSvc.PayFine(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}
