package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/libraryman/libraryman-api/internal/errs"
	"github.com/libraryman/libraryman-api/internal/model"
	"github.com/libraryman/libraryman-api/pkg/auth"
)

const (
	defaultMostBorrowedLimit = 10
	maxMostBorrowedLimit     = 100
	defaultTrendDays         = 30
)

func (h *Handler) MostBorrowed(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ViewAnalytics, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	limit, err := limitParam(c)
	if err != nil {
		return err
	}
	items, err := h.borrowingSvc.MostBorrowed(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) BorrowingTrends(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ViewAnalytics, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	start, err := dateParam(c, "startDate")
	if err != nil {
		return err
	}
	end, err := dateParam(c, "endDate")
	if err != nil {
		return err
	}
	if end.Before(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "endDate before startDate")
	}

	items, err := h.borrowingSvc.BorrowingTrend(c.Request().Context(), start, end)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// AnalyticsOverview fans out the most-borrowed ranking and the trend
// over the last 30 days.
func (h *Handler) AnalyticsOverview(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	if !auth.Allowed(claims, auth.ViewAnalytics, auth.Resource{}) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrForbidden.Error())
	}

	var overview model.AnalyticsOverview
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -defaultTrendDays)

	gg, ctx := errgroup.WithContext(c.Request().Context())
	gg.Go(func() error {
		items, err := h.borrowingSvc.MostBorrowed(ctx, defaultMostBorrowedLimit)
		if err != nil {
			return err
		}
		overview.MostBorrowed = items
		return nil
	})
	gg.Go(func() error {
		items, err := h.borrowingSvc.BorrowingTrend(ctx, start, end)
		if err != nil {
			return err
		}
		overview.Trend = items
		return nil
	})
	if err := gg.Wait(); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, overview)
}

func limitParam(c echo.Context) (int, error) {
	limit := defaultMostBorrowedLimit
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		var err error
		if limit, err = strconv.Atoi(limitParam); err != nil {
			return 0, echo.NewHTTPError(http.StatusBadRequest, "limit is invalid")
		}
	}
	if limit < 1 || limit > maxMostBorrowedLimit {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit out of range")
	}
	return limit, nil
}

func dateParam(c echo.Context, name string) (time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return t, nil
}
