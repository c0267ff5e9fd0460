package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libraryman/libraryman-api/internal/errs"
	"github.com/libraryman/libraryman-api/pkg/auth"
	md "github.com/libraryman/libraryman-api/pkg/middleware"
	"github.com/libraryman/libraryman-api/pkg/validate"
)

type Handler struct {
	bookSvc      BookService
	borrowingSvc BorrowingService
	authCfg      auth.Config
	log          *zap.Logger
}

func New(bookSvc BookService, borrowingSvc BorrowingService, authCfg auth.Config, log *zap.Logger) *Handler {
	return &Handler{
		bookSvc:      bookSvc,
		borrowingSvc: borrowingSvc,
		authCfg:      authCfg,
		log:          log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	jwtMW := md.JwtAuthentication(h.authCfg)

	books := api.Group("/books")
	books.GET("", h.GetBooks)
	books.GET("/search", h.SearchBooks)
	books.GET("/:id", h.GetBook)
	books.POST("", h.CreateBook, jwtMW)
	books.PUT("/:id", h.UpdateBook, jwtMW)
	books.DELETE("/:id", h.DeleteBook, jwtMW)

	borrowings := api.Group("/borrowings", jwtMW)
	borrowings.GET("", h.GetBorrowings)
	borrowings.POST("", h.BorrowBook)
	borrowings.GET("/member/:memberId", h.GetMemberBorrowings)
	borrowings.PUT("/:id/return", h.ReturnBook)
	borrowings.PUT("/:id/pay", h.PayFine)
	borrowings.GET("/:id", h.GetBorrowing)

	analytics := api.Group("/analytics", jwtMW)
	analytics.GET("/most-borrowed", h.MostBorrowed)
	analytics.GET("/trends", h.BorrowingTrends)
	analytics.GET("/overview", h.AnalyticsOverview)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidSortField):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNoCopiesAvailable),
		errors.Is(err, errs.ErrAlreadyReturned),
		errors.Is(err, errs.ErrNoFineDue):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func claimsFrom(c echo.Context) (auth.Claims, error) {
	claims, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return auth.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "no auth context")
	}
	return claims, nil
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.Errorf("%s is invalid", name).Error())
	}
	return id, nil
}

func pageParams(c echo.Context) (page, size int, err error) {
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err = strconv.Atoi(pageParam); err != nil {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if size, err = strconv.Atoi(sizeParam); err != nil {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "size is invalid")
		}
	}
	return page, size, nil
}
