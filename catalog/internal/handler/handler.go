package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Astemirdum/home-library/catalog/internal/errs"
	"github.com/Astemirdum/home-library/catalog/internal/model"
	"github.com/Astemirdum/home-library/pkg/auth"
	"github.com/Astemirdum/home-library/pkg/jsonx"
	mw "github.com/Astemirdum/home-library/pkg/middleware"
	"github.com/Astemirdum/home-library/pkg/validate"
	_ "github.com/Astemirdum/home-library/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	catalogSvc CatalogService
	tokens     auth.TokenValidator
	log        *zap.Logger
}

func New(catalogSvc CatalogService, tokens auth.TokenValidator, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		tokens:     tokens,
		log:        log.Named("handler"),
	}
}

// @title Home Library Catalog API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.JSONSerializer = jsonx.Serializer{}
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(mw.CORSConfig()))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
		mw.Authentication(h.tokens, h.catalogSvc, h.log),
	)

	api.GET("/books", h.ListBooks)
	api.GET("/books/:isbn", h.GetBook)
	api.POST("/books", h.CreateBook)
	api.PUT("/books/:isbn", h.UpdateBook)
	api.DELETE("/books/:isbn", h.DeleteBook)

	api.GET("/favorites", h.ListFavorites)
	api.POST("/favorites/:isbn", h.AddFavorite)
	api.DELETE("/favorites/:isbn", h.RemoveFavorite)
	api.GET("/admin-favorites", h.AdminFavorites)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// ListBooks godoc
// @Summary List books
// @Tags books
// @Produce json
// @Param page query int false "page number, starting at 1"
// @Param size query int false "page size, 0 for all"
// @Success 200 {object} model.ListBooks
// @Router /books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	page, err := queryInt(c, "page", maxPage)
	if err != nil {
		return err
	}
	size, err := queryInt(c, "size", maxPageSize)
	if err != nil {
		return err
	}
	books, err := h.catalogSvc.ListBooks(c.Request().Context(), page, size)
	if err != nil {
		return h.httpError("fetch books", err)
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook godoc
// @Summary Get a book
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} model.PublicBook
// @Failure 404 {object} errs.MessageResponse
// @Router /books/{isbn} [get]
func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.catalogSvc.GetBook(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return h.httpError("fetch book", err)
	}
	return c.JSON(http.StatusOK, book)
}

// CreateBook godoc
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param book body model.CreateBookRequest true "book"
// @Success 201 {object} model.PublicBook
// @Failure 400,403,409 {object} errs.MessageResponse
// @Router /books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	book, err := h.catalogSvc.CreateBook(ctx, auth.FromContext(ctx), req)
	if err != nil {
		return h.httpError("create book", err)
	}
	return c.JSON(http.StatusCreated, book)
}

// UpdateBook godoc
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param isbn path string true "ISBN"
// @Param book body model.UpdateBookRequest true "fields to change"
// @Success 200 {object} model.PublicBook
// @Failure 400,403,404 {object} errs.MessageResponse
// @Router /books/{isbn} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	book, err := h.catalogSvc.UpdateBook(ctx, auth.FromContext(ctx), c.Param("isbn"), req)
	if err != nil {
		return h.httpError("update book", err)
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param isbn path string true "ISBN"
// @Success 200 {object} errs.MessageResponse
// @Failure 403 {object} errs.MessageResponse
// @Router /books/{isbn} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	isbn := c.Param("isbn")
	if err := h.catalogSvc.DeleteBook(ctx, auth.FromContext(ctx), isbn); err != nil {
		return h.httpError("delete book", err)
	}
	return c.JSON(http.StatusOK, errs.MessageResponse{
		Message: fmt.Sprintf("Book with ISBN %s deleted.", isbn),
	})
}

// ListFavorites godoc
// @Summary Caller's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Favorite
// @Failure 401 {object} errs.MessageResponse
// @Router /favorites [get]
func (h *Handler) ListFavorites(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.catalogSvc.ListFavorites(ctx, auth.FromContext(ctx))
	if err != nil {
		return h.httpError("fetch favorites", err)
	}
	return c.JSON(http.StatusOK, items)
}

// AddFavorite godoc
// @Summary Add a book to the caller's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param isbn path string true "ISBN"
// @Success 201 {object} errs.MessageResponse
// @Failure 400,401,404 {object} errs.MessageResponse
// @Router /favorites/{isbn} [post]
func (h *Handler) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	if _, err := h.catalogSvc.AddFavorite(ctx, auth.FromContext(ctx), c.Param("isbn")); err != nil {
		return h.httpError("add favorite", err)
	}
	return c.JSON(http.StatusCreated, errs.MessageResponse{Message: "Book added to favorites"})
}

// RemoveFavorite godoc
// @Summary Remove a book from the caller's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param isbn path string true "ISBN"
// @Success 200 {object} errs.MessageResponse
// @Failure 401 {object} errs.MessageResponse
// @Router /favorites/{isbn} [delete]
func (h *Handler) RemoveFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.catalogSvc.RemoveFavorite(ctx, auth.FromContext(ctx), c.Param("isbn")); err != nil {
		return h.httpError("remove favorite", err)
	}
	return c.JSON(http.StatusOK, errs.MessageResponse{Message: "Book removed from favorites"})
}

// AdminFavorites godoc
// @Summary Favorites of every admin
// @Tags favorites
// @Produce json
// @Success 200 {object} model.ListAdminFavorites
// @Router /admin-favorites [get]
func (h *Handler) AdminFavorites(c echo.Context) error {
	resp, err := h.catalogSvc.AdminFavorites(c.Request().Context())
	if err != nil {
		return h.httpError("fetch admin favorites", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) httpError(op string, err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrAuthentication):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	case errors.Is(err, errs.ErrAuthorization):
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrAuthorization.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Book not found")
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrLimitExceeded):
		return echo.NewHTTPError(http.StatusBadRequest, "Maximum of 3 favorites allowed")
	case errors.Is(err, errs.ErrDuplicate):
		return echo.NewHTTPError(http.StatusBadRequest, "Book is already in favorites")
	}
	h.log.Error(op, zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, errs.ErrorResponse{
		Error:   "Failed to " + op,
		Message: err.Error(),
	}).SetInternal(err)
}

// Paging bounds keep (page-1)*size well inside int.
const (
	maxPage     = 100000
	maxPageSize = 1000
)

// queryInt parses a non-negative integer query parameter, clamped to limit.
func queryInt(c echo.Context, name string, limit int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
	}
	return min(n, limit), nil
}
