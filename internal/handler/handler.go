package handler

import (
	"net/http"

	"github.com/bookhaven/library-service/internal/errs"
	"github.com/bookhaven/library-service/internal/model"
	"github.com/bookhaven/library-service/pkg/auth"
	"github.com/bookhaven/library-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	librarySvc LibraryService
	authCfg    auth.Config
	log        *zap.Logger
}

func New(librarySvc LibraryService, authCfg auth.Config, log *zap.Logger) *Handler {
	return &Handler{
		librarySvc: librarySvc,
		authCfg:    authCfg,
		log:        log,
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
		AllowOrigins: []string{
			"http://localhost:5173",
			"https://bookhaven-f4847.web.app",
			"https://bookhaven-f4847.firebaseapp.com",
		},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiter(baseRPS))
	base.GET("/", h.Banner)
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("",
		middleware.RequestLoggerWithConfig(requestLoggerConfig(h.log)),
		middleware.RequestID(),
		newRateLimiter(apiRPS),
	)

	api.POST("/jwt", h.CreateToken)
	api.POST("/logout", h.Logout)

	api.POST("/books", h.CreateBook)
	api.GET("/books", h.ListBooks)
	api.GET("/books/:id", h.GetBook)
	api.PUT("/books/:id", h.UpdateBook, h.sessionGuard)
	api.GET("/books/category/:category", h.ListBooksByCategory)

	api.POST("/borrow", h.Borrow, h.sessionGuard)
	api.POST("/return", h.Return, h.sessionGuard)
	api.GET("/borrowed-books", h.ListBorrowed, h.sessionGuard)

	return e
}

type successResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *Handler) Banner(c echo.Context) error {
	return c.String(http.StatusOK, "library management server is running")
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	id, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Book added successfully",
		Data:    echo.Map{"insertedId": id},
	})
}

func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.librarySvc.ListBooks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}
	book, err := h.librarySvc.GetBook(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	if err := h.librarySvc.UpdateBook(c.Request().Context(), id, req); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Book updated successfully"})
}

func (h *Handler) ListBooksByCategory(c echo.Context) error {
	category := c.Param("category")
	if category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category is empty")
	}
	books, err := h.librarySvc.ListBooksByCategory(c.Request().Context(), category)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No books found for this category")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) Borrow(c echo.Context) error {
	userEmail, err := auth.EmailFromContext(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req model.BorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bookID, err := primitive.ObjectIDFromHex(req.BookID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	if err := h.librarySvc.Borrow(c.Request().Context(), bookID, userEmail, req.ReturnDate.Time); err != nil {
		switch {
		case errors.Is(err, errs.ErrAlreadyBorrowed),
			errors.Is(err, errs.ErrBorrowLimit),
			errors.Is(err, errs.ErrBookUnavailable):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Book borrowed successfully"})
}

func (h *Handler) Return(c echo.Context) error {
	if _, err := auth.EmailFromContext(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req model.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loanID, err := primitive.ObjectIDFromHex(req.BorrowID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid borrow id")
	}

	if err := h.librarySvc.Return(c.Request().Context(), loanID); err != nil {
		if errors.Is(err, errs.ErrLoanNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Book returned successfully"})
}

func (h *Handler) ListBorrowed(c echo.Context) error {
	userEmail, err := auth.EmailFromContext(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	items, err := h.librarySvc.ListBorrowed(c.Request().Context(), userEmail)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
