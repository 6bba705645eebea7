package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bookhaven/library-service/internal/errs"
	"github.com/bookhaven/library-service/internal/handler"
	"github.com/bookhaven/library-service/internal/model"
	"github.com/bookhaven/library-service/pkg/auth"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	service_mocks "github.com/bookhaven/library-service/internal/handler/mocks"
)

const (
	testSecret = "test-secret"
	testEmail  = "reader@example.com"
)

func newTestRouter(t *testing.T) (*echo.Echo, *service_mocks.MockLibraryService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	svc := service_mocks.NewMockLibraryService(c)
	log := zap.NewExample().Named("test")
	h := handler.New(svc, auth.Config{Secret: testSecret}, log)
	return h.NewRouter(), svc
}

func sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	tok, err := auth.IssueToken(testEmail, "", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: tok}
}

func TestHandler_GetBook(t *testing.T) {
	t.Parallel()
	bookID := primitive.NewObjectID()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		id           string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			id:   bookID.Hex(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					GetBook(gomock.Any(), bookID).
					Return(model.Book{
						ID:         bookID,
						Name:       "Dune",
						Quantity:   2,
						AuthorName: "Frank Herbert",
						Category:   "sci-fi",
						Rating:     4.8,
						Image:      "https://covers.example.com/dune.jpg",
						CreatedAt:  createdAt,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"_id":%q,"name":"Dune","quantity":2,"authorName":"Frank Herbert","category":"sci-fi","shortDescription":"","rating":4.8,"image":"https://covers.example.com/dune.jpg","createdAt":"2026-01-02T03:04:05Z"}`, bookID.Hex()),
			},
		},
		{
			name:         "err. invalid id",
			id:           "not-a-hex",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid book id"}`,
			},
		},
		{
			name: "err. not found",
			id:   bookID.Hex(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					GetBook(gomock.Any(), bookID).
					Return(model.Book{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"Book not found"}`,
			},
		},
		{
			name: "err. internal",
			id:   bookID.Hex(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					GetBook(gomock.Any(), bookID).
					Return(model.Book{}, errors.New("db internal"))
			},
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
			e, svc := newTestRouter(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodGet, "/books/"+tt.id, http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()
	bookID := primitive.NewObjectID()

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"name":"Dune","quantity":3,"authorName":"Frank Herbert","category":"sci-fi","shortDescription":"desert planet","rating":4.8,"image":"https://covers.example.com/dune.jpg"}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					CreateBook(gomock.Any(), model.CreateBookRequest{
						Name:             "Dune",
						Quantity:         3,
						AuthorName:       "Frank Herbert",
						Category:         "sci-fi",
						ShortDescription: "desert planet",
						Rating:           4.8,
						Image:            "https://covers.example.com/dune.jpg",
					}).
					Return(bookID, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"success":true,"message":"Book added successfully","data":{"insertedId":%q}}`, bookID.Hex()),
			},
		},
		{
			name: "quantity defaults to zero on non-numeric",
			body: `{"name":"Dune","quantity":"a few","authorName":"Frank Herbert","category":"sci-fi","rating":"4.8","image":"https://covers.example.com/dune.jpg"}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					CreateBook(gomock.Any(), model.CreateBookRequest{
						Name:       "Dune",
						Quantity:   0,
						AuthorName: "Frank Herbert",
						Category:   "sci-fi",
						Rating:     4.8,
						Image:      "https://covers.example.com/dune.jpg",
					}).
					Return(bookID, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"success":true,"message":"Book added successfully","data":{"insertedId":%q}}`, bookID.Hex()),
			},
		},
		{
			name:         "err. missing required fields",
			body:         `{"name":"Dune","quantity":3}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Missing required fields"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc := newTestRouter(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListBooksByCategory(t *testing.T) {
	t.Parallel()

	t.Run("empty category is not found", func(t *testing.T) {
		t.Parallel()
		e, svc := newTestRouter(t)
		svc.EXPECT().
			ListBooksByCategory(gomock.Any(), "nonexistent").
			Return(nil, errs.ErrNotFound)

		r := httptest.NewRequest(http.MethodGet, "/books/category/nonexistent", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, `{"message":"No books found for this category"}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		e, svc := newTestRouter(t)
		svc.EXPECT().
			ListBooksByCategory(gomock.Any(), "sci-fi").
			Return([]model.Book{}, nil)

		r := httptest.NewRequest(http.MethodGet, "/books/category/sci-fi", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandler_UpdateBook(t *testing.T) {
	t.Parallel()
	bookID := primitive.NewObjectID()
	body := `{"name":"Dune","authorName":"Frank Herbert","category":"sci-fi","rating":5,"image":"https://covers.example.com/dune.jpg"}`

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		e, svc := newTestRouter(t)
		svc.EXPECT().
			UpdateBook(gomock.Any(), bookID, model.UpdateBookRequest{
				Name:       "Dune",
				AuthorName: "Frank Herbert",
				Category:   "sci-fi",
				Rating:     5,
				Image:      "https://covers.example.com/dune.jpg",
			}).
			Return(nil)

		r := httptest.NewRequest(http.MethodPut, "/books/"+bookID.Hex(), strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		r.AddCookie(sessionCookie(t))
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"success":true,"message":"Book updated successfully"}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("err. no session", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestRouter(t)

		r := httptest.NewRequest(http.MethodPut, "/books/"+bookID.Hex(), strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, `{"message":"unauthorized access"}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("err. not found", func(t *testing.T) {
		t.Parallel()
		e, svc := newTestRouter(t)
		svc.EXPECT().
			UpdateBook(gomock.Any(), bookID, gomock.Any()).
			Return(errs.ErrNotFound)

		r := httptest.NewRequest(http.MethodPut, "/books/"+bookID.Hex(), strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		r.AddCookie(sessionCookie(t))
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
