package handler

import (
	"context"
	"time"

	"github.com/bookhaven/library-service/internal/model"
	"github.com/bookhaven/library-service/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (primitive.ObjectID, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error)
	UpdateBook(ctx context.Context, id primitive.ObjectID, req model.UpdateBookRequest) error
	ListBooksByCategory(ctx context.Context, category string) ([]model.Book, error)
	Borrow(ctx context.Context, bookID primitive.ObjectID, userEmail string, returnDate time.Time) error
	Return(ctx context.Context, loanID primitive.ObjectID) error
	ListBorrowed(ctx context.Context, userEmail string) ([]model.BorrowedBook, error)
}

var _ LibraryService = (*service.Service)(nil)
