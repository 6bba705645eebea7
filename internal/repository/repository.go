package repository

import (
	"context"

	"github.com/bookhaven/library-service/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateBook(ctx context.Context, book model.Book) (primitive.ObjectID, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error)
	UpdateBook(ctx context.Context, id primitive.ObjectID, req model.UpdateBookRequest) error
	ListBooksByCategory(ctx context.Context, category string) ([]model.Book, error)
	DecrementQuantity(ctx context.Context, bookID primitive.ObjectID) error
	IncrementQuantity(ctx context.Context, bookID primitive.ObjectID) error
	ActiveLoanExists(ctx context.Context, bookID primitive.ObjectID, userEmail string) (bool, error)
	CountActiveLoans(ctx context.Context, userEmail string) (int, error)
	CreateLoan(ctx context.Context, loan model.Loan) (primitive.ObjectID, error)
	MarkReturned(ctx context.Context, loanID primitive.ObjectID) (model.Loan, error)
	ListActiveLoans(ctx context.Context, userEmail string) ([]model.BorrowedBook, error)
}

const (
	booksCollectionName = `books`
	loansCollectionName = `borrowedBooks`
)

type repository struct {
	books *mongo.Collection
	loans *mongo.Collection
	log   *zap.Logger
}

func NewRepository(db *mongo.Database, log *zap.Logger) (*repository, error) {
	return &repository{
		books: db.Collection(booksCollectionName),
		loans: db.Collection(loansCollectionName),
		log:   log.Named("repo"),
	}, nil
}
