package service

import (
	"context"
	"time"

	"github.com/bookhaven/library-service/internal/errs"
	"github.com/bookhaven/library-service/internal/model"
	"github.com/bookhaven/library-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	events EventLog
}

func NewService(repo repository.Repository, events EventLog, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		events: events,
	}
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (primitive.ObjectID, error) {
	book := model.Book{
		Name:             req.Name,
		Quantity:         int(req.Quantity),
		AuthorName:       req.AuthorName,
		Category:         req.Category,
		ShortDescription: req.ShortDescription,
		Rating:           float64(req.Rating),
		Image:            req.Image,
		CreatedAt:        time.Now().UTC(),
	}
	return s.repo.CreateBook(ctx, book)
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

func (s *Service) GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) UpdateBook(ctx context.Context, id primitive.ObjectID, req model.UpdateBookRequest) error {
	return s.repo.UpdateBook(ctx, id, req)
}

// ListBooksByCategory treats an empty result as not-found. The catalog
// endpoint for categories answers 404 instead of an empty list.
func (s *Service) ListBooksByCategory(ctx context.Context, category string) ([]model.Book, error) {
	books, err := s.repo.ListBooksByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, errs.ErrNotFound
	}
	return books, nil
}

func (s *Service) ListBorrowed(ctx context.Context, userEmail string) ([]model.BorrowedBook, error) {
	return s.repo.ListActiveLoans(ctx, userEmail)
}
