package repository

import (
	"context"
	"time"

	"github.com/bookhaven/library-service/internal/errs"
	"github.com/bookhaven/library-service/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (r *repository) CreateBook(ctx context.Context, book model.Book) (primitive.ObjectID, error) {
	res, err := r.books.InsertOne(ctx, book)
	if err != nil {
		r.log.Error("CreateBook", zap.Error(err))
		return primitive.NilObjectID, errors.Wrap(err, "insert book")
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	cur, err := r.books.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "find books")
	}
	books := make([]model.Book, 0)
	if err := cur.All(ctx, &books); err != nil {
		return nil, errors.Wrap(err, "decode books")
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error) {
	var book model.Book
	if err := r.books.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, errors.Wrap(err, "find book")
	}
	return book, nil
}

func (r *repository) UpdateBook(ctx context.Context, id primitive.ObjectID, req model.UpdateBookRequest) error {
	update := bson.M{"$set": bson.M{
		"name":       req.Name,
		"authorName": req.AuthorName,
		"category":   req.Category,
		"rating":     float64(req.Rating),
		"image":      req.Image,
		"updatedAt":  time.Now().UTC(),
	}}
	res, err := r.books.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.log.Error("UpdateBook", zap.String("id", id.Hex()), zap.Error(err))
		return errors.Wrap(err, "update book")
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) ListBooksByCategory(ctx context.Context, category string) ([]model.Book, error) {
	cur, err := r.books.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, errors.Wrap(err, "find books by category")
	}
	books := make([]model.Book, 0)
	if err := cur.All(ctx, &books); err != nil {
		return nil, errors.Wrap(err, "decode books")
	}
	return books, nil
}

// DecrementQuantity takes one copy off the shelf. The quantity>0 guard in the
// filter is the only atomic boundary of the borrow workflow: of two racing
// borrows for the last copy exactly one matches, the other gets
// errs.ErrBookUnavailable.
func (r *repository) DecrementQuantity(ctx context.Context, bookID primitive.ObjectID) error {
	filter := bson.M{"_id": bookID, "quantity": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"quantity": -1}}
	if err := r.books.FindOneAndUpdate(ctx, filter, update).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errs.ErrBookUnavailable
		}
		return errors.Wrap(err, "decrement quantity")
	}
	return nil
}

func (r *repository) IncrementQuantity(ctx context.Context, bookID primitive.ObjectID) error {
	res, err := r.books.UpdateOne(ctx, bson.M{"_id": bookID}, bson.M{"$inc": bson.M{"quantity": 1}})
	if err != nil {
		return errors.Wrap(err, "increment quantity")
	}
	if res.ModifiedCount == 0 {
		return errs.ErrInventoryNotRestored
	}
	return nil
}
