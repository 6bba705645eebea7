package repository

import (
	"context"

	"github.com/bookhaven/library-service/internal/errs"
	"github.com/bookhaven/library-service/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (r *repository) ActiveLoanExists(ctx context.Context, bookID primitive.ObjectID, userEmail string) (bool, error) {
	filter := bson.M{"bookId": bookID, "userEmail": userEmail, "isReturned": false}
	err := r.loans.FindOne(ctx, filter).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, errors.Wrap(err, "find active loan")
	}
	return true, nil
}

func (r *repository) CountActiveLoans(ctx context.Context, userEmail string) (int, error) {
	count, err := r.loans.CountDocuments(ctx, bson.M{"userEmail": userEmail, "isReturned": false})
	if err != nil {
		return 0, errors.Wrap(err, "count active loans")
	}
	return int(count), nil
}

func (r *repository) CreateLoan(ctx context.Context, loan model.Loan) (primitive.ObjectID, error) {
	res, err := r.loans.InsertOne(ctx, loan)
	if err != nil {
		r.log.Error("CreateLoan", zap.Error(err))
		return primitive.NilObjectID, errors.Wrap(err, "insert loan")
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}

// MarkReturned flips an active loan to returned and hands back the loan as it
// was, so the caller knows which book to restock. Loans that are missing or
// already returned do not match.
func (r *repository) MarkReturned(ctx context.Context, loanID primitive.ObjectID) (model.Loan, error) {
	filter := bson.M{"_id": loanID, "isReturned": false}
	update := bson.M{"$set": bson.M{"isReturned": true}}

	var loan model.Loan
	if err := r.loans.FindOneAndUpdate(ctx, filter, update).Decode(&loan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Loan{}, errs.ErrLoanNotFound
		}
		return model.Loan{}, errors.Wrap(err, "mark returned")
	}
	return loan, nil
}

// ListActiveLoans joins active loans against the catalog. Loans whose book no
// longer exists are dropped by the unwind stage.
func (r *repository) ListActiveLoans(ctx context.Context, userEmail string) ([]model.BorrowedBook, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userEmail": userEmail, "isReturned": false}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         booksCollectionName,
			"localField":   "bookId",
			"foreignField": "_id",
			"as":           "bookDetails",
		}}},
		{{Key: "$unwind", Value: "$bookDetails"}},
		{{Key: "$project", Value: bson.M{
			"_id":        1,
			"bookId":     1,
			"title":      "$bookDetails.name",
			"category":   "$bookDetails.category",
			"coverImage": "$bookDetails.image",
			"createdAt":  1,
			"returnDate": 1,
		}}},
	}

	cur, err := r.loans.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate loans")
	}
	items := make([]model.BorrowedBook, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, errors.Wrap(err, "decode borrowed books")
	}
	return items, nil
}
