package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is one catalog title. Quantity is the count of copies currently
// available; it is only ever touched by catalog creation and the
// borrow/return workflow.
type Book struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Quantity         int                `json:"quantity" bson:"quantity"`
	AuthorName       string             `json:"authorName" bson:"authorName"`
	Category         string             `json:"category" bson:"category"`
	ShortDescription string             `json:"shortDescription" bson:"shortDescription"`
	Rating           float64            `json:"rating" bson:"rating"`
	Image            string             `json:"image" bson:"image"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Loan is one borrow record. Returned loans are kept with IsReturned=true,
// so the active set is always the isReturned=false slice of the collection.
type Loan struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	BookID     primitive.ObjectID `json:"bookId" bson:"bookId"`
	UserEmail  string             `json:"userEmail" bson:"userEmail"`
	ReturnDate time.Time          `json:"returnDate" bson:"returnDate"`
	IsReturned bool               `json:"isReturned" bson:"isReturned"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// BorrowedBook is the loan-with-catalog projection served by
// GET /borrowed-books.
type BorrowedBook struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	BookID     primitive.ObjectID `json:"bookId" bson:"bookId"`
	Title      string             `json:"title" bson:"title"`
	Category   string             `json:"category" bson:"category"`
	CoverImage string             `json:"coverImage" bson:"coverImage"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	ReturnDate time.Time          `json:"returnDate" bson:"returnDate"`
}

type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type CreateBookRequest struct {
	Name             string `json:"name" validate:"required"`
	Quantity         Number `json:"quantity"`
	AuthorName       string `json:"authorName" validate:"required"`
	Category         string `json:"category" validate:"required"`
	ShortDescription string `json:"shortDescription"`
	Rating           Number `json:"rating" validate:"required"`
	Image            string `json:"image" validate:"required"`
}

// UpdateBookRequest deliberately has no quantity: inventory moves only
// through the borrow workflow.
type UpdateBookRequest struct {
	Name       string `json:"name" validate:"required"`
	AuthorName string `json:"authorName" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Rating     Number `json:"rating" validate:"required"`
	Image      string `json:"image" validate:"required"`
}

type BorrowRequest struct {
	BookID     string `json:"bookId" validate:"required"`
	ReturnDate Date   `json:"returnDate" validate:"required"`
}

type ReturnRequest struct {
	BorrowID string `json:"borrowId" validate:"required"`
}

const (
	EventBorrowed = "borrowed"
	EventReturned = "returned"
)

// LoanEvent is the audit record published for every successful borrow/return.
type LoanEvent struct {
	Event     string             `json:"event"`
	LoanID    primitive.ObjectID `json:"loanId"`
	BookID    primitive.ObjectID `json:"bookId"`
	UserEmail string             `json:"userEmail"`
	At        time.Time          `json:"at"`
}

// Number decodes JSON numbers as well as numeric strings; anything else
// coerces to zero rather than failing the request body.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Number(f)
			return nil
		}
	}
	*n = 0
	return nil
}

type Date struct {
	time.Time `json:",inline"`
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return errors.Errorf("invalid date %q", s)
}
