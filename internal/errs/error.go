package errs

import (
	"errors"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrAlreadyBorrowed      = errors.New("you have already borrowed this book")
	ErrBorrowLimit          = errors.New("cannot borrow more than 3 books")
	ErrBookUnavailable      = errors.New("book is not available")
	ErrLoanNotFound         = errors.New("borrow record not found or already returned")
	ErrInventoryNotRestored = errors.New("failed to update book quantity")
)
