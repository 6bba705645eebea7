package service

import (
	"context"
	"time"

	"github.com/bookhaven/library-service/internal/errs"
	"github.com/bookhaven/library-service/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxActiveLoans = 3

// Borrow runs the borrow workflow: duplicate check, limit check, conditional
// inventory decrement, loan insert. The duplicate and limit checks are plain
// reads; only the decrement is atomic (quantity>0 guard in the update
// filter). Two concurrent borrows for the last copy can both pass the
// checks, but at most one decrement succeeds and the loser gets
// errs.ErrBookUnavailable. A loan record is only written after a successful
// decrement.
func (s *Service) Borrow(ctx context.Context, bookID primitive.ObjectID, userEmail string, returnDate time.Time) error {
	exists, err := s.repo.ActiveLoanExists(ctx, bookID, userEmail)
	if err != nil {
		return err
	}
	if exists {
		return errs.ErrAlreadyBorrowed
	}

	active, err := s.repo.CountActiveLoans(ctx, userEmail)
	if err != nil {
		return err
	}
	if active >= maxActiveLoans {
		return errs.ErrBorrowLimit
	}

	if err := s.repo.DecrementQuantity(ctx, bookID); err != nil {
		return err
	}

	loan := model.Loan{
		BookID:     bookID,
		UserEmail:  userEmail,
		ReturnDate: returnDate,
		IsReturned: false,
		CreatedAt:  time.Now().UTC(),
	}
	loanID, err := s.repo.CreateLoan(ctx, loan)
	if err != nil {
		return err
	}

	s.logEvent(model.LoanEvent{
		Event:     model.EventBorrowed,
		LoanID:    loanID,
		BookID:    bookID,
		UserEmail: userEmail,
		At:        time.Now().UTC(),
	})
	return nil
}

// Return flags the loan returned, then restores inventory. If the restore
// update matches nothing the loan flag is NOT rolled back; the caller gets
// errs.ErrInventoryNotRestored and the inconsistency is logged.
func (s *Service) Return(ctx context.Context, loanID primitive.ObjectID) error {
	loan, err := s.repo.MarkReturned(ctx, loanID)
	if err != nil {
		return err
	}

	if err := s.repo.IncrementQuantity(ctx, loan.BookID); err != nil {
		s.log.Error("return: inventory not restored",
			zap.String("loanId", loanID.Hex()),
			zap.String("bookId", loan.BookID.Hex()),
			zap.Error(err))
		return err
	}

	s.logEvent(model.LoanEvent{
		Event:     model.EventReturned,
		LoanID:    loanID,
		BookID:    loan.BookID,
		UserEmail: loan.UserEmail,
		At:        time.Now().UTC(),
	})
	return nil
}

func (s *Service) logEvent(e model.LoanEvent) {
	if err := s.events.Log(e); err != nil {
		s.log.Warn("loan event not published", zap.String("event", e.Event), zap.Error(err))
	}
}
