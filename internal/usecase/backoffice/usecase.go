package backoffice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"bankportal-backend/internal/domain/event"
	loanDomain "bankportal-backend/internal/domain/loan"
	"bankportal-backend/internal/domain/uow"
	"bankportal-backend/pkg/annuity"
)

// Mailer dispatches a templated notification. Fire-and-forget: failures are
// logged and never block a transition.
type Mailer interface {
	Send(ctx context.Context, template, recipient string, data map[string]any) error
}

type Usecase struct {
	uow    uow.UnitOfWork
	events event.Publisher
	mailer Mailer
}

func NewUsecase(tx uow.UnitOfWork, events event.Publisher, mailer Mailer) *Usecase {
	return &Usecase{uow: tx, events: events, mailer: mailer}
}

type DecisionResult struct {
	LoanID           string     `json:"loan_id"`
	Status           string     `json:"status"`
	RemainingBalance *float64   `json:"remaining_balance,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
}

// Approve is the collapsed approve-and-disburse action: under_review → active
// in one write, seeding the amortized obligation and the approval timestamp.
func (u *Usecase) Approve(ctx context.Context, loanID string) (*DecisionResult, error) {
	var changed *loanDomain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := l.TransitionTo(loanDomain.StatusActive, time.Now()); err != nil {
			return err
		}
		now := time.Now().UTC()
		obligation := annuity.Round2(l.MonthlyPayment * float64(l.TermMonths))
		l.RemainingBalance = &obligation
		l.ApprovedAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		changed = l
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	u.afterCommit(ctx, changed, "loan_approved")
	return decision(changed), nil
}

// Reject is terminal, allowed from pending or under_review.
func (u *Usecase) Reject(ctx context.Context, loanID string) (*DecisionResult, error) {
	var changed *loanDomain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if !loanDomain.CanTransition(l.Status, loanDomain.StatusRejected) {
			return fmt.Errorf("%w: %s → rejected", loanDomain.ErrInvalidStateTransition, l.Status)
		}
		l.Status = loanDomain.StatusRejected
		l.StatusUpdatedAt = time.Now().UTC()
		l.Version++
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		changed = l
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	u.afterCommit(ctx, changed, "loan_rejected")
	return decision(changed), nil
}

// Close retires a paid-off loan. Deliberate even when the guard passes: the
// last repayment never closes a loan by itself.
func (u *Usecase) Close(ctx context.Context, loanID string) (*DecisionResult, error) {
	var changed *loanDomain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := l.TransitionTo(loanDomain.StatusClosed, time.Now()); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		changed = l
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	u.afterCommit(ctx, changed, "loan_closed")
	return decision(changed), nil
}

// ConfirmDeposit is the external crypto confirmation hook: completes the
// pending deposit transaction and settles the loan with the same at-most-once
// guard as the balance path.
func (u *Usecase) ConfirmDeposit(ctx context.Context, depositID string) (*DecisionResult, error) {
	var changed *loanDomain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		tx, err := r.Deposits.GetByDepositID(ctx, depositID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrNotFound
			}
			return err
		}

		rows, err := r.Deposits.Complete(ctx, depositID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return loanDomain.ErrDepositAlreadySettled
		}

		rows, err = r.Loans.SettleDeposit(ctx, tx.LoanID, tx.Method)
		if err != nil {
			return err
		}
		if rows == 0 {
			return loanDomain.ErrDepositAlreadySettled
		}

		l, err := r.Loans.GetByID(ctx, tx.LoanID)
		if err != nil {
			return err
		}
		changed = l
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	u.afterCommit(ctx, changed, "deposit_verified")
	return decision(changed), nil
}

func decision(l *loanDomain.Loan) *DecisionResult {
	return &DecisionResult{
		LoanID:           l.LoanID,
		Status:           string(l.Status),
		RemainingBalance: l.RemainingBalance,
		ApprovedAt:       l.ApprovedAt,
	}
}

// afterCommit runs the fire-and-forget fan-out: change feed first, then the
// email dispatch. Neither can fail the already committed transition.
func (u *Usecase) afterCommit(ctx context.Context, l *loanDomain.Loan, template string) {
	if l == nil {
		return
	}
	if u.events != nil {
		if err := u.events.PublishLoanChanged(ctx, event.FromLoan(l)); err != nil {
			log.Printf("publish loan %s change: %v", l.LoanID, err)
		}
	}
	if u.mailer != nil {
		data := map[string]any{"loan_id": l.LoanID, "status": string(l.Status)}
		if err := u.mailer.Send(ctx, template, l.UserID, data); err != nil {
			log.Printf("send %s mail for loan %s: %v", template, l.LoanID, err)
		}
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanDomain.ErrNotFound
	}
	return err
}
