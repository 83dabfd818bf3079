package deposit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"gorm.io/gorm"

	depositDomain "bankportal-backend/internal/domain/deposit"
	"bankportal-backend/internal/domain/event"
	loanDomain "bankportal-backend/internal/domain/loan"
	"bankportal-backend/internal/domain/uow"
	"bankportal-backend/pkg/annuity"
	"bankportal-backend/pkg/id"
)

type Usecase struct {
	uow    uow.UnitOfWork
	events event.Publisher
}

func NewUsecase(tx uow.UnitOfWork, events event.Publisher) *Usecase {
	return &Usecase{uow: tx, events: events}
}

// Settle executes one deposit payment attempt. The balance path debits the
// funding account and completes the obligation in a single transaction; the
// crypto path records a pending external reference and leaves the loan in
// pending until confirmation. Both paths serialize on the locked loan row and
// on conditional updates, so at most one settlement ever completes.
func (u *Usecase) Settle(ctx context.Context, in SettleInput) (*SettleResult, error) {
	switch in.Method {
	case loanDomain.MethodBalance, loanDomain.MethodCrypto:
	default:
		return nil, fmt.Errorf("unknown deposit method %q", in.Method)
	}

	var (
		out     *SettleResult
		changed *loanDomain.Loan
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.UserID != in.UserID {
			return loanDomain.ErrNotFound
		}
		if l.DepositStatus == loanDomain.DepositCompleted {
			return loanDomain.ErrDepositAlreadySettled
		}
		if l.Status != loanDomain.StatusPending {
			return fmt.Errorf("%w: loan is %s", loanDomain.ErrInvalidStateTransition, l.Status)
		}
		// any existing transaction means a settlement is already in flight
		if _, err := r.Deposits.GetLatestByLoanID(ctx, l.ID); err == nil {
			return loanDomain.ErrDepositAlreadySettled
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if in.Method == loanDomain.MethodBalance {
			return u.settleFromBalance(ctx, r, l, in, &out, &changed)
		}
		return u.recordCryptoIntent(ctx, r, l, in, &out, &changed)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}

	u.publish(ctx, changed)
	return out, nil
}

func (u *Usecase) settleFromBalance(ctx context.Context, r uow.Repos, l *loanDomain.Loan, in SettleInput, out **SettleResult, changed **loanDomain.Loan) error {
	if math.Abs(in.Amount-l.DepositRequired) > 0.005 {
		return fmt.Errorf("%w: got %.2f, need %.2f", loanDomain.ErrDepositMismatch, in.Amount, l.DepositRequired)
	}

	acct, err := r.Accounts.GetByAccountID(ctx, in.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loanDomain.ErrAccountNotFound
		}
		return err
	}
	if acct.UserID != l.UserID {
		return loanDomain.ErrAccountNotFound
	}

	rows, err := r.Accounts.Debit(ctx, in.AccountID, l.DepositRequired)
	if err != nil {
		return err
	}
	if rows == 0 {
		return loanDomain.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	tx := &depositDomain.Transaction{
		DepositID:   id.NewID32(),
		LoanID:      l.ID,
		UserID:      l.UserID,
		Method:      loanDomain.MethodBalance,
		Amount:      l.DepositRequired,
		Status:      depositDomain.StatusCompleted,
		AccountID:   in.AccountID,
		CompletedAt: &now,
	}
	if err := r.Deposits.Create(ctx, tx); err != nil {
		return err
	}

	rows, err = r.Loans.SettleDeposit(ctx, l.ID, loanDomain.MethodBalance)
	if err != nil {
		return err
	}
	if rows == 0 {
		// a concurrent settlement won between our lock and the update
		return loanDomain.ErrDepositAlreadySettled
	}

	updated, err := r.Loans.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		return err
	}
	*changed = updated
	*out = &SettleResult{
		LoanID:        updated.LoanID,
		DepositID:     tx.DepositID,
		Status:        string(updated.Status),
		DepositPaid:   updated.DepositPaid,
		DepositStatus: string(updated.DepositStatus),
		DepositDate:   updated.DepositDate,
	}
	return nil
}

func (u *Usecase) recordCryptoIntent(ctx context.Context, r uow.Repos, l *loanDomain.Loan, in SettleInput, out **SettleResult, changed **loanDomain.Loan) error {
	if in.ExternalRef == "" {
		return errors.New("external payment reference required for crypto deposits")
	}

	tx := &depositDomain.Transaction{
		DepositID:   id.NewID32(),
		LoanID:      l.ID,
		UserID:      l.UserID,
		Method:      loanDomain.MethodCrypto,
		Amount:      l.DepositRequired,
		Status:      depositDomain.StatusPending,
		ExternalRef: in.ExternalRef,
	}
	if err := r.Deposits.Create(ctx, tx); err != nil {
		return err
	}

	// the loan stays pending; only the deposit flags move
	l.DepositStatus = loanDomain.DepositPending
	l.DepositMethod = loanDomain.MethodCrypto
	l.Version++
	if err := r.Loans.Save(ctx, l); err != nil {
		return err
	}

	*changed = l
	*out = &SettleResult{
		LoanID:        l.LoanID,
		DepositID:     tx.DepositID,
		Status:        string(l.Status),
		DepositPaid:   false,
		DepositStatus: string(l.DepositStatus),
	}
	return nil
}

// Repay debits the funding account and reduces the outstanding balance of an
// active loan. The default payment is the amortized monthly amount, capped at
// what remains so the balance can never go negative.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*RepayResult, error) {
	var (
		out     *RepayResult
		changed *loanDomain.Loan
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.UserID != in.UserID {
			return loanDomain.ErrNotFound
		}
		if l.Status != loanDomain.StatusActive || l.RemainingBalance == nil {
			return loanDomain.ErrNotDisbursed
		}
		remaining := *l.RemainingBalance
		if remaining <= 0 {
			return loanDomain.ErrNotDisbursed
		}

		amount := in.Amount
		if amount == 0 {
			amount = l.MonthlyPayment
		}
		if amount < 0 {
			return errors.New("repayment amount must be positive")
		}
		if amount > remaining {
			amount = remaining
		}
		amount = annuity.Round2(amount)

		acct, err := r.Accounts.GetByAccountID(ctx, in.AccountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrAccountNotFound
			}
			return err
		}
		if acct.UserID != l.UserID {
			return loanDomain.ErrAccountNotFound
		}

		rows, err := r.Accounts.Debit(ctx, in.AccountID, amount)
		if err != nil {
			return err
		}
		if rows == 0 {
			return loanDomain.ErrInsufficientFunds
		}

		newRemaining := annuity.Round2(remaining - amount)
		if newRemaining < 0 {
			newRemaining = 0
		}
		l.RemainingBalance = &newRemaining
		l.Version++
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		changed = l
		out = &RepayResult{
			LoanID:           l.LoanID,
			AmountPaid:       amount,
			RemainingBalance: newRemaining,
			EligibleToClose:  l.EligibleForClosure(),
		}
		return nil
	})
	if err != nil {
		return nil, translateNotFound(err)
	}

	u.publish(ctx, changed)
	return out, nil
}

func (u *Usecase) publish(ctx context.Context, l *loanDomain.Loan) {
	if u.events == nil || l == nil {
		return
	}
	if err := u.events.PublishLoanChanged(ctx, event.FromLoan(l)); err != nil {
		log.Printf("publish loan %s change: %v", l.LoanID, err)
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanDomain.ErrNotFound
	}
	return err
}
