package uow

import (
	"context"

	"bankportal-backend/internal/domain/account"
	"bankportal-backend/internal/domain/deposit"
	"bankportal-backend/internal/domain/loan"
)

type Repos struct {
	Loans    loan.Repository
	Accounts account.Repository
	Deposits deposit.Repository
}

// UnitOfWork binds all repositories to one storage transaction so financial
// mutations either fully apply or fully roll back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row up-front, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
