package uowmock

import (
	"context"

	"bankportal-backend/internal/domain/loan"
	"bankportal-backend/internal/domain/uow"
)

// UoW runs transaction closures against injected mock repos. No real
// transaction exists; rollback is simulated by the closure returning an error
// and the caller discarding its work.
type UoW struct {
	Repos uow.Repos
	// WithinTxFn overrides the default pass-through when set.
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	l, err := m.Repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(m.Repos, l)
}
