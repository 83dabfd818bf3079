package depositmock

import (
	"context"

	domain "bankportal-backend/internal/domain/deposit"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, tx *domain.Transaction) error
	GetByDepositIDFn    func(ctx context.Context, depositID string) (*domain.Transaction, error)
	GetLatestByLoanIDFn func(ctx context.Context, loanID uint64) (*domain.Transaction, error)
	CompleteFn          func(ctx context.Context, depositID string) (int64, error)
}

func (m *Repo) Create(ctx context.Context, tx *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx)
	}
	return nil
}

func (m *Repo) GetByDepositID(ctx context.Context, depositID string) (*domain.Transaction, error) {
	if m.GetByDepositIDFn != nil {
		return m.GetByDepositIDFn(ctx, depositID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetLatestByLoanID(ctx context.Context, loanID uint64) (*domain.Transaction, error) {
	if m.GetLatestByLoanIDFn != nil {
		return m.GetLatestByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) Complete(ctx context.Context, depositID string) (int64, error) {
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, depositID)
	}
	return 1, nil
}
