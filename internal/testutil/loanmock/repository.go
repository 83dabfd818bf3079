package loanmock

import (
	"context"

	domain "bankportal-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                       func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn                  func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByIDFn                      func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByLoanIDForUpdateFn         func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByUserIDFn                 func(ctx context.Context, userID string) ([]domain.Loan, error)
	CountActiveByUserIDForUpdateFn func(ctx context.Context, userID string) (int64, error)
	SaveFn                         func(ctx context.Context, l *domain.Loan) error
	SettleDepositFn                func(ctx context.Context, id uint64, method domain.DepositMethod) (int64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUserID(ctx context.Context, userID string) ([]domain.Loan, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) CountActiveByUserIDForUpdate(ctx context.Context, userID string) (int64, error) {
	if m.CountActiveByUserIDForUpdateFn != nil {
		return m.CountActiveByUserIDForUpdateFn(ctx, userID)
	}
	return 0, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) SettleDeposit(ctx context.Context, id uint64, method domain.DepositMethod) (int64, error) {
	if m.SettleDepositFn != nil {
		return m.SettleDepositFn(ctx, id, method)
	}
	return 1, nil
}
