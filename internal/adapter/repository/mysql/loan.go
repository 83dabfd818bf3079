package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "bankportal-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// forUpdate applies a row lock on dialects that support it. The sqlite used in
// tests has no FOR UPDATE; its single-writer file lock serializes writes anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := forUpdate(r.db.WithContext(ctx)).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByUserID(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// CountActiveByUserIDForUpdate locks the user's open loan rows while counting
// them, so two concurrent applications inside transactions cannot both read a
// count below the limit and insert.
func (r *LoanRepository) CountActiveByUserIDForUpdate(ctx context.Context, userID string) (int64, error) {
	var rows []loanDomain.Loan
	res := forUpdate(r.db.WithContext(ctx)).
		Select("id").
		Where("user_id = ? AND status IN ?", userID, loanDomain.ActiveStatuses()).
		Find(&rows)
	return int64(len(rows)), res.Error
}

// SettleDeposit is the single conditional UPDATE both settlement paths
// converge on: flips the deposit flags, advances pending → under_review, and
// bumps the version, guarded on deposit_status != completed so only the first
// writer succeeds. Zero rows affected means the deposit was already settled.
func (r *LoanRepository) SettleDeposit(ctx context.Context, id uint64, method loanDomain.DepositMethod) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("id = ? AND status = ? AND deposit_status <> ?",
			id, loanDomain.StatusPending, loanDomain.DepositCompleted).
		Updates(map[string]any{
			"deposit_paid":      true,
			"deposit_status":    loanDomain.DepositCompleted,
			"deposit_method":    method,
			"deposit_date":      now,
			"status":            loanDomain.StatusUnderReview,
			"status_updated_at": now,
			"version":           gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}
