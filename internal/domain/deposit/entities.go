package deposit

import (
	"time"

	"gorm.io/gorm"

	"bankportal-backend/internal/domain/loan"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Transaction records one deposit settlement attempt against a loan. The
// balance path writes a completed row inside the settlement transaction; the
// crypto path writes a pending row that an external confirmation completes.
type Transaction struct {
	ID        uint64             `gorm:"primaryKey;column:id" json:"-"`
	DepositID string             `gorm:"size:32;uniqueIndex:ux_deposits_deposit_id" json:"deposit_id"`
	LoanID    uint64             `gorm:"column:loan_id;not null;index:idx_deposits_loan" json:"-"`
	UserID    string             `gorm:"size:32;index:idx_deposits_user" json:"user_id"`
	Method    loan.DepositMethod `gorm:"size:16" json:"method"`
	Amount    float64            `gorm:"type:decimal(18,2)" json:"amount"`
	Status    Status             `gorm:"type:enum('pending','completed');default:'pending'" json:"status"`
	// AccountID is set on the balance path; ExternalRef on the crypto path.
	AccountID   string         `gorm:"size:32" json:"account_id,omitempty"`
	ExternalRef string         `gorm:"size:128" json:"external_ref,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Transaction) TableName() string { return "deposit_transactions" }
