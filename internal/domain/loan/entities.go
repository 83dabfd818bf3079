package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusActive      Status = "active"
	StatusRejected    Status = "rejected"
	StatusClosed      Status = "closed"
)

type DepositStatus string

const (
	DepositNone      DepositStatus = "none"
	DepositPending   DepositStatus = "pending"
	DepositCompleted DepositStatus = "completed"
)

type DepositMethod string

const (
	MethodBalance DepositMethod = "balance"
	MethodCrypto  DepositMethod = "crypto"
)

// LoanType keys the product catalog.
type LoanType string

const (
	// DepositPercentage of principal owed as security deposit, fixed at creation.
	DepositPercentage = 0.10
	// MaxActiveLoans a user may hold in {pending, under_review, approved, active}.
	MaxActiveLoans = 2
	// CloseEpsilon under which an active loan becomes eligible for closure.
	CloseEpsilon = 0.01
)

// Attachment is an opaque reference to uploaded evidence (ID document or
// collateral). Informational only: no guard in this package reads it.
type Attachment struct {
	Kind           string   `json:"kind"` // "id_document" or "collateral"
	Type           string   `json:"type,omitempty"`
	OwnershipType  string   `json:"ownership_type,omitempty"`
	EstimatedValue float64  `json:"estimated_value,omitempty"`
	Description    string   `json:"description,omitempty"`
	EvidenceRefs   []string `json:"evidence_refs,omitempty"`
}

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	UserID string `gorm:"size:32;index:idx_loans_user_status,priority:1" json:"user_id"`

	LoanType  LoanType `gorm:"size:32" json:"loan_type"`
	Principal float64  `gorm:"type:decimal(18,2)" json:"principal"`
	// Annual percentage rate snapshotted from the catalog at application time.
	InterestRate float64 `gorm:"type:decimal(6,3)" json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
	Purpose      string  `gorm:"type:text" json:"purpose"`

	Status Status `gorm:"type:enum('pending','under_review','approved','active','rejected','closed');default:'pending';index:idx_loans_user_status,priority:2" json:"status"`

	DepositRequired float64       `gorm:"type:decimal(18,2)" json:"deposit_required"`
	DepositPaid     bool          `json:"deposit_paid"`
	DepositStatus   DepositStatus `gorm:"type:enum('none','pending','completed');default:'none'" json:"deposit_status"`
	DepositMethod   DepositMethod `gorm:"size:16" json:"deposit_method,omitempty"`

	// MonthlyPayment is cached once terms are fixed; RemainingBalance is nil
	// until activation, then holds the outstanding amortized obligation.
	MonthlyPayment   float64  `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	RemainingBalance *float64 `gorm:"type:decimal(18,2)" json:"remaining_balance,omitempty"`

	Attachments []Attachment `gorm:"serializer:json;type:json" json:"attachments,omitempty"`

	// Version increments on every state write; events carry it so
	// subscribers can drop out-of-order deltas.
	Version uint64 `gorm:"default:0" json:"version"`

	StatusUpdatedAt time.Time  `gorm:"autoCreateTime" json:"status_updated_at"`
	DepositDate     *time.Time `json:"deposit_date,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy string         `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// ActiveStatuses are the states counted against MaxActiveLoans.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusUnderReview, StatusApproved, StatusActive}
}

// RequiredDeposit computes the security deposit for a principal, rounded to cents.
func RequiredDeposit(principal float64) float64 {
	if principal <= 0 {
		return 0
	}
	cents := principal * DepositPercentage * 100
	return float64(int64(cents+0.5)) / 100
}

// EligibleForClosure reports whether an active loan's balance is low enough to
// close. Closure itself stays a deliberate back-office action.
func (l *Loan) EligibleForClosure() bool {
	return l.Status == StatusActive && l.RemainingBalance != nil && *l.RemainingBalance <= CloseEpsilon
}
