package loan

import (
	"time"

	depositDomain "bankportal-backend/internal/domain/deposit"
	loanDomain "bankportal-backend/internal/domain/loan"
)

type CollateralInput struct {
	Type           string   `json:"type"`
	OwnershipType  string   `json:"ownership_type"`
	EstimatedValue float64  `json:"estimated_value"`
	Description    string   `json:"description"`
	EvidenceRefs   []string `json:"evidence_refs"`
}

type ApplyInput struct {
	UserID         string              `json:"user_id"`
	LoanType       loanDomain.LoanType `json:"loan_type"`
	Principal      float64             `json:"principal"`
	InterestRate   float64             `json:"interest_rate"`
	TermMonths     int                 `json:"term_months"`
	Purpose        string              `json:"purpose"`
	IDDocumentRefs []string            `json:"id_document_refs,omitempty"`
	Collaterals    []CollateralInput   `json:"collaterals,omitempty"`
}

type LoanDTO struct {
	LoanID           string     `json:"loan_id"`
	UserID           string     `json:"user_id"`
	LoanType         string     `json:"loan_type"`
	Principal        float64    `json:"principal"`
	InterestRate     float64    `json:"interest_rate"`
	TermMonths       int        `json:"term_months"`
	Purpose          string     `json:"purpose,omitempty"`
	Status           string     `json:"status"`
	DepositRequired  float64    `json:"deposit_required"`
	DepositPaid      bool       `json:"deposit_paid"`
	DepositStatus    string     `json:"deposit_status"`
	DepositBanner    string     `json:"deposit_banner"`
	MonthlyPayment   float64    `json:"monthly_payment"`
	RemainingBalance *float64   `json:"remaining_balance,omitempty"`
	Version          uint64     `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
}

func toDTO(l *loanDomain.Loan, banner depositDomain.Banner) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		UserID:           l.UserID,
		LoanType:         string(l.LoanType),
		Principal:        l.Principal,
		InterestRate:     l.InterestRate,
		TermMonths:       l.TermMonths,
		Purpose:          l.Purpose,
		Status:           string(l.Status),
		DepositRequired:  l.DepositRequired,
		DepositPaid:      l.DepositPaid,
		DepositStatus:    string(l.DepositStatus),
		DepositBanner:    string(banner),
		MonthlyPayment:   l.MonthlyPayment,
		RemainingBalance: l.RemainingBalance,
		Version:          l.Version,
		CreatedAt:        l.CreatedAt,
		ApprovedAt:       l.ApprovedAt,
	}
}
