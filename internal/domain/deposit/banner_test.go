package deposit

import (
	"testing"

	"bankportal-backend/internal/domain/loan"
)

func TestDeriveBanner(t *testing.T) {
	pendingTx := &Transaction{Status: StatusPending}
	completedTx := &Transaction{Status: StatusCompleted}

	cases := []struct {
		name string
		l    loan.Loan
		tx   *Transaction
		want Banner
	}{
		{
			name: "pending loan, no transaction",
			l:    loan.Loan{Status: loan.StatusPending},
			want: BannerRequired,
		},
		{
			name: "pending transaction overrides required",
			l:    loan.Loan{Status: loan.StatusPending, DepositRequired: 1000},
			tx:   pendingTx,
			want: BannerSubmitted,
		},
		{
			name: "verified",
			l:    loan.Loan{Status: loan.StatusUnderReview, DepositPaid: true, DepositStatus: loan.DepositCompleted},
			tx:   completedTx,
			want: BannerVerified,
		},
		{
			name: "verified wins even while loan still pending",
			l:    loan.Loan{Status: loan.StatusPending, DepositPaid: true, DepositStatus: loan.DepositCompleted},
			tx:   completedTx,
			want: BannerVerified,
		},
		{
			name: "rejected loan with no deposit shows nothing",
			l:    loan.Loan{Status: loan.StatusRejected},
			want: BannerNone,
		},
		{
			name: "active loan without completed flag shows nothing",
			l:    loan.Loan{Status: loan.StatusActive},
			tx:   pendingTx,
			want: BannerNone,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveBanner(&tc.l, tc.tx); got != tc.want {
				t.Fatalf("banner = %q, want %q", got, tc.want)
			}
		})
	}
}
