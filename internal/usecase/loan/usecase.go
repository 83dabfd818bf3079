package loan

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	accountDomain "bankportal-backend/internal/domain/account"
	"bankportal-backend/internal/domain/catalog"
	depositDomain "bankportal-backend/internal/domain/deposit"
	"bankportal-backend/internal/domain/event"
	loanDomain "bankportal-backend/internal/domain/loan"
	"bankportal-backend/internal/domain/uow"
	"bankportal-backend/pkg/annuity"
	"bankportal-backend/pkg/id"
)

type Usecase struct {
	loans    loanDomain.Repository
	deposits depositDomain.Repository
	uow      uow.UnitOfWork
	catalog  catalog.Service
	events   event.Publisher
}

func NewUsecase(loans loanDomain.Repository, deposits depositDomain.Repository, tx uow.UnitOfWork, cat catalog.Service, events event.Publisher) *Usecase {
	return &Usecase{loans: loans, deposits: deposits, uow: tx, catalog: cat, events: events}
}

// checkEligibility runs the ordered guard of product and concurrency rules.
// It is called with the user's open loan rows already locked so the count
// cannot be raced by a concurrent application.
func checkEligibility(in ApplyInput, activeCount int64, cat catalog.Service, accounts []accountDomain.Account) (catalog.RateTier, error) {
	if activeCount >= loanDomain.MaxActiveLoans {
		return catalog.RateTier{}, loanDomain.ErrMaxActiveLoans
	}
	product, ok := cat.Product(in.LoanType)
	if !ok {
		return catalog.RateTier{}, fmt.Errorf("%w: %q", loanDomain.ErrUnknownLoanType, in.LoanType)
	}
	if in.Principal < product.MinAmount || in.Principal > product.MaxAmount {
		return catalog.RateTier{}, fmt.Errorf("%w: %.2f not in [%.2f, %.2f]",
			loanDomain.ErrPrincipalOutOfRange, in.Principal, product.MinAmount, product.MaxAmount)
	}
	tier, ok := product.Tier(in.InterestRate)
	if !ok {
		// no tuple carries the selected APR, so no term window admits this application
		return catalog.RateTier{}, fmt.Errorf("%w: no %s rate tier at %.2f%%",
			loanDomain.ErrTermOutOfRange, in.LoanType, in.InterestRate)
	}
	if in.TermMonths < tier.MinTermMonths || in.TermMonths > tier.MaxTermMonths {
		return catalog.RateTier{}, fmt.Errorf("%w: %d not in [%d, %d]",
			loanDomain.ErrTermOutOfRange, in.TermMonths, tier.MinTermMonths, tier.MaxTermMonths)
	}
	if len(accounts) == 0 {
		return catalog.RateTier{}, loanDomain.ErrNoActiveAccount
	}
	return tier, nil
}

// Apply runs the eligibility guard and persists the loan in one transaction.
// The deposit obligation and the rate snapshot are fixed here and never
// recomputed, even if the catalog changes later.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if in.UserID == "" || len(in.UserID) != 32 {
		return nil, errors.New("invalid user id")
	}
	if in.TermMonths < 1 {
		return nil, loanDomain.ErrInvalidTerm
	}
	if in.Principal <= 0 {
		return nil, loanDomain.ErrPrincipalOutOfRange
	}

	var created *loanDomain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		count, err := r.Loans.CountActiveByUserIDForUpdate(ctx, in.UserID)
		if err != nil {
			return err
		}
		accounts, err := r.Accounts.ListByUserID(ctx, in.UserID, accountDomain.StatusActive)
		if err != nil {
			return err
		}
		if _, err := checkEligibility(in, count, u.catalog, accounts); err != nil {
			return err
		}

		schedule, err := annuity.Compute(in.Principal, in.InterestRate, in.TermMonths)
		if err != nil {
			return fmt.Errorf("%w: %v", loanDomain.ErrInvalidTerm, err)
		}

		l := &loanDomain.Loan{
			LoanID:          id.NewID32(),
			UserID:          in.UserID,
			LoanType:        in.LoanType,
			Principal:       in.Principal,
			InterestRate:    in.InterestRate,
			TermMonths:      in.TermMonths,
			Purpose:         in.Purpose,
			Status:          loanDomain.StatusPending,
			DepositRequired: loanDomain.RequiredDeposit(in.Principal),
			DepositStatus:   loanDomain.DepositNone,
			MonthlyPayment:  annuity.Round2(schedule.MonthlyPayment),
			Attachments:     assembleAttachments(in),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, created)
	return toDTO(created, depositDomain.BannerRequired), nil
}

// assembleAttachments folds optional ID documents and collateral into the
// opaque attachment list. Presence or absence never gates any transition.
func assembleAttachments(in ApplyInput) []loanDomain.Attachment {
	var out []loanDomain.Attachment
	if len(in.IDDocumentRefs) > 0 {
		out = append(out, loanDomain.Attachment{Kind: "id_document", EvidenceRefs: in.IDDocumentRefs})
	}
	for _, c := range in.Collaterals {
		out = append(out, loanDomain.Attachment{
			Kind:           "collateral",
			Type:           c.Type,
			OwnershipType:  c.OwnershipType,
			EstimatedValue: c.EstimatedValue,
			Description:    c.Description,
			EvidenceRefs:   c.EvidenceRefs,
		})
	}
	return out
}

// Get returns one loan with its derived deposit banner.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l, u.bannerFor(ctx, l)), nil
}

// List returns all of a user's loans, newest first, each with computed fields.
func (u *Usecase) List(ctx context.Context, userID string) ([]LoanDTO, error) {
	loans, err := u.loans.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		out = append(out, *toDTO(l, u.bannerFor(ctx, l)))
	}
	return out, nil
}

func (u *Usecase) bannerFor(ctx context.Context, l *loanDomain.Loan) depositDomain.Banner {
	tx, err := u.deposits.GetLatestByLoanID(ctx, l.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// degrade to the no-transaction banner rather than failing the read
			log.Printf("deposit lookup for loan %s: %v", l.LoanID, err)
		}
		tx = nil
	}
	return depositDomain.DeriveBanner(l, tx)
}

func (u *Usecase) publish(ctx context.Context, l *loanDomain.Loan) {
	if u.events == nil || l == nil {
		return
	}
	if err := u.events.PublishLoanChanged(ctx, event.FromLoan(l)); err != nil {
		log.Printf("publish loan %s change: %v", l.LoanID, err)
	}
}
