package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountDomain "bankportal-backend/internal/domain/account"
	depositDomain "bankportal-backend/internal/domain/deposit"
	loanDomain "bankportal-backend/internal/domain/loan"
	"bankportal-backend/pkg/id"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type loanSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	LoanID           string         `gorm:"size:32;column:loan_id"`
	UserID           string         `gorm:"size:32;column:user_id"`
	LoanType         string         `gorm:"column:loan_type"`
	Principal        float64        `gorm:"column:principal"`
	InterestRate     float64        `gorm:"column:interest_rate"`
	TermMonths       int            `gorm:"column:term_months"`
	Purpose          string         `gorm:"column:purpose"`
	Status           string         `gorm:"type:text;column:status"` // ← no enum
	DepositRequired  float64        `gorm:"column:deposit_required"`
	DepositPaid      bool           `gorm:"column:deposit_paid"`
	DepositStatus    string         `gorm:"type:text;column:deposit_status"`
	DepositMethod    string         `gorm:"column:deposit_method"`
	MonthlyPayment   float64        `gorm:"column:monthly_payment"`
	RemainingBalance *float64       `gorm:"column:remaining_balance"`
	Attachments      string         `gorm:"type:text;column:attachments"`
	Version          uint64         `gorm:"column:version"`
	StatusUpdatedAt  time.Time      `gorm:"column:status_updated_at"`
	DepositDate      *time.Time     `gorm:"column:deposit_date"`
	ApprovedAt       *time.Time     `gorm:"column:approved_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy        string         `gorm:"column:deleted_by"`
}

func (loanSQLite) TableName() string { return "loans" }

type accountSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id"`
	AccountID string         `gorm:"size:32;column:account_id"`
	UserID    string         `gorm:"size:32;column:user_id"`
	Balance   float64        `gorm:"column:balance"`
	Status    string         `gorm:"type:text;column:status"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (accountSQLite) TableName() string { return "accounts" }

type depositSQLite struct {
	ID          uint64         `gorm:"primaryKey;column:id"`
	DepositID   string         `gorm:"size:32;column:deposit_id"`
	LoanID      uint64         `gorm:"column:loan_id"`
	UserID      string         `gorm:"size:32;column:user_id"`
	Method      string         `gorm:"column:method"`
	Amount      float64        `gorm:"column:amount"`
	Status      string         `gorm:"type:text;column:status"`
	AccountID   string         `gorm:"column:account_id"`
	ExternalRef string         `gorm:"column:external_ref"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	CompletedAt *time.Time     `gorm:"column:completed_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (depositSQLite) TableName() string { return "deposit_transactions" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schemas.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &accountSQLite{}, &depositSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, userID string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:          loanID,
		UserID:          userID,
		LoanType:        "personal",
		Principal:       10_000.00,
		InterestRate:    6.99,
		TermMonths:      36,
		Status:          loanDomain.StatusPending,
		DepositRequired: 1_000.00,
		DepositStatus:   loanDomain.DepositNone,
		MonthlyPayment:  308.72,
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestCreateAndGetByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	userID := id.NewID32()

	l := makeLoan(loanID, userID)
	l.Attachments = []loanDomain.Attachment{
		{Kind: "id_document", Type: "passport", EvidenceRefs: []string{"s3://docs/p1.pdf"}},
		{Kind: "collateral", Type: "vehicle", OwnershipType: "owned", EstimatedValue: 15_000},
	}
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.UserID != userID || got.Status != loanDomain.StatusPending {
		t.Errorf("unexpected loan: %+v", got)
	}
	if len(got.Attachments) != 2 || got.Attachments[1].EstimatedValue != 15_000 {
		t.Errorf("attachments did not round-trip: %+v", got.Attachments)
	}
}

func TestGetByLoanID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestListByUserID_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	userID := id.NewID32()
	first := makeLoan(id.NewID32(), userID)
	second := makeLoan(id.NewID32(), userID)
	other := makeLoan(id.NewID32(), id.NewID32())
	for _, l := range []*loanDomain.Loan{first, second, other} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].LoanID != second.LoanID || got[1].LoanID != first.LoanID {
		t.Errorf("order wrong: %s, %s", got[0].LoanID, got[1].LoanID)
	}
}

func TestCountActiveByUserID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	userID := id.NewID32()
	states := []loanDomain.Status{
		loanDomain.StatusPending,
		loanDomain.StatusActive,
		loanDomain.StatusRejected,
		loanDomain.StatusClosed,
	}
	for _, s := range states {
		l := makeLoan(id.NewID32(), userID)
		l.Status = s
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	n, err := repo.CountActiveByUserIDForUpdate(ctx, userID)
	if err != nil {
		t.Fatalf("CountActiveByUserIDForUpdate: %v", err)
	}
	// rejected and closed don't count against the limit
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}

func TestSettleDeposit_OnlyFirstWriterWins(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.SettleDeposit(ctx, l.ID, loanDomain.MethodBalance)
	if err != nil {
		t.Fatalf("SettleDeposit: %v", err)
	}
	if rows != 1 {
		t.Fatalf("first settlement affected %d rows, want 1", rows)
	}

	rows, err = repo.SettleDeposit(ctx, l.ID, loanDomain.MethodBalance)
	if err != nil {
		t.Fatalf("second SettleDeposit: %v", err)
	}
	if rows != 0 {
		t.Fatalf("second settlement affected %d rows, want 0", rows)
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if !got.DepositPaid || got.DepositStatus != loanDomain.DepositCompleted {
		t.Errorf("deposit flags: %+v", got)
	}
	if got.Status != loanDomain.StatusUnderReview {
		t.Errorf("status = %s, want under_review", got.Status)
	}
	if got.DepositDate == nil {
		t.Error("deposit_date not set")
	}
	if got.Version != 1 {
		t.Errorf("version = %d, want exactly one bump", got.Version)
	}
}

func TestSettleDeposit_IgnoresNonPendingLoans(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32())
	l.Status = loanDomain.StatusRejected
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.SettleDeposit(ctx, l.ID, loanDomain.MethodBalance)
	if err != nil {
		t.Fatalf("SettleDeposit: %v", err)
	}
	if rows != 0 {
		t.Fatalf("settled a rejected loan, rows = %d", rows)
	}
}

func TestSaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	remaining := 11_113.92
	l.Status = loanDomain.StatusActive
	l.RemainingBalance = &remaining
	l.Version++
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != loanDomain.StatusActive || got.RemainingBalance == nil || *got.RemainingBalance != remaining {
		t.Errorf("unexpected loan after save: %+v", got)
	}
}

func seedAccount(t *testing.T, db *gorm.DB, userID string, balance float64, status accountDomain.Status) string {
	t.Helper()
	acct := &accountDomain.Account{
		AccountID: id.NewID32(),
		UserID:    userID,
		Balance:   balance,
		Status:    status,
	}
	if err := db.Create(acct).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return acct.AccountID
}

func TestDebit_GuardsBalanceAndStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	userID := id.NewID32()
	active := seedAccount(t, db, userID, 500, accountDomain.StatusActive)
	frozen := seedAccount(t, db, userID, 500, accountDomain.StatusFrozen)

	rows, err := repo.Debit(ctx, active, 400)
	if err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if rows != 1 {
		t.Fatalf("covered debit affected %d rows, want 1", rows)
	}

	// remaining 100 cannot cover 200
	rows, err = repo.Debit(ctx, active, 200)
	if err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if rows != 0 {
		t.Fatalf("uncovered debit affected %d rows, want 0", rows)
	}

	rows, err = repo.Debit(ctx, frozen, 100)
	if err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if rows != 0 {
		t.Fatalf("frozen account debit affected %d rows, want 0", rows)
	}

	got, err := repo.GetByAccountID(ctx, active)
	if err != nil {
		t.Fatalf("GetByAccountID: %v", err)
	}
	if got.Balance != 100 {
		t.Fatalf("balance = %v, want 100", got.Balance)
	}
}

func TestDepositComplete_OnlyOnce(t *testing.T) {
	db := openTestDB(t)
	repo := NewDepositRepository(db)
	ctx := context.Background()

	tx := &depositDomain.Transaction{
		DepositID: id.NewID32(),
		LoanID:    1,
		UserID:    id.NewID32(),
		Method:    loanDomain.MethodCrypto,
		Amount:    1_000,
		Status:    depositDomain.StatusPending,
	}
	if err := repo.Create(ctx, tx); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.Complete(ctx, tx.DepositID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("first Complete affected %d rows, want 1", rows)
	}

	rows, err = repo.Complete(ctx, tx.DepositID)
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if rows != 0 {
		t.Fatalf("second Complete affected %d rows, want 0", rows)
	}

	got, err := repo.GetByDepositID(ctx, tx.DepositID)
	if err != nil {
		t.Fatalf("GetByDepositID: %v", err)
	}
	if got.Status != depositDomain.StatusCompleted || got.CompletedAt == nil {
		t.Errorf("unexpected transaction: %+v", got)
	}
}

func TestGetLatestByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewDepositRepository(db)
	ctx := context.Background()

	older := &depositDomain.Transaction{DepositID: id.NewID32(), LoanID: 7, Method: loanDomain.MethodCrypto, Amount: 1_000, Status: depositDomain.StatusPending}
	newer := &depositDomain.Transaction{DepositID: id.NewID32(), LoanID: 7, Method: loanDomain.MethodBalance, Amount: 1_000, Status: depositDomain.StatusCompleted}
	for _, tx := range []*depositDomain.Transaction{older, newer} {
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.GetLatestByLoanID(ctx, 7)
	if err != nil {
		t.Fatalf("GetLatestByLoanID: %v", err)
	}
	if got.DepositID != newer.DepositID {
		t.Errorf("got %s, want the later transaction %s", got.DepositID, newer.DepositID)
	}

	if _, err := repo.GetLatestByLoanID(ctx, 404); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
