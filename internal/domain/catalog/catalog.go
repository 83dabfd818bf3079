package catalog

import "bankportal-backend/internal/domain/loan"

const (
	TypePersonal   loan.LoanType = "personal"
	TypeMortgage   loan.LoanType = "mortgage"
	TypeAuto       loan.LoanType = "auto"
	TypeBusiness   loan.LoanType = "business"
	TypeStudent    loan.LoanType = "student"
	TypeHomeEquity loan.LoanType = "home_equity"
)

// RateTier is one (APR, term window) tuple a product offers. The tuple the
// applicant selects is snapshotted onto the loan and never re-read.
type RateTier struct {
	AnnualRate    float64 `json:"annual_rate"`
	MinTermMonths int     `json:"min_term_months"`
	MaxTermMonths int     `json:"max_term_months"`
}

type Product struct {
	Type      loan.LoanType `json:"type"`
	Name      string        `json:"name"`
	MinAmount float64       `json:"min_amount"`
	MaxAmount float64       `json:"max_amount"`
	Tiers     []RateTier    `json:"tiers"`
}

// Tier returns the tuple carrying the given APR, if the product offers one.
func (p *Product) Tier(annualRate float64) (RateTier, bool) {
	for _, t := range p.Tiers {
		if t.AnnualRate == annualRate {
			return t, true
		}
	}
	return RateTier{}, false
}

// Service is the read-only catalog queried once per application. Implementations
// may load from config or a table; applications only ever see a snapshot.
type Service interface {
	Product(t loan.LoanType) (*Product, bool)
	Products() []Product
}

type static struct {
	byType map[loan.LoanType]Product
	order  []loan.LoanType
}

// NewStatic returns the built-in product catalog.
func NewStatic() Service {
	products := []Product{
		{Type: TypePersonal, Name: "Personal Loan", MinAmount: 1_000, MaxAmount: 50_000, Tiers: []RateTier{
			{AnnualRate: 6.99, MinTermMonths: 12, MaxTermMonths: 36},
			{AnnualRate: 8.49, MinTermMonths: 37, MaxTermMonths: 60},
		}},
		{Type: TypeMortgage, Name: "Mortgage", MinAmount: 50_000, MaxAmount: 1_000_000, Tiers: []RateTier{
			{AnnualRate: 5.49, MinTermMonths: 120, MaxTermMonths: 240},
			{AnnualRate: 5.99, MinTermMonths: 241, MaxTermMonths: 360},
		}},
		{Type: TypeAuto, Name: "Auto Loan", MinAmount: 5_000, MaxAmount: 100_000, Tiers: []RateTier{
			{AnnualRate: 4.99, MinTermMonths: 12, MaxTermMonths: 48},
			{AnnualRate: 5.74, MinTermMonths: 49, MaxTermMonths: 72},
		}},
		{Type: TypeBusiness, Name: "Business Loan", MinAmount: 10_000, MaxAmount: 500_000, Tiers: []RateTier{
			{AnnualRate: 7.99, MinTermMonths: 12, MaxTermMonths: 60},
			{AnnualRate: 9.25, MinTermMonths: 61, MaxTermMonths: 120},
		}},
		{Type: TypeStudent, Name: "Student Loan", MinAmount: 1_000, MaxAmount: 100_000, Tiers: []RateTier{
			{AnnualRate: 4.50, MinTermMonths: 12, MaxTermMonths: 120},
		}},
		{Type: TypeHomeEquity, Name: "Home Equity Loan", MinAmount: 10_000, MaxAmount: 250_000, Tiers: []RateTier{
			{AnnualRate: 6.25, MinTermMonths: 60, MaxTermMonths: 180},
		}},
	}
	s := &static{byType: make(map[loan.LoanType]Product, len(products))}
	for _, p := range products {
		s.byType[p.Type] = p
		s.order = append(s.order, p.Type)
	}
	return s
}

func (s *static) Product(t loan.LoanType) (*Product, bool) {
	p, ok := s.byType[t]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (s *static) Products() []Product {
	out := make([]Product, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, s.byType[t])
	}
	return out
}
