package annuity

import (
	"errors"
	"math"
)

var ErrInvalidTerm = errors.New("term must be at least one month")

var ErrInvalidPrincipal = errors.New("principal must be positive")

var ErrInvalidRate = errors.New("rate must not be negative")

// Schedule is the fixed-payment breakdown for a principal amortized over
// termMonths at annualRatePercent APR.
type Schedule struct {
	MonthlyPayment  float64 // full precision, round only for display
	TotalObligation float64
	TotalInterest   float64
}

// Compute returns the standard fixed-rate annuity schedule.
// With r = APR/100/12: M = P*r*(1+r)^n / ((1+r)^n - 1), or P/n when r is zero.
func Compute(principal, annualRatePercent float64, termMonths int) (Schedule, error) {
	if principal <= 0 {
		return Schedule{}, ErrInvalidPrincipal
	}
	if annualRatePercent < 0 {
		return Schedule{}, ErrInvalidRate
	}
	if termMonths < 1 {
		return Schedule{}, ErrInvalidTerm
	}

	n := float64(termMonths)
	var m float64
	if annualRatePercent == 0 {
		m = principal / n
	} else {
		r := annualRatePercent / 100 / 12
		pow := math.Pow(1+r, n)
		m = principal * r * pow / (pow - 1)
	}

	total := m * n
	return Schedule{
		MonthlyPayment:  m,
		TotalObligation: total,
		TotalInterest:   total - principal,
	}, nil
}

// MonthlyPayment is a convenience wrapper for callers that only cache the payment.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) (float64, error) {
	s, err := Compute(principal, annualRatePercent, termMonths)
	if err != nil {
		return 0, err
	}
	return s.MonthlyPayment, nil
}

// Round2 rounds to 2 decimal places for display and money columns.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
