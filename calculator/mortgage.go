package calculator

import (
	"math"

	"realty-agent/domain"
)

// ComputeMortgage returns the loan amount, down payment and level monthly
// payment for the given input.
func ComputeMortgage(input domain.MortgageInput) domain.MortgageMetrics {
	downPaymentAmount, loanAmount := splitPrice(input.PropertyPrice, input.DownPaymentPercent)

	if loanAmount <= 0 {
		return domain.MortgageMetrics{
			MonthlyPayment:    0,
			LoanAmount:        0,
			DownPaymentAmount: downPaymentAmount,
		}
	}

	return domain.MortgageMetrics{
		MonthlyPayment:    levelPayment(loanAmount, monthlyRate(input.InterestRatePercent), numberOfPayments(input.LoanTermYears)),
		LoanAmount:        loanAmount,
		DownPaymentAmount: downPaymentAmount,
	}
}

func splitPrice(price, downPaymentPercent float64) (downPayment, loan float64) {
	downPayment = price * downPaymentPercent / 100
	return downPayment, price - downPayment
}

func monthlyRate(annualPercent float64) float64 {
	return (annualPercent / 100) / 12
}

func numberOfPayments(termYears int) float64 {
	return float64(termYears * 12)
}

// levelPayment is the constant monthly payment that retires loan over n
// payments at monthly rate r. A non-positive rate amortizes straight-line.
func levelPayment(loan, r, n float64) float64 {
	if loan <= 0 {
		return 0
	}
	if r <= 0 {
		return loan / n
	}
	growth := math.Pow(1+r, n)
	return loan * r * growth / (growth - 1)
}
