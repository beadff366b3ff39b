package calculator

import (
	"math"
	"testing"

	"realty-agent/domain"
)

func TestComputeMortgage_StandardLoan(t *testing.T) {
	result := ComputeMortgage(domain.MortgageInput{
		PropertyPrice:       300000,
		DownPaymentPercent:  20,
		InterestRatePercent: 7.0,
		LoanTermYears:       30,
	})

	if result.LoanAmount != 240000 {
		t.Errorf("expected loan 240000, got %.2f", result.LoanAmount)
	}
	if result.DownPaymentAmount != 60000 {
		t.Errorf("expected down payment 60000, got %.2f", result.DownPaymentAmount)
	}
	if math.Abs(result.MonthlyPayment-1596.73) > 0.01 {
		t.Errorf("expected monthly payment ~1596.73, got %.4f", result.MonthlyPayment)
	}
}

func TestComputeMortgage_FullDownPayment(t *testing.T) {
	result := ComputeMortgage(domain.MortgageInput{
		PropertyPrice:       450000,
		DownPaymentPercent:  100,
		InterestRatePercent: 6,
		LoanTermYears:       20,
	})

	if result.LoanAmount != 0 || result.MonthlyPayment != 0 {
		t.Errorf("expected no loan, got loan %.2f payment %.2f", result.LoanAmount, result.MonthlyPayment)
	}
	if result.DownPaymentAmount != 450000 {
		t.Errorf("expected down payment 450000, got %.2f", result.DownPaymentAmount)
	}
}

func TestComputeMortgage_DownPaymentAbove100(t *testing.T) {
	result := ComputeMortgage(domain.MortgageInput{
		PropertyPrice:       100000,
		DownPaymentPercent:  120,
		InterestRatePercent: 5,
		LoanTermYears:       15,
	})

	if result.LoanAmount != 0 || result.MonthlyPayment != 0 {
		t.Errorf("expected negative loan to collapse to zero, got %+v", result)
	}
	if result.DownPaymentAmount != 120000 {
		t.Errorf("expected down payment 120000, got %.2f", result.DownPaymentAmount)
	}
}

func TestComputeMortgage_ZeroInterest(t *testing.T) {
	input := domain.MortgageInput{
		PropertyPrice:       250000,
		DownPaymentPercent:  10,
		InterestRatePercent: 0,
		LoanTermYears:       25,
	}
	result := ComputeMortgage(input)

	expected := result.LoanAmount / float64(input.LoanTermYears*12)
	if result.MonthlyPayment != expected {
		t.Errorf("expected straight-line payment %.6f, got %.6f", expected, result.MonthlyPayment)
	}
}

func TestComputeMortgage_PartsSumToPrice(t *testing.T) {
	prices := []float64{0, 1, 85000, 300000, 1234567.89}
	downPayments := []float64{0, 10, 20, 33.3, 99.9, 100}

	for _, price := range prices {
		for _, dp := range downPayments {
			result := ComputeMortgage(domain.MortgageInput{
				PropertyPrice:       price,
				DownPaymentPercent:  dp,
				InterestRatePercent: 6.5,
				LoanTermYears:       30,
			})
			sum := result.DownPaymentAmount + result.LoanAmount
			if math.Abs(sum-price) > 1e-6 {
				t.Errorf("price %.2f dp %.1f%%: down payment + loan = %.6f", price, dp, sum)
			}
		}
	}
}
