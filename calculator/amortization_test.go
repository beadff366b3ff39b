package calculator

import (
	"math"
	"testing"

	"realty-agent/domain"
)

func TestAmortize_PaysOffLoan(t *testing.T) {
	input := domain.MortgageInput{
		PropertyPrice:       300000,
		DownPaymentPercent:  20,
		InterestRatePercent: 6,
		LoanTermYears:       30,
	}

	s := Amortize(input)

	if len(s.Months) != 360 {
		t.Fatalf("expected 360 rows, got %d", len(s.Months))
	}
	if len(s.Years) != 30 {
		t.Fatalf("expected 30 yearly summaries, got %d", len(s.Years))
	}
	if last := s.Months[len(s.Months)-1]; last.Balance != 0 {
		t.Errorf("expected zero final balance, got %.2f", last.Balance)
	}

	var principal float64
	for _, y := range s.Years {
		principal += y.PrincipalPaid
	}
	if math.Abs(principal-s.LoanAmount) > 1 {
		t.Errorf("principal paid %.2f does not match loan %.2f", principal, s.LoanAmount)
	}
	if math.Abs(s.TotalPaid-(s.LoanAmount+s.TotalInterest)) > 0.05 {
		t.Errorf("total paid %.2f != loan + interest %.2f", s.TotalPaid, s.LoanAmount+s.TotalInterest)
	}
}

func TestAmortize_InterestDecreases(t *testing.T) {
	s := Amortize(domain.MortgageInput{
		PropertyPrice:       200000,
		DownPaymentPercent:  10,
		InterestRatePercent: 7,
		LoanTermYears:       15,
	})

	for i := 1; i < len(s.Years); i++ {
		if s.Years[i].InterestPaid > s.Years[i-1].InterestPaid {
			t.Fatalf("interest grew in year %d: %.2f > %.2f",
				s.Years[i].Year, s.Years[i].InterestPaid, s.Years[i-1].InterestPaid)
		}
	}
}

func TestAmortize_ZeroRate(t *testing.T) {
	s := Amortize(domain.MortgageInput{
		PropertyPrice:       120000,
		DownPaymentPercent:  0,
		InterestRatePercent: 0,
		LoanTermYears:       10,
	})

	if s.TotalInterest != 0 {
		t.Errorf("expected no interest, got %.2f", s.TotalInterest)
	}
	if s.Months[0].Principal != 1000 {
		t.Errorf("expected straight-line principal 1000, got %.2f", s.Months[0].Principal)
	}
}

func TestAmortize_AllCash(t *testing.T) {
	s := Amortize(domain.MortgageInput{
		PropertyPrice:       150000,
		DownPaymentPercent:  100,
		InterestRatePercent: 5,
		LoanTermYears:       30,
	})

	if len(s.Months) != 0 || len(s.Years) != 0 {
		t.Errorf("expected empty schedule, got %d months", len(s.Months))
	}
	if s.DownPaymentAmount != 150000 {
		t.Errorf("expected down payment 150000, got %.2f", s.DownPaymentAmount)
	}
}
