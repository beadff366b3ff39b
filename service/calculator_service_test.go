package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"realty-agent/domain"
	"realty-agent/repository"
)

func newTestCalculatorService(repo *MockCalculationRepository) (*CalculatorService, *repository.MemoryCache) {
	cache := repository.NewMemoryCache()
	return NewCalculatorService(repo, cache, DefaultLimits(), 0), cache
}

func TestCalculateMortgage_WithInterest(t *testing.T) {

	mockRepo := &MockCalculationRepository{}
	service, _ := newTestCalculatorService(mockRepo)

	result, err := service.CalculateMortgage(context.Background(), domain.MortgageInput{
		PropertyPrice:       250000,
		DownPaymentPercent:  20,
		InterestRatePercent: 6,
		LoanTermYears:       30,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.MonthlyPayment-1199.10) > 0.01 {
		t.Errorf("expected payment 1199.10, got %.4f", result.MonthlyPayment)
	}

	if !mockRepo.SaveCalled {
		t.Errorf("expected repository Save to be called")
	}
	if mockRepo.Saved[0].Kind != KindMortgage {
		t.Errorf("expected kind %q, got %q", KindMortgage, mockRepo.Saved[0].Kind)
	}
}

func TestCalculateMortgage_UsesCache(t *testing.T) {

	mockRepo := &MockCalculationRepository{}
	service, cache := newTestCalculatorService(mockRepo)
	input := DefaultMortgageInput(400000)

	first, err := service.CalculateMortgage(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.CalculateMortgage(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
	if len(mockRepo.Saved) != 1 {
		t.Errorf("expected one save, got %d", len(mockRepo.Saved))
	}
	if cache.Len() != 1 {
		t.Errorf("expected one cache entry, got %d", cache.Len())
	}
}

func TestCalculateMortgage_SaveErrorIsNotFatal(t *testing.T) {

	mockRepo := &MockCalculationRepository{ForceError: true}
	service, _ := newTestCalculatorService(mockRepo)

	_, err := service.CalculateMortgage(context.Background(), DefaultMortgageInput(100000))

	if err != nil {
		t.Fatalf("expected save failure to be ignored, got %v", err)
	}
}

func TestCalculateMortgage_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input domain.MortgageInput
	}{
		{"negative price", domain.MortgageInput{PropertyPrice: -1, DownPaymentPercent: 20, InterestRatePercent: 5, LoanTermYears: 30}},
		{"down payment over 100", domain.MortgageInput{PropertyPrice: 1000, DownPaymentPercent: 120, InterestRatePercent: 5, LoanTermYears: 30}},
		{"negative rate", domain.MortgageInput{PropertyPrice: 1000, DownPaymentPercent: 20, InterestRatePercent: -1, LoanTermYears: 30}},
		{"zero term", domain.MortgageInput{PropertyPrice: 1000, DownPaymentPercent: 20, InterestRatePercent: 5, LoanTermYears: 0}},
		{"term over limit", domain.MortgageInput{PropertyPrice: 1000, DownPaymentPercent: 20, InterestRatePercent: 5, LoanTermYears: 80}},
		{"not a number", domain.MortgageInput{PropertyPrice: math.NaN(), DownPaymentPercent: 20, InterestRatePercent: 5, LoanTermYears: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockCalculationRepository{}
			service, _ := newTestCalculatorService(mockRepo)

			_, err := service.CalculateMortgage(context.Background(), tt.input)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if mockRepo.SaveCalled {
				t.Errorf("expected no save for invalid input")
			}
		})
	}
}

func TestCalculateRoi_Defaults(t *testing.T) {

	mockRepo := &MockCalculationRepository{}
	service, _ := newTestCalculatorService(mockRepo)

	result, err := service.CalculateRoi(context.Background(), DefaultRoiInput(250000))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Projections) != 10 {
		t.Fatalf("expected 10 projections, got %d", len(result.Projections))
	}
	// renta 1000, gastos 350, desocupación 8%: NOI = 12000*0.92 - 4200
	if math.Abs(result.Noi-6840) > 1e-6 {
		t.Errorf("expected NOI 6840, got %.4f", result.Noi)
	}
	if mockRepo.Saved[0].Kind != KindRoi {
		t.Errorf("expected kind %q, got %q", KindRoi, mockRepo.Saved[0].Kind)
	}
}

func TestCalculateRoi_InvalidVacancy(t *testing.T) {

	service, _ := newTestCalculatorService(&MockCalculationRepository{})
	input := DefaultRoiInput(250000)
	input.VacancyRatePercent = 150

	_, err := service.CalculateRoi(context.Background(), input)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDefaultRoiInput(t *testing.T) {
	in := DefaultRoiInput(250000)

	if in.MonthlyRentalIncome != 1000 {
		t.Errorf("expected rent 1000, got %.2f", in.MonthlyRentalIncome)
	}
	if in.MonthlyExpenses != 350 {
		t.Errorf("expected expenses 350, got %.2f", in.MonthlyExpenses)
	}
	if in.DownPaymentPercent != 30 || in.LoanTermYears != 20 {
		t.Errorf("unexpected financing defaults: %+v", in.MortgageInput)
	}
}
