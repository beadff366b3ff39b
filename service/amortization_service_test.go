package service

import (
	"context"
	"errors"
	"testing"
)

func TestAmortizationService_Schedule(t *testing.T) {
	service := NewAmortizationService(DefaultLimits())

	schedule, err := service.Schedule(context.Background(), DefaultMortgageInput(300000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schedule.Months) != 360 || len(schedule.Years) != 30 {
		t.Errorf("unexpected schedule size: %d months, %d years", len(schedule.Months), len(schedule.Years))
	}
	if schedule.LoanAmount != 240000 {
		t.Errorf("expected loan 240000, got %.2f", schedule.LoanAmount)
	}
}

func TestAmortizationService_Invalid(t *testing.T) {
	service := NewAmortizationService(DefaultLimits())

	_, err := service.Schedule(context.Background(), DefaultMortgageInput(0))

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
