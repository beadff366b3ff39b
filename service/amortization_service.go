package service

import (
	"context"

	"realty-agent/calculator"
	"realty-agent/domain"
)

type AmortizationService struct {
	limits Limits
}

func NewAmortizationService(limits Limits) *AmortizationService {
	return &AmortizationService{limits: limits}
}

// Schedule valida la hipoteca y devuelve su tabla de amortización mensual
// con totales por año.
func (s *AmortizationService) Schedule(
	_ context.Context,
	input domain.MortgageInput,
) (domain.AmortizationSchedule, error) {

	if err := s.limits.validateMortgage(input); err != nil {
		return domain.AmortizationSchedule{}, err
	}
	if input.PropertyPrice <= 0 {
		return domain.AmortizationSchedule{}, invalid("precio inválido")
	}
	return calculator.Amortize(input), nil
}
