package service

import (
	"context"
	"log/slog"
	"sort"

	"realty-agent/calculator"
	"realty-agent/domain"
)

type TermRecommendationService struct {
	limits  Limits
	advisor *AdvisorService
}

func NewTermRecommendationService(limits Limits, advisor *AdvisorService) *TermRecommendationService {
	return &TermRecommendationService{
		limits:  limits,
		advisor: advisor,
	}
}

// RecommendTerm analiza diferentes plazos y recomienda el óptimo
func (s *TermRecommendationService) RecommendTerm(
	ctx context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if err := s.validate(input); err != nil {
		return domain.TermRecommendationResult{}, err
	}

	shortest := s.scenario(input, input.MinTermYears)
	longest := s.scenario(input, input.MaxTermYears)

	recommendations := []domain.TermRecommendation{}

	// Calcular escenarios para cada plazo
	for term := input.MinTermYears; term <= input.MaxTermYears; term++ {
		rec := s.scenario(input, term)
		if !finite(rec.MonthlyPayment, rec.TotalInterest) {
			slog.Warn("skipping non-finite term scenario", "term_years", term)
			continue
		}

		// Filtrar por pago mensual máximo
		if rec.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}

		rec.Score = calculateScore(rec, input, shortest, longest)
		rec.Reason = generateReason(input.Preference)
		recommendations = append(recommendations, rec)
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, invalid("no se encontraron plazos válidos con el pago mensual máximo especificado")
	}

	// Ordenar por score descendente; a igual score gana el plazo más corto
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	maxAlternatives := 3
	end := min(len(recommendations), maxAlternatives+1)
	alternatives := recommendations[1:end]

	if s.advisor != nil {
		recommendations[0].Reason = s.advisor.ExplainTermRecommendation(ctx, input, recommendations[0], alternatives)
	}

	return domain.TermRecommendationResult{
		RecommendedTerm: recommendations[0].TermYears,
		Recommendations: recommendations,
	}, nil
}

func (s *TermRecommendationService) validate(input domain.TermRecommendationInput) error {
	candidate := domain.MortgageInput{
		PropertyPrice:       input.PropertyPrice,
		DownPaymentPercent:  input.DownPaymentPercent,
		InterestRatePercent: input.InterestRatePercent,
		LoanTermYears:       input.MaxTermYears,
	}
	if input.PropertyPrice <= 0 {
		return invalid("precio inválido")
	}
	if input.MinTermYears <= 0 || input.MaxTermYears <= 0 {
		return invalid("plazos inválidos")
	}
	if input.MinTermYears > input.MaxTermYears {
		return invalid("plazo mínimo mayor que máximo")
	}
	if err := s.limits.validateMortgage(candidate); err != nil {
		return err
	}
	if input.MaxTermYears-input.MinTermYears > MaxTermRangeYears {
		return invalid("rango de plazos excede el máximo de %d años", MaxTermRangeYears)
	}
	if !finite(input.MaxMonthlyPayment) || input.MaxMonthlyPayment <= 0 {
		return invalid("pago mensual máximo inválido")
	}
	if _, ok := preferenceText[input.Preference]; !ok {
		return invalid("preferencia inválida")
	}
	return nil
}

func (s *TermRecommendationService) scenario(input domain.TermRecommendationInput, term int) domain.TermRecommendation {
	m := calculator.ComputeMortgage(domain.MortgageInput{
		PropertyPrice:       input.PropertyPrice,
		DownPaymentPercent:  input.DownPaymentPercent,
		InterestRatePercent: input.InterestRatePercent,
		LoanTermYears:       term,
	})
	totalInterest := m.MonthlyPayment*float64(term*12) - m.LoanAmount
	if totalInterest < 0 {
		totalInterest = 0
	}
	return domain.TermRecommendation{
		TermYears:      term,
		MonthlyPayment: roundTo2Decimals(m.MonthlyPayment),
		TotalInterest:  roundTo2Decimals(totalInterest),
	}
}

// calculateScore normaliza intereses, pago y plazo a una escala 0-10 y los
// pondera según la preferencia.
func calculateScore(
	rec domain.TermRecommendation,
	input domain.TermRecommendationInput,
	shortest, longest domain.TermRecommendation,
) float64 {
	interestRange := longest.TotalInterest - shortest.TotalInterest
	paymentRange := input.MaxMonthlyPayment - longest.MonthlyPayment

	interestScore := 0.0
	paymentScore := 0.0
	termScore := 10.0

	if interestRange > 0 {
		interestScore = 10.0 * (1.0 - (rec.TotalInterest-shortest.TotalInterest)/interestRange)
	}
	if paymentRange > 0 {
		paymentScore = 10.0 * (1.0 - (rec.MonthlyPayment-longest.MonthlyPayment)/paymentRange)
	}
	if input.MaxTermYears > input.MinTermYears {
		termScore = 10.0 * (1.0 - float64(rec.TermYears-input.MinTermYears)/float64(input.MaxTermYears-input.MinTermYears))
	}

	var score float64
	switch input.Preference {
	case PreferenceMinimizeInterest:
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case PreferenceMinimizePayment:
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	case PreferenceBalanced:
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}

	return roundTo2Decimals(score)
}

func generateReason(preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return "Plazo optimizado para minimizar el costo total de intereses"
	case PreferenceMinimizePayment:
		return "Plazo optimizado para minimizar el pago mensual"
	case PreferenceBalanced:
		return "Balance óptimo entre pago mensual y costo total"
	}
	return "Recomendación basada en los parámetros proporcionados"
}
