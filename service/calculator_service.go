package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/goccy/go-json"

	"realty-agent/calculator"
	"realty-agent/domain"
	"realty-agent/repository"
)

const (
	KindMortgage = "mortgage"
	KindRoi      = "roi"
)

// CalculatorService validates calculator input, runs the engines and caches
// the results keyed by the exact input.
type CalculatorService struct {
	repo   repository.CalculationRepository
	cache  repository.CacheRepository
	limits Limits
	ttl    time.Duration
}

// NewCalculatorService creates a new CalculatorService with the given repository and cache.
func NewCalculatorService(
	repo repository.CalculationRepository,
	cache repository.CacheRepository,
	limits Limits,
	ttl time.Duration,
) *CalculatorService {
	if ttl <= 0 {
		ttl = DefaultCalculationTTL
	}
	return &CalculatorService{repo: repo, cache: cache, limits: limits, ttl: ttl}
}

// DefaultMortgageInput returns the starting values of the mortgage calculator for a listing.
func DefaultMortgageInput(price float64) domain.MortgageInput {
	return domain.MortgageInput{
		PropertyPrice:       price,
		DownPaymentPercent:  20,
		InterestRatePercent: 7.0,
		LoanTermYears:       30,
	}
}

// DefaultRoiInput returns the starting values of the ROI calculator for a
// listing: rent at 0.4% of the price per month, expenses at 35% of rent.
func DefaultRoiInput(price float64) domain.RoiInput {
	rent := math.Round(price / 250)
	return domain.RoiInput{
		MortgageInput: domain.MortgageInput{
			PropertyPrice:       price,
			DownPaymentPercent:  30,
			InterestRatePercent: 6.5,
			LoanTermYears:       20,
		},
		ClosingCostsPercent:       5,
		MonthlyRentalIncome:       rent,
		MonthlyExpenses:           math.Round(price / 250 * 0.35),
		VacancyRatePercent:        8,
		AnnualAppreciationPercent: 7,
	}
}

// CalculateMortgage validates the input and returns the mortgage metrics.
func (s *CalculatorService) CalculateMortgage(
	ctx context.Context,
	input domain.MortgageInput,
) (domain.MortgageMetrics, error) {

	if err := s.limits.validateMortgage(input); err != nil {
		return domain.MortgageMetrics{}, err
	}

	key := mortgageKey(input)
	var result domain.MortgageMetrics
	if s.fromCache(ctx, key, &result) {
		return result, nil
	}

	result = calculator.ComputeMortgage(input)
	s.record(ctx, key, KindMortgage, input, result)
	return result, nil
}

// CalculateRoi validates the input and returns the investment metrics with
// the ten-year projection.
func (s *CalculatorService) CalculateRoi(
	ctx context.Context,
	input domain.RoiInput,
) (domain.RoiMetrics, error) {

	if err := s.limits.validateRoi(input); err != nil {
		return domain.RoiMetrics{}, err
	}

	key := roiKey(input)
	var result domain.RoiMetrics
	if s.fromCache(ctx, key, &result) {
		return result, nil
	}

	result = calculator.ComputeRoi(input)
	s.record(ctx, key, KindRoi, input, result)
	return result, nil
}

func (s *CalculatorService) fromCache(ctx context.Context, key string, out any) bool {
	cached, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		slog.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return false
	}
	return true
}

// record caches and persists a fresh result. Failures here are not
// critical for the caller.
func (s *CalculatorService) record(ctx context.Context, key, kind string, input, result any) {
	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
			slog.Warn("failed to cache calculation", "kind", kind, "error", err)
		}
	}

	if err := s.repo.Save(ctx, domain.Calculation{Kind: kind, Input: input, Result: result}); err != nil {
		slog.Warn("failed to save calculation", "kind", kind, "error", err)
	}
}

func mortgageKey(in domain.MortgageInput) string {
	return fmt.Sprintf("calc:mortgage:%g:%g:%g:%d",
		in.PropertyPrice, in.DownPaymentPercent, in.InterestRatePercent, in.LoanTermYears)
}

func roiKey(in domain.RoiInput) string {
	return fmt.Sprintf("calc:roi:%g:%g:%g:%d:%g:%g:%g:%g:%g",
		in.PropertyPrice, in.DownPaymentPercent, in.InterestRatePercent, in.LoanTermYears,
		in.ClosingCostsPercent, in.MonthlyRentalIncome, in.MonthlyExpenses,
		in.VacancyRatePercent, in.AnnualAppreciationPercent)
}

func (l Limits) validateMortgage(input domain.MortgageInput) error {
	if !finite(input.PropertyPrice, input.DownPaymentPercent, input.InterestRatePercent) {
		return invalid("los valores deben ser números finitos")
	}
	if input.PropertyPrice < 0 {
		return invalid("precio inválido")
	}
	if input.PropertyPrice > l.MaxPropertyPrice {
		return invalid("precio excede el máximo permitido de $%.2f", l.MaxPropertyPrice)
	}
	if input.DownPaymentPercent < 0 || input.DownPaymentPercent > 100 {
		return invalid("enganche debe estar entre 0%% y 100%%")
	}
	if input.InterestRatePercent < 0 {
		return invalid("tasa inválida")
	}
	if input.InterestRatePercent > l.MaxInterestRate {
		return invalid("tasa de interés excede el máximo permitido de %.2f%%", l.MaxInterestRate)
	}
	if input.LoanTermYears <= 0 {
		return invalid("plazo inválido")
	}
	if input.LoanTermYears > l.MaxTermYears {
		return invalid("plazo excede el máximo permitido de %d años", l.MaxTermYears)
	}
	return nil
}

func (l Limits) validateRoi(input domain.RoiInput) error {
	if err := l.validateMortgage(input.MortgageInput); err != nil {
		return err
	}
	if !finite(input.ClosingCostsPercent, input.MonthlyRentalIncome, input.MonthlyExpenses,
		input.VacancyRatePercent, input.AnnualAppreciationPercent) {
		return invalid("los valores deben ser números finitos")
	}
	if input.ClosingCostsPercent < 0 || input.ClosingCostsPercent > l.MaxClosingCosts {
		return invalid("gastos de cierre deben estar entre 0%% y %.2f%%", l.MaxClosingCosts)
	}
	if input.MonthlyRentalIncome < 0 || input.MonthlyRentalIncome > l.MaxMonthlyAmount {
		return invalid("ingreso mensual por renta inválido")
	}
	if input.MonthlyExpenses < 0 || input.MonthlyExpenses > l.MaxMonthlyAmount {
		return invalid("gastos mensuales inválidos")
	}
	if input.VacancyRatePercent < 0 || input.VacancyRatePercent > 100 {
		return invalid("tasa de desocupación debe estar entre 0%% y 100%%")
	}
	if input.AnnualAppreciationPercent <= -100 || input.AnnualAppreciationPercent > l.MaxAppreciationRate {
		return invalid("apreciación anual debe ser mayor a -100%% y menor a %.2f%%", l.MaxAppreciationRate)
	}
	return nil
}
