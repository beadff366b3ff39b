package service

import (
	"math"
	"time"
)

const (
	MaxTermRangeYears = 40 // máximo rango de plazos a evaluar

	DefaultCalculationTTL = 10 * time.Minute
	DefaultSessionTTL     = 12 * time.Hour

	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"
)

// Limits bounds the values the calculators accept.
type Limits struct {
	MaxPropertyPrice    float64
	MaxInterestRate     float64
	MaxTermYears        int
	MaxMonthlyAmount    float64
	MaxClosingCosts     float64
	MaxAppreciationRate float64
}

func DefaultLimits() Limits {
	return Limits{
		MaxPropertyPrice:    1_000_000_000.0,
		MaxInterestRate:     100.0,
		MaxTermYears:        50,
		MaxMonthlyAmount:    100_000_000.0,
		MaxClosingCosts:     100.0,
		MaxAppreciationRate: 100.0,
	}
}

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
