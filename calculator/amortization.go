package calculator

import (
	"math"

	"realty-agent/domain"
)

// balanceTolerance is the remaining balance treated as paid off.
const balanceTolerance = 0.01

// Amortize builds the month-by-month schedule of the mortgage together with
// per-year totals. Rows are rounded to cents; totals are summed unrounded.
func Amortize(input domain.MortgageInput) domain.AmortizationSchedule {
	metrics := ComputeMortgage(input)
	schedule := domain.AmortizationSchedule{
		MortgageMetrics: metrics,
		Months:          []domain.AmortizationRow{},
		Years:           []domain.AmortizationYear{},
	}
	if metrics.LoanAmount <= 0 {
		return schedule
	}

	r := monthlyRate(input.InterestRatePercent)
	months := input.LoanTermYears * 12
	balance := metrics.LoanAmount

	var year domain.AmortizationYear
	for month := 1; month <= months; month++ {
		interest := 0.0
		if r > 0 {
			interest = balance * r
		}
		payment := metrics.MonthlyPayment
		principal := payment - interest

		// El último pago liquida el saldo restante.
		if month == months || principal > balance {
			principal = balance
			payment = principal + interest
		}
		balance -= principal
		if balance < balanceTolerance {
			balance = 0
		}

		schedule.TotalPaid += payment
		schedule.TotalInterest += interest
		schedule.Months = append(schedule.Months, domain.AmortizationRow{
			Month:     month,
			Payment:   round2(payment),
			Interest:  round2(interest),
			Principal: round2(principal),
			Balance:   round2(balance),
		})

		year.InterestPaid += interest
		year.PrincipalPaid += principal
		if month%12 == 0 || month == months || balance == 0 {
			year.Year = (month + 11) / 12
			year.EndBalance = round2(balance)
			year.InterestPaid = round2(year.InterestPaid)
			year.PrincipalPaid = round2(year.PrincipalPaid)
			schedule.Years = append(schedule.Years, year)
			year = domain.AmortizationYear{}
		}
		if balance == 0 {
			break
		}
	}

	schedule.TotalPaid = round2(schedule.TotalPaid)
	schedule.TotalInterest = round2(schedule.TotalInterest)
	return schedule
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
