package calculator

import "realty-agent/domain"

// ProjectionYears is the length of the ROI projection.
const ProjectionYears = 10

// ComputeRoi returns the year-one investment metrics and a ten-year
// projection of property value, equity and total return.
func ComputeRoi(input domain.RoiInput) domain.RoiMetrics {
	price := input.PropertyPrice

	downPaymentAmount, loanAmount := splitPrice(price, input.DownPaymentPercent)
	closingCosts := price * input.ClosingCostsPercent / 100
	totalCashInvested := downPaymentAmount + closingCosts

	r := monthlyRate(input.InterestRatePercent)
	monthlyMortgage := levelPayment(loanAmount, r, numberOfPayments(input.LoanTermYears))
	annualDebtService := monthlyMortgage * 12

	annualGrossIncome := input.MonthlyRentalIncome * 12
	vacancyLoss := annualGrossIncome * input.VacancyRatePercent / 100
	effectiveGrossIncome := annualGrossIncome - vacancyLoss
	annualExpenses := input.MonthlyExpenses * 12
	noi := effectiveGrossIncome - annualExpenses

	annualCashFlow := noi - annualDebtService

	cashOnCashReturn := 0.0
	if totalCashInvested > 0 {
		cashOnCashReturn = annualCashFlow / totalCashInvested * 100
	}

	capRate := 0.0
	if price > 0 {
		capRate = noi / price * 100
	}

	growth := 1 + input.AnnualAppreciationPercent/100
	projections := make([]domain.YearProjection, 0, ProjectionYears)
	propertyValue := price
	loanBalance := loanAmount

	for year := 1; year <= ProjectionYears; year++ {
		principalPaid := 0.0
		if loanAmount > 0 {
			for month := 1; month <= 12; month++ {
				interestPayment := 0.0
				if r > 0 {
					interestPayment = loanBalance * r
				}
				principal := monthlyMortgage - interestPayment
				// Un préstamo a menos de 10 años queda saldado antes del fin de la proyección.
				if principal > loanBalance {
					principal = loanBalance
				}
				principalPaid += principal
				loanBalance -= principal
			}
		}

		previousValue := propertyValue
		propertyValue *= growth
		appreciationGain := propertyValue - previousValue

		totalReturn := 0.0
		if totalCashInvested > 0 {
			totalReturn = (annualCashFlow + principalPaid + appreciationGain) / totalCashInvested * 100
		}

		projections = append(projections, domain.YearProjection{
			Year:          year,
			PropertyValue: propertyValue,
			Equity:        propertyValue - loanBalance,
			TotalReturn:   totalReturn,
		})
	}

	yearOneTotalReturn := 0.0
	if len(projections) > 0 {
		yearOneTotalReturn = projections[0].TotalReturn
	}

	return domain.RoiMetrics{
		Noi:                noi,
		CapRate:            capRate,
		TotalCashInvested:  totalCashInvested,
		AnnualCashFlow:     annualCashFlow,
		CashOnCashReturn:   cashOnCashReturn,
		YearOneTotalReturn: yearOneTotalReturn,
		Projections:        projections,
	}
}
