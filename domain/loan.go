package domain

// MortgageInput holds the parameters of a level-payment mortgage.
type MortgageInput struct {
	PropertyPrice       float64 `json:"propertyPrice"`
	DownPaymentPercent  float64 `json:"downPaymentPercent"`
	InterestRatePercent float64 `json:"interestRatePercent"`
	LoanTermYears       int     `json:"loanTermYears"`
}

type MortgageMetrics struct {
	MonthlyPayment    float64 `json:"monthlyPayment"`
	LoanAmount        float64 `json:"loanAmount"`
	DownPaymentAmount float64 `json:"downPaymentAmount"`
}

// RoiInput extends the mortgage parameters with rental and market assumptions.
type RoiInput struct {
	MortgageInput

	ClosingCostsPercent       float64 `json:"closingCostsPercent"`
	MonthlyRentalIncome       float64 `json:"monthlyRentalIncome"`
	MonthlyExpenses           float64 `json:"monthlyExpenses"` // impuestos, seguro, mantenimiento
	VacancyRatePercent        float64 `json:"vacancyRatePercent"`
	AnnualAppreciationPercent float64 `json:"annualAppreciationPercent"`
}

type YearProjection struct {
	Year          int     `json:"year"`
	PropertyValue float64 `json:"propertyValue"`
	Equity        float64 `json:"equity"`
	TotalReturn   float64 `json:"totalReturn"`
}

type RoiMetrics struct {
	Noi                float64          `json:"noi"`
	CapRate            float64          `json:"capRate"`
	TotalCashInvested  float64          `json:"totalCashInvested"`
	AnnualCashFlow     float64          `json:"annualCashFlow"`
	CashOnCashReturn   float64          `json:"cashOnCashReturn"`
	YearOneTotalReturn float64          `json:"yearOneTotalReturn"`
	Projections        []YearProjection `json:"projections"`
}
