package domain

type AmortizationRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

type AmortizationYear struct {
	Year          int     `json:"year"`
	InterestPaid  float64 `json:"interestPaid"`
	PrincipalPaid float64 `json:"principalPaid"`
	EndBalance    float64 `json:"endBalance"`
}

type AmortizationSchedule struct {
	MortgageMetrics
	TotalPaid     float64            `json:"totalPaid"`
	TotalInterest float64            `json:"totalInterest"`
	Months        []AmortizationRow  `json:"months"`
	Years         []AmortizationYear `json:"years"`
}
