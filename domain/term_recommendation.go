package domain

type TermRecommendationInput struct {
	PropertyPrice       float64 `json:"propertyPrice"`
	DownPaymentPercent  float64 `json:"downPaymentPercent"`
	InterestRatePercent float64 `json:"interestRatePercent"`
	MinTermYears        int     `json:"minTermYears"`
	MaxTermYears        int     `json:"maxTermYears"`
	MaxMonthlyPayment   float64 `json:"maxMonthlyPayment"`
	Preference          string  `json:"preference"` // "minimize_interest", "minimize_payment", "balanced"
}

type TermRecommendation struct {
	TermYears      int     `json:"termYears"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTerm int                  `json:"recommendedTerm"`
	Recommendations []TermRecommendation `json:"recommendations"`
}
