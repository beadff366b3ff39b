package calculator

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"realty-agent/domain"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders v as US dollars with thousands separators and two
// decimals, e.g. "$1,596.73" or "-$250.00".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + printer.Sprintf("%.2f", -v)
	}
	return "$" + printer.Sprintf("%.2f", v)
}

// FormatPercent renders v with two decimals and a trailing percent sign,
// without grouping.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

type FormattedMortgage struct {
	MonthlyPayment    string `json:"monthlyPayment"`
	LoanAmount        string `json:"loanAmount"`
	DownPaymentAmount string `json:"downPaymentAmount"`
}

func FormatMortgage(m domain.MortgageMetrics) FormattedMortgage {
	return FormattedMortgage{
		MonthlyPayment:    FormatCurrency(m.MonthlyPayment),
		LoanAmount:        FormatCurrency(m.LoanAmount),
		DownPaymentAmount: FormatCurrency(m.DownPaymentAmount),
	}
}

type FormattedProjection struct {
	Year          int    `json:"year"`
	PropertyValue string `json:"propertyValue"`
	Equity        string `json:"equity"`
	TotalReturn   string `json:"totalReturn"`
}

type FormattedRoi struct {
	Noi                string                `json:"noi"`
	CapRate            string                `json:"capRate"`
	TotalCashInvested  string                `json:"totalCashInvested"`
	AnnualCashFlow     string                `json:"annualCashFlow"`
	CashOnCashReturn   string                `json:"cashOnCashReturn"`
	YearOneTotalReturn string                `json:"yearOneTotalReturn"`
	Projections        []FormattedProjection `json:"projections"`
}

func FormatRoi(m domain.RoiMetrics) FormattedRoi {
	out := FormattedRoi{
		Noi:                FormatCurrency(m.Noi),
		CapRate:            FormatPercent(m.CapRate),
		TotalCashInvested:  FormatCurrency(m.TotalCashInvested),
		AnnualCashFlow:     FormatCurrency(m.AnnualCashFlow),
		CashOnCashReturn:   FormatPercent(m.CashOnCashReturn),
		YearOneTotalReturn: FormatPercent(m.YearOneTotalReturn),
		Projections:        make([]FormattedProjection, 0, len(m.Projections)),
	}
	for _, p := range m.Projections {
		out.Projections = append(out.Projections, FormattedProjection{
			Year:          p.Year,
			PropertyValue: FormatCurrency(p.PropertyValue),
			Equity:        FormatCurrency(p.Equity),
			TotalReturn:   FormatPercent(p.TotalReturn),
		})
	}
	return out
}
