package calculator

import (
	"fmt"

	"realty-agent/domain"
)

// Field names one numeric input of a calculator form.
type Field string

const (
	FieldPropertyPrice             Field = "propertyPrice"
	FieldDownPaymentPercent        Field = "downPaymentPercent"
	FieldInterestRatePercent       Field = "interestRatePercent"
	FieldLoanTermYears             Field = "loanTermYears"
	FieldClosingCostsPercent       Field = "closingCostsPercent"
	FieldMonthlyRentalIncome       Field = "monthlyRentalIncome"
	FieldMonthlyExpenses           Field = "monthlyExpenses"
	FieldVacancyRatePercent        Field = "vacancyRatePercent"
	FieldAnnualAppreciationPercent Field = "annualAppreciationPercent"
)

// IsRoi reports whether f is an input of the ROI form. Every mortgage
// field is one too.
func (f Field) IsRoi() bool {
	switch f {
	case FieldPropertyPrice, FieldDownPaymentPercent, FieldInterestRatePercent, FieldLoanTermYears,
		FieldClosingCostsPercent, FieldMonthlyRentalIncome, FieldMonthlyExpenses,
		FieldVacancyRatePercent, FieldAnnualAppreciationPercent:
		return true
	}
	return false
}

// UnknownFieldError is returned by Apply for a field the form does not have.
type UnknownFieldError struct {
	Field Field
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("campo desconocido: %q", string(e.Field))
}

// MortgageSession holds the editable state of a mortgage form and memoizes
// its metrics. The zero value is not usable; call NewMortgageSession.
// A session is not safe for concurrent use.
type MortgageSession struct {
	input domain.MortgageInput

	memoInput domain.MortgageInput
	memo      domain.MortgageMetrics
	memoValid bool
}

func NewMortgageSession(input domain.MortgageInput) *MortgageSession {
	return &MortgageSession{input: input}
}

func (s *MortgageSession) Input() domain.MortgageInput { return s.input }

func (s *MortgageSession) SetPropertyPrice(v float64)       { s.input.PropertyPrice = v }
func (s *MortgageSession) SetDownPaymentPercent(v float64)  { s.input.DownPaymentPercent = v }
func (s *MortgageSession) SetInterestRatePercent(v float64) { s.input.InterestRatePercent = v }
func (s *MortgageSession) SetLoanTermYears(v int)           { s.input.LoanTermYears = v }

// Apply sets field to value. Loan terms are truncated to whole years.
func (s *MortgageSession) Apply(field Field, value float64) error {
	return applyMortgageField(&s.input, field, value)
}

// Metrics returns the metrics for the current input, recomputing only if
// any field changed since the last call.
func (s *MortgageSession) Metrics() domain.MortgageMetrics {
	if !s.memoValid || s.memoInput != s.input {
		s.memo = ComputeMortgage(s.input)
		s.memoInput = s.input
		s.memoValid = true
	}
	return s.memo
}

// RoiSession is the ROI counterpart of MortgageSession.
type RoiSession struct {
	input domain.RoiInput

	memoInput domain.RoiInput
	memo      domain.RoiMetrics
	memoValid bool
}

func NewRoiSession(input domain.RoiInput) *RoiSession {
	return &RoiSession{input: input}
}

func (s *RoiSession) Input() domain.RoiInput { return s.input }

func (s *RoiSession) SetPropertyPrice(v float64)       { s.input.PropertyPrice = v }
func (s *RoiSession) SetDownPaymentPercent(v float64)  { s.input.DownPaymentPercent = v }
func (s *RoiSession) SetInterestRatePercent(v float64) { s.input.InterestRatePercent = v }
func (s *RoiSession) SetLoanTermYears(v int)           { s.input.LoanTermYears = v }
func (s *RoiSession) SetClosingCostsPercent(v float64) { s.input.ClosingCostsPercent = v }
func (s *RoiSession) SetMonthlyRentalIncome(v float64) { s.input.MonthlyRentalIncome = v }
func (s *RoiSession) SetMonthlyExpenses(v float64)     { s.input.MonthlyExpenses = v }
func (s *RoiSession) SetVacancyRatePercent(v float64)  { s.input.VacancyRatePercent = v }
func (s *RoiSession) SetAnnualAppreciationPercent(v float64) {
	s.input.AnnualAppreciationPercent = v
}

func (s *RoiSession) Apply(field Field, value float64) error {
	switch field {
	case FieldClosingCostsPercent:
		s.input.ClosingCostsPercent = value
	case FieldMonthlyRentalIncome:
		s.input.MonthlyRentalIncome = value
	case FieldMonthlyExpenses:
		s.input.MonthlyExpenses = value
	case FieldVacancyRatePercent:
		s.input.VacancyRatePercent = value
	case FieldAnnualAppreciationPercent:
		s.input.AnnualAppreciationPercent = value
	default:
		return applyMortgageField(&s.input.MortgageInput, field, value)
	}
	return nil
}

func (s *RoiSession) Metrics() domain.RoiMetrics {
	if !s.memoValid || s.memoInput != s.input {
		s.memo = ComputeRoi(s.input)
		s.memoInput = s.input
		s.memoValid = true
	}
	return s.memo
}

func applyMortgageField(input *domain.MortgageInput, field Field, value float64) error {
	switch field {
	case FieldPropertyPrice:
		input.PropertyPrice = value
	case FieldDownPaymentPercent:
		input.DownPaymentPercent = value
	case FieldInterestRatePercent:
		input.InterestRatePercent = value
	case FieldLoanTermYears:
		input.LoanTermYears = int(value)
	default:
		return &UnknownFieldError{Field: field}
	}
	return nil
}
