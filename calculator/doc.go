// Package calculator implements the mortgage and investment-return engines
// behind the public calculators.
//
// ComputeMortgage and ComputeRoi are pure functions of their input: they hold
// no state, do no I/O and never return an error. Degenerate inputs produce
// zeros rather than NaN or Inf wherever a divisor can reach zero. Range
// checks belong to the caller (see service.CalculatorService).
//
// MortgageSession and RoiSession model an interactive form: callers mutate
// one field at a time and read the metrics back, which are recomputed only
// when the input actually changed.
package calculator
