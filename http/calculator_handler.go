package http

import (
	"net/http"
	"strconv"

	"realty-agent/calculator"
	"realty-agent/domain"
	"realty-agent/service"
)

type mortgageResponse struct {
	Input     domain.MortgageInput         `json:"input"`
	Result    domain.MortgageMetrics       `json:"result"`
	Formatted calculator.FormattedMortgage `json:"formatted"`
}

type roiResponse struct {
	Input       domain.RoiInput         `json:"input"`
	Result      domain.RoiMetrics       `json:"result"`
	Formatted   calculator.FormattedRoi `json:"formatted"`
	Explanation string                  `json:"explanation,omitempty"`
}

type defaultsResponse struct {
	Mortgage domain.MortgageInput `json:"mortgage"`
	Roi      domain.RoiInput      `json:"roi"`
}

type CalculatorHandler struct {
	calculator   *service.CalculatorService
	terms        *service.TermRecommendationService
	amortization *service.AmortizationService
	advisor      *service.AdvisorService
}

func NewCalculatorHandler(
	calculator *service.CalculatorService,
	terms *service.TermRecommendationService,
	amortization *service.AmortizationService,
	advisor *service.AdvisorService,
) *CalculatorHandler {
	return &CalculatorHandler{
		calculator:   calculator,
		terms:        terms,
		amortization: amortization,
		advisor:      advisor,
	}
}

func (h *CalculatorHandler) CalculateMortgage(w http.ResponseWriter, r *http.Request) {
	var input domain.MortgageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.calculator.CalculateMortgage(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mortgageResponse{
		Input:     input,
		Result:    result,
		Formatted: calculator.FormatMortgage(result),
	})
}

// CalculateRoi returns the investment metrics. With ?explain=true the
// response also carries the advisor's narrative.
func (h *CalculatorHandler) CalculateRoi(w http.ResponseWriter, r *http.Request) {
	var input domain.RoiInput
	if !decodeJSON(w, r, &input) {
		return
	}
	h.respondRoi(w, r, input)
}

func (h *CalculatorHandler) respondRoi(w http.ResponseWriter, r *http.Request, input domain.RoiInput) {
	result, err := h.calculator.CalculateRoi(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := roiResponse{
		Input:     input,
		Result:    result,
		Formatted: calculator.FormatRoi(result),
	}
	if explain, _ := strconv.ParseBool(r.URL.Query().Get("explain")); explain && h.advisor != nil {
		resp.Explanation = h.advisor.ExplainRoi(r.Context(), input, result)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Defaults returns the starting form values for a listing price.
func (h *CalculatorHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	price, err := strconv.ParseFloat(r.URL.Query().Get("price"), 64)
	if err != nil || price < 0 {
		writeError(w, http.StatusBadRequest, "parámetro price inválido")
		return
	}

	writeJSON(w, http.StatusOK, defaultsResponse{
		Mortgage: service.DefaultMortgageInput(price),
		Roi:      service.DefaultRoiInput(price),
	})
}

func (h *CalculatorHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var input domain.TermRecommendationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.terms.RecommendTerm(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CalculatorHandler) Amortization(w http.ResponseWriter, r *http.Request) {
	var input domain.MortgageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	schedule, err := h.amortization.Schedule(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}
