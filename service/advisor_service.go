package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"realty-agent/calculator"
	"realty-agent/domain"
)

type AdvisorConfig struct {
	Enabled bool
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// AdvisorService writes a plain-language explanation of calculator results
// using an OpenAI-compatible chat endpoint. When disabled, or when the call
// fails, it falls back to a fixed template.
type AdvisorService struct {
	client  *resty.Client
	apiURL  string
	model   string
	enabled bool
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const advisorSystemPrompt = "Eres un asesor inmobiliario experto en inversión residencial. " +
	"Explicas hipotecas y rendimientos de renta en español claro, con cifras concretas, " +
	"sin prometer resultados y señalando los riesgos principales."

func NewAdvisorService(cfg AdvisorConfig) *AdvisorService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &AdvisorService{
		client:  client,
		apiURL:  cfg.APIURL,
		model:   cfg.Model,
		enabled: cfg.Enabled && cfg.APIKey != "" && cfg.APIURL != "",
	}
}

func (s *AdvisorService) Enabled() bool { return s.enabled }

// ExplainRoi genera una explicación de los resultados de inversión.
func (s *AdvisorService) ExplainRoi(ctx context.Context, input domain.RoiInput, m domain.RoiMetrics) string {
	if !s.enabled {
		return fallbackRoiExplanation(m)
	}

	last := m.Projections[len(m.Projections)-1]
	prompt := fmt.Sprintf(`Analiza esta inversión inmobiliaria para renta y explica el resultado.

SUPUESTOS:
- Precio: %s, enganche %.1f%%, tasa %.2f%% a %d años
- Gastos de cierre: %.1f%%
- Renta mensual: %s, gastos mensuales: %s, desocupación %.1f%%
- Apreciación anual: %.1f%%

RESULTADOS:
- NOI anual: %s
- Cap rate: %s
- Flujo de efectivo anual: %s
- Cash on cash: %s
- Retorno total año 1: %s
- Valor estimado año %d: %s, plusvalía acumulada (equity): %s

Genera una explicación de 3-4 oraciones: qué tan sólida es la inversión, de dónde viene el rendimiento
(flujo, amortización o plusvalía) y qué supuesto conviene revisar.`,
		calculator.FormatCurrency(input.PropertyPrice), input.DownPaymentPercent,
		input.InterestRatePercent, input.LoanTermYears, input.ClosingCostsPercent,
		calculator.FormatCurrency(input.MonthlyRentalIncome), calculator.FormatCurrency(input.MonthlyExpenses),
		input.VacancyRatePercent, input.AnnualAppreciationPercent,
		calculator.FormatCurrency(m.Noi), calculator.FormatPercent(m.CapRate),
		calculator.FormatCurrency(m.AnnualCashFlow), calculator.FormatPercent(m.CashOnCashReturn),
		calculator.FormatPercent(m.YearOneTotalReturn),
		last.Year, calculator.FormatCurrency(last.PropertyValue), calculator.FormatCurrency(last.Equity))

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		slog.Warn("advisor call failed for roi explanation", "error", err)
		return fallbackRoiExplanation(m)
	}
	return explanation
}

// ExplainTermRecommendation genera una explicación para el plazo recomendado.
func (s *AdvisorService) ExplainTermRecommendation(
	ctx context.Context,
	input domain.TermRecommendationInput,
	top domain.TermRecommendation,
	alternatives []domain.TermRecommendation,
) string {
	if !s.enabled {
		return fallbackTermExplanation(top, input.Preference)
	}

	var alt strings.Builder
	for _, a := range alternatives {
		fmt.Fprintf(&alt, "- %d años: pago %s, intereses %s\n",
			a.TermYears, calculator.FormatCurrency(a.MonthlyPayment), calculator.FormatCurrency(a.TotalInterest))
	}

	prompt := fmt.Sprintf(`Analiza esta recomendación de plazo hipotecario y explícala.

CONTEXTO:
- Precio de la propiedad: %s con enganche de %.1f%%
- Tasa de interés anual: %.2f%%
- Plazo recomendado: %d años
- Pago mensual: %s
- Intereses totales: %s
- Preferencia del usuario: %s

ALTERNATIVAS:
%s
Explica en 3 oraciones por qué este plazo se ajusta a la preferencia y qué se sacrifica frente a las alternativas.`,
		calculator.FormatCurrency(input.PropertyPrice), input.DownPaymentPercent, input.InterestRatePercent,
		top.TermYears, calculator.FormatCurrency(top.MonthlyPayment), calculator.FormatCurrency(top.TotalInterest),
		preferenceText[input.Preference], alt.String())

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		slog.Warn("advisor call failed for term recommendation", "error", err)
		return fallbackTermExplanation(top, input.Preference)
	}
	return explanation
}

func (s *AdvisorService) callLLM(ctx context.Context, prompt string) (string, error) {
	var out chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: s.model,
			Messages: []chatMessage{
				{Role: "system", Content: advisorSystemPrompt},
				{Role: "user", Content: prompt},
			},
			MaxTokens: 300,
		}).
		SetResult(&out).
		Post(s.apiURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", errors.New("no response from AI")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

var preferenceText = map[string]string{
	PreferenceMinimizeInterest: "minimizar el costo total de intereses",
	PreferenceMinimizePayment:  "minimizar el pago mensual",
	PreferenceBalanced:         "balance entre pago mensual y costo total",
}

func fallbackRoiExplanation(m domain.RoiMetrics) string {
	var cashFlow string
	if m.AnnualCashFlow >= 0 {
		cashFlow = fmt.Sprintf("La renta cubre la hipoteca y deja un flujo anual de %s (cash on cash de %s).",
			calculator.FormatCurrency(m.AnnualCashFlow), calculator.FormatPercent(m.CashOnCashReturn))
	} else {
		cashFlow = fmt.Sprintf("La renta no alcanza a cubrir la hipoteca: faltan %s al año, que deberás aportar de tu bolsillo.",
			calculator.FormatCurrency(-m.AnnualCashFlow))
	}

	last := m.Projections[len(m.Projections)-1]
	return fmt.Sprintf("Con un NOI de %s la propiedad rinde un cap rate de %s. %s "+
		"Sumando amortización y plusvalía, el retorno total del primer año es de %s y en %d años tu patrimonio en la propiedad sería de %s.",
		calculator.FormatCurrency(m.Noi), calculator.FormatPercent(m.CapRate), cashFlow,
		calculator.FormatPercent(m.YearOneTotalReturn), last.Year, calculator.FormatCurrency(last.Equity))
}

func fallbackTermExplanation(top domain.TermRecommendation, preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return fmt.Sprintf("Un plazo de %d años minimiza los intereses totales (%s), a cambio de un pago mensual de %s.",
			top.TermYears, calculator.FormatCurrency(top.TotalInterest), calculator.FormatCurrency(top.MonthlyPayment))
	case PreferenceMinimizePayment:
		return fmt.Sprintf("Un plazo de %d años reduce tu pago mensual a %s, lo que deja más margen en tu presupuesto.",
			top.TermYears, calculator.FormatCurrency(top.MonthlyPayment))
	default:
		return fmt.Sprintf("Un plazo de %d años equilibra el pago mensual (%s) con el costo total de intereses (%s).",
			top.TermYears, calculator.FormatCurrency(top.MonthlyPayment), calculator.FormatCurrency(top.TotalInterest))
	}
}
