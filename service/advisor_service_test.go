package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"realty-agent/calculator"
)

func TestExplainRoi_CallsChatEndpoint(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Buena inversión.  "}}]}`))
	}))
	defer server.Close()

	advisor := NewAdvisorService(AdvisorConfig{
		Enabled: true,
		APIKey:  "test-key",
		APIURL:  server.URL,
		Model:   "test-model",
	})
	input := DefaultRoiInput(250000)

	text := advisor.ExplainRoi(context.Background(), input, calculator.ComputeRoi(input))

	if text != "Buena inversión." {
		t.Errorf("unexpected explanation: %q", text)
	}
	if got.Model != "test-model" || len(got.Messages) != 2 {
		t.Errorf("unexpected request: %+v", got)
	}
	if !strings.Contains(got.Messages[1].Content, "$250,000.00") {
		t.Errorf("prompt is missing the formatted price: %s", got.Messages[1].Content)
	}
}

func TestExplainRoi_FallbackOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	advisor := NewAdvisorService(AdvisorConfig{Enabled: true, APIKey: "k", APIURL: server.URL})
	input := DefaultRoiInput(250000)
	metrics := calculator.ComputeRoi(input)

	text := advisor.ExplainRoi(context.Background(), input, metrics)

	if text != fallbackRoiExplanation(metrics) {
		t.Errorf("expected fallback explanation, got %q", text)
	}
}

func TestAdvisor_DisabledWithoutKey(t *testing.T) {
	advisor := NewAdvisorService(AdvisorConfig{Enabled: true, APIURL: "http://127.0.0.1:1"})

	if advisor.Enabled() {
		t.Fatal("expected advisor to be disabled without an API key")
	}
}

func TestFallbackRoiExplanation_NegativeCashFlow(t *testing.T) {
	input := DefaultRoiInput(250000)
	input.MonthlyRentalIncome = 500

	text := fallbackRoiExplanation(calculator.ComputeRoi(input))

	if !strings.Contains(text, "no alcanza") {
		t.Errorf("expected negative cash flow wording, got %q", text)
	}
}
