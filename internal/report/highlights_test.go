package report

import (
	"math"
	"strings"
	"testing"

	"github.com/chamados/dashboard/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestFormatHours(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{nil, "N/A"},
		{fptr(math.NaN()), "N/A"},
		{fptr(0), "0h 0m"},
		{fptr(36), "36h 0m"},
		{fptr(1.5), "1h 30m"},
		{fptr(2.9999), "3h 0m"},
	}
	for _, c := range cases {
		if got := FormatHours(c.in); got != c.want {
			t.Fatalf("FormatHours(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(1, 3); got != "33%" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPercent(2, 3); got != "67%" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPercent(5, 0); got != "0%" {
		t.Fatalf("got %q", got)
	}
}

func TestHighlights(t *testing.T) {
	res := models.AnalysisResult{
		Total:               4,
		TopTechnician:       &models.NamedCount{Name: "Bruno", Count: 2},
		TopCategory:         &models.NamedCount{Name: "Rede", Count: 1},
		SlowestCategory:     &models.CategoryDuration{Name: "Rede", AvgHours: 48.25},
		TopSatisfactionTech: &models.TechnicianSatisfaction{Name: "Ana", AvgSatisfaction: 4.5},
	}
	got := Highlights(res)
	if len(got) != 4 {
		t.Fatalf("expected 4 highlights, got %d: %v", len(got), got)
	}
	checks := []string{"Bruno", "(50% do total)", `"Rede"`, "48h 15m", "4.5 de 5"}
	joined := strings.Join(got, "\n")
	for _, c := range checks {
		if !strings.Contains(joined, c) {
			t.Fatalf("expected %q in highlights:\n%s", c, joined)
		}
	}
}

func TestHighlightsSkipsMissingInsights(t *testing.T) {
	got := Highlights(models.AnalysisResult{Total: 2, TopTechnician: &models.NamedCount{Name: "Ana", Count: 2}})
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %v", got)
	}
	if got := Highlights(models.AnalysisResult{}); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
