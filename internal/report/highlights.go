package report

import (
	"fmt"
	"math"

	"github.com/chamados/dashboard/internal/models"
)

// Highlights returns the dashboard's narrative bullets in pt-BR. Each bullet
// is only present when the insight behind it exists.
func Highlights(res models.AnalysisResult) []string {
	out := []string{}
	if res.Total == 0 {
		return out
	}
	if t := res.TopTechnician; t != nil {
		out = append(out, fmt.Sprintf("%s é o técnico mais produtivo, responsável por %d chamados (%s do total).",
			t.Name, t.Count, FormatPercent(t.Count, res.Total)))
	}
	if c := res.TopCategory; c != nil {
		out = append(out, fmt.Sprintf("A categoria %q é a mais comum, correspondendo a %s dos tickets. Isso pode indicar uma área para focar em treinamentos ou melhorias de documentação.",
			c.Name, FormatPercent(c.Count, res.Total)))
	}
	if c := res.SlowestCategory; c != nil {
		out = append(out, fmt.Sprintf("Os chamados de %q são os que levam mais tempo para serem resolvidos, com uma média de %s.",
			c.Name, FormatHours(&c.AvgHours)))
	}
	if t := res.TopSatisfactionTech; t != nil {
		out = append(out, fmt.Sprintf("%s se destaca com a maior média de satisfação do cliente: %.1f de 5.",
			t.Name, t.AvgSatisfaction))
	}
	return out
}

// FormatHours renders a duration in hours as "Xh Ym". Nil and NaN give "N/A".
func FormatHours(hours *float64) string {
	if hours == nil || math.IsNaN(*hours) {
		return "N/A"
	}
	h := math.Floor(*hours)
	m := math.Round((*hours - h) * 60)
	if m == 60 {
		h, m = h+1, 0
	}
	return fmt.Sprintf("%.0fh %.0fm", h, m)
}

// FormatPercent renders num/den as a whole percentage. A zero denominator
// gives "0%".
func FormatPercent(num, den int) string {
	if den == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(num)/float64(den)*100)
}
