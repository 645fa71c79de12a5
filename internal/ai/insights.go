package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/chamados/dashboard/internal/models"
)

type InsightMode string

const (
	ModeSummary InsightMode = "summary"
	ModeTickets InsightMode = "tickets"

	DefaultSampleLimit = 50
)

// Insight is a generated report in Markdown with its rendered HTML.
type Insight struct {
	Mode        InsightMode `json:"mode"`
	Markdown    string      `json:"markdown"`
	HTML        string      `json:"html"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// InsightWriter asks an Assistant for a pt-BR support operations report.
type InsightWriter struct {
	Assistant   Assistant
	SampleLimit int
	Markdown    goldmark.Markdown
}

func NewInsightWriter(a Assistant, sampleLimit int) *InsightWriter {
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}
	return &InsightWriter{Assistant: a, SampleLimit: sampleLimit, Markdown: goldmark.New()}
}

// Write builds the prompt for mode and renders the answer. In tickets mode at
// most limit tickets (capped by SampleLimit) are sent.
func (w *InsightWriter) Write(ctx context.Context, mode InsightMode, res models.AnalysisResult, tickets []models.Ticket, limit int) (Insight, error) {
	if w.Assistant == nil {
		return Insight{}, ErrNotConfigured
	}
	var prompt string
	switch mode {
	case ModeSummary, "":
		mode = ModeSummary
		prompt = SummaryPrompt(res)
	case ModeTickets:
		if limit <= 0 || limit > w.SampleLimit {
			limit = w.SampleLimit
		}
		if limit > len(tickets) {
			limit = len(tickets)
		}
		p, err := TicketsPrompt(res, tickets[:limit])
		if err != nil {
			return Insight{}, err
		}
		prompt = p
	default:
		return Insight{}, fmt.Errorf("unknown insight mode %q", mode)
	}

	answer, err := w.Assistant.Ask(ctx, prompt, nil)
	if err != nil {
		return Insight{}, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Insight{}, ErrEmptyResponse
	}

	md := w.Markdown
	if md == nil {
		md = goldmark.New()
	}
	var html bytes.Buffer
	if err := md.Convert([]byte(answer), &html); err != nil {
		return Insight{}, fmt.Errorf("render insight: %w", err)
	}
	return Insight{
		Mode:        mode,
		Markdown:    answer,
		HTML:        html.String(),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

const reportInstructions = `Você é um analista de dados especialista em operações de suporte técnico.
Sua tarefa é analisar dados de chamados de suporte e gerar um relatório conciso e útil em português do Brasil.

O relatório deve ser formatado em Markdown e conter as seguintes seções:
1. **Resumo Geral:** Uma visão geral dos principais indicadores.
2. **Observações Principais:** Destaque 2 a 3 tendências ou pontos de atenção importantes, como um técnico com carga de trabalho muito alta, uma categoria com volume desproporcional ou um tempo de resolução que precisa de atenção.
3. **Recomendações Acionáveis:** Com base nas observações, sugira 1 ou 2 ações práticas para melhorar a eficiência da equipe de suporte.
`

func SummaryPrompt(res models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(reportInstructions)
	b.WriteString("\nAqui estão os dados para sua análise:\n")
	writeFacts(&b, res)
	b.WriteString("\nSeja claro, objetivo e forneça valor real com sua análise.\n")
	return b.String()
}

// TicketsPrompt adds the given tickets, one JSON object per line, after the
// summary facts.
func TicketsPrompt(res models.AnalysisResult, tickets []models.Ticket) (string, error) {
	var b strings.Builder
	b.WriteString(reportInstructions)
	b.WriteString("\nIndicadores consolidados:\n")
	writeFacts(&b, res)
	fmt.Fprintf(&b, "\nAmostra de %d chamados (um objeto JSON por linha):\n", len(tickets))
	for _, t := range tickets {
		line, err := json.Marshal(t)
		if err != nil {
			return "", fmt.Errorf("marshal ticket %s: %w", t.ID, err)
		}
		b.Write(line)
		b.WriteString("\n")
	}
	b.WriteString("\nUse a amostra para identificar padrões que os indicadores sozinhos não mostram.\n")
	return b.String(), nil
}

func writeFacts(b *strings.Builder, res models.AnalysisResult) {
	fmt.Fprintf(b, "- **Total de Chamados:** %d\n", res.Total)
	fmt.Fprintf(b, "- **Chamados Abertos:** %d\n", res.Open)
	fmt.Fprintf(b, "- **Chamados Encerrados:** %d\n", res.Closed)
	fmt.Fprintf(b, "- **Tempo Médio de Resolução:** %s\n", orNA(res.AvgResolutionHours, "%.1f horas"))
	fmt.Fprintf(b, "- **Satisfação Média do Cliente:** %s\n", orNA(res.AvgSatisfaction, "%.1f de 5"))
	if res.TopTechnician != nil {
		fmt.Fprintf(b, "- **Técnico Mais Produtivo:** %s com %d chamados\n", res.TopTechnician.Name, res.TopTechnician.Count)
	} else {
		b.WriteString("- **Técnico Mais Produtivo:** N/A\n")
	}
	fmt.Fprintf(b, "- **Distribuição de Chamados por Técnico:** %s\n", seriesJSON(res.TechnicianSeries))
	fmt.Fprintf(b, "- **Distribuição de Chamados por Categoria:** %s\n", seriesJSON(res.CategorySeries))
}

func orNA(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

// seriesJSON renders a series as a JSON object in series order.
func seriesJSON(series []models.SeriesEntry) string {
	var b strings.Builder
	b.WriteString("{")
	for i, e := range series {
		if i > 0 {
			b.WriteString(",")
		}
		name, _ := json.Marshal(e.Name)
		b.Write(name)
		fmt.Fprintf(&b, ":%d", e.Value)
	}
	b.WriteString("}")
	return b.String()
}
