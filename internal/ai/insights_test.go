package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chamados/dashboard/internal/models"
)

type mockAssistant struct {
	mock.Mock
}

func (m *mockAssistant) Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error) {
	args := m.Called(ctx, prompt, history)
	return args.String(0), args.Error(1)
}

func sampleResult() models.AnalysisResult {
	avg := 36.0
	return models.AnalysisResult{
		Total:              3,
		Open:               1,
		Closed:             2,
		AvgResolutionHours: &avg,
		TopTechnician:      &models.NamedCount{Name: "Bruno", Count: 2},
		TechnicianSeries:   []models.SeriesEntry{{Name: "Bruno", Value: 2}, {Name: "Ana", Value: 1}},
		CategorySeries:     []models.SeriesEntry{{Name: "Rede", Value: 3}},
		StatusSummary:      []models.StatusSummary{},
	}
}

func TestSummaryPrompt(t *testing.T) {
	p := SummaryPrompt(sampleResult())
	assert.Contains(t, p, "- **Total de Chamados:** 3")
	assert.Contains(t, p, "- **Tempo Médio de Resolução:** 36.0 horas")
	assert.Contains(t, p, "- **Satisfação Média do Cliente:** N/A")
	assert.Contains(t, p, "Bruno com 2 chamados")
	assert.Contains(t, p, `{"Bruno":2,"Ana":1}`)
}

func TestInsightWriterSummary(t *testing.T) {
	m := new(mockAssistant)
	m.On("Ask", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Total de Chamados:** 3")
	}), mock.Anything).Return("## Resumo Geral\n\nTudo **ok**.", nil)

	w := NewInsightWriter(m, 10)
	got, err := w.Write(context.Background(), ModeSummary, sampleResult(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, ModeSummary, got.Mode)
	assert.Contains(t, got.HTML, "<h2>Resumo Geral</h2>")
	assert.Contains(t, got.HTML, "<strong>ok</strong>")
	assert.False(t, got.GeneratedAt.IsZero())
	m.AssertExpectations(t)
}

func TestInsightWriterTicketsCapsSample(t *testing.T) {
	tickets := []models.Ticket{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	m := new(mockAssistant)
	m.On("Ask", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Amostra de 2 chamados") &&
			strings.Contains(p, `"id":"2"`) &&
			!strings.Contains(p, `"id":"3"`)
	}), mock.Anything).Return("ok", nil)

	w := NewInsightWriter(m, 2)
	_, err := w.Write(context.Background(), ModeTickets, sampleResult(), tickets, 50)
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestInsightWriterPropagatesErrors(t *testing.T) {
	m := new(mockAssistant)
	m.On("Ask", mock.Anything, mock.Anything, mock.Anything).Return("", RateLimitError{})

	_, err := NewInsightWriter(m, 0).Write(context.Background(), ModeSummary, sampleResult(), nil, 0)
	var rl RateLimitError
	assert.True(t, errors.As(err, &rl))
}

func TestInsightWriterRejectsUnknownMode(t *testing.T) {
	_, err := NewInsightWriter(MockAssistant{}, 0).Write(context.Background(), "poem", sampleResult(), nil, 0)
	assert.Error(t, err)
}

func TestTicketStructurer(t *testing.T) {
	m := new(mockAssistant)
	m.On("Ask", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "CH-1 Ana Rede Fechado")
	}), mock.Anything).Return("```json\n[{\"id\":\"CH-1\",\"tecnico\":\"Ana\",\"satisfacao\":5},{\"id\":\"CH-2\",\"satisfacao\":null}]\n```", nil)

	rows, err := TicketStructurer{Assistant: m}.StructureTickets(context.Background(), "CH-1 Ana Rede Fechado")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0].Key)
	v, ok := rows[1].Get("satisfacao")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestTicketStructurerRejectsProse(t *testing.T) {
	m := new(mockAssistant)
	m.On("Ask", mock.Anything, mock.Anything, mock.Anything).Return("Não encontrei chamados.", nil)

	_, err := TicketStructurer{Assistant: m}.StructureTickets(context.Background(), "texto")
	assert.Error(t, err)
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "Não", truncateUTF8("Não funciona", 4))
	assert.Equal(t, "N", truncateUTF8("Não", 2))
}
