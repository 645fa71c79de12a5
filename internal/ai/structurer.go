package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/chamados/dashboard/internal/ingest"
	"github.com/chamados/dashboard/internal/models"
)

// TicketStructurer turns the text of a PDF report into ticket rows.
type TicketStructurer struct {
	Assistant Assistant
	// MaxChars truncates very long documents before they are sent.
	MaxChars int
}

var _ ingest.Structurer = TicketStructurer{}

const structurePrompt = `Você é um especialista em extração de dados. Analise o seguinte texto, extraído de um relatório de chamados de suporte em PDF. Sua tarefa é converter este texto não estruturado em um array JSON de objetos, onde cada objeto representa um único chamado de suporte.

Siga estas regras estritamente:
1. Mapeie as informações para as seguintes chaves: "id", "tecnico", "categoria", "status", "data_abertura", "data_fechamento", "satisfacao".
2. Datas devem estar no formato "YYYY-MM-DD". Se a data não estiver completa, tente inferir o ano atual, mas priorize o que está no texto.
3. Se um campo (especialmente data_fechamento ou satisfacao) não for encontrado para um chamado, use o valor nulo (null).
4. O campo "satisfacao" deve ser um número, não uma string.
5. A resposta DEVE ser apenas o array JSON, sem nenhum texto, explicação ou formatação de markdown adicional.

Texto extraído do PDF:
---
%s
---
`

func (s TicketStructurer) StructureTickets(ctx context.Context, text string) ([]models.RawRecord, error) {
	if s.Assistant == nil {
		return nil, ErrNotConfigured
	}
	if s.MaxChars > 0 && len(text) > s.MaxChars {
		text = truncateUTF8(text, s.MaxChars)
	}
	answer, err := s.Assistant.Ask(ctx, fmt.Sprintf(structurePrompt, text), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyResponse
	}
	rows, err := ingest.DecodeJSONArray(answer)
	if err != nil {
		return nil, fmt.Errorf("structure pdf tickets: %w", err)
	}
	return rows, nil
}

func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
