package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/chamados/dashboard/internal/utils"
)

// MockAssistant answers offline. The report echoes the data bullet lines of
// the prompt and picks a recommendation from a hash of the prompt, so the
// same prompt always yields the same text.
type MockAssistant struct {
	ModelVersion string
}

var mockRecommendations = []string{
	"Redistribuir a fila entre os técnicos com menor volume de chamados.",
	"Criar artigos de base de conhecimento para a categoria mais frequente.",
	"Revisar o fluxo de aprovação dos chamados que ficam mais tempo abertos.",
	"Acompanhar semanalmente a satisfação por técnico e compartilhar boas práticas.",
}

func (m MockAssistant) Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var facts []string
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			facts = append(facts, line)
		}
	}

	var b strings.Builder
	b.WriteString("## Resumo Geral\n\n")
	if len(facts) == 0 {
		b.WriteString("Não há dados suficientes para um resumo.\n")
	}
	for _, f := range facts {
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("\n## Observações Principais\n\n")
	fmt.Fprintf(&b, "- Relatório gerado em modo offline (%s).\n", m.version())
	b.WriteString("\n## Recomendações Acionáveis\n\n")
	fmt.Fprintf(&b, "1. %s\n", mockRecommendations[utils.StableIndex(prompt, len(mockRecommendations))])
	return b.String(), nil
}

func (m MockAssistant) version() string {
	if m.ModelVersion == "" {
		return "mock"
	}
	return m.ModelVersion
}
