package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultGeminiModel   = "gemini-2.5-flash"
)

// GeminiAssistant calls the generateContent REST endpoint. With JSONMode set
// the model is asked for an application/json response.
type GeminiAssistant struct {
	BaseURL         string
	Model           string
	APIKey          string
	JSONMode        bool
	Temperature     float64
	MaxOutputTokens int
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (g GeminiAssistant) Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error) {
	if strings.TrimSpace(g.APIKey) == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrNotConfigured)
	}
	model := g.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	base := g.BaseURL
	if base == "" {
		base = DefaultGeminiBaseURL
	}

	scope := fmt.Sprintf("gemini|%s|%s|%t", base, model, g.JSONMode)
	key := cacheKey(scope, prompt, history)
	if v, ok := cacheGet(key); ok {
		return v, nil
	}

	body := geminiRequest{Contents: make([]geminiContent, 0, len(history)+1)}
	for _, h := range history {
		role := "user"
		if h.Role == "assistant" || h.Role == "model" {
			role = "model"
		}
		body.Contents = append(body.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: h.Content}}})
	}
	body.Contents = append(body.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: prompt}}})
	if g.JSONMode || g.Temperature > 0 || g.MaxOutputTokens > 0 {
		body.GenerationConfig = &geminiGenerationConfig{
			Temperature:     g.Temperature,
			MaxOutputTokens: g.MaxOutputTokens,
		}
		if g.JSONMode {
			body.GenerationConfig.ResponseMimeType = "application/json"
		}
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}
	url := fmt.Sprintf("%s/%s:generateContent", strings.TrimRight(base, "/"), model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	resp, err := httpClient(ctx, 120*time.Second).Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var errBody map[string]any
		_ = json.Unmarshal(raw, &errBody)
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", rateLimit(resp, errBody)
		}
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var res geminiResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if res.Error != nil {
		return "", fmt.Errorf("gemini api error: %s", res.Error.Message)
	}
	if len(res.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	var out strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	answer := out.String()
	if strings.TrimSpace(answer) == "" {
		return "", ErrEmptyResponse
	}
	cacheSet(key, answer)
	return answer, nil
}
