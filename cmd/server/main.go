package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chamados/dashboard/internal/ai"
	"github.com/chamados/dashboard/internal/analytics"
	"github.com/chamados/dashboard/internal/config"
	httpapi "github.com/chamados/dashboard/internal/http"
	"github.com/chamados/dashboard/internal/ingest"
	"github.com/chamados/dashboard/internal/session"
)

// pdfTextLimit keeps structuring prompts within model context limits.
const pdfTextLimit = 200_000

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "chamados-dashboard").Logger()
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := analytics.DefaultOptions()
	opts.TechnicianCap = cfg.ChartMaxTechnicians
	opts.CategoryCap = cfg.ChartMaxCategories
	engine := analytics.New(opts)

	text, structured := assistants(cfg)
	logger.Info().Str("provider", cfg.AIProvider).Msg("AI provider configured")

	decoder := &ingest.Decoder{}
	if structured != nil {
		decoder.Structurer = ai.TicketStructurer{Assistant: structured, MaxChars: pdfTextLimit}
	} else {
		logger.Info().Msg("PDF import disabled with the mock AI provider")
	}

	sessions := session.NewStore()
	if cfg.LoadSample {
		rows, err := ingest.SampleRecords()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to decode sample dataset")
		}
		ds := sessions.Replace(ingest.SampleName, engine.Analyze(rows))
		logger.Info().Str("dataset_id", ds.ID).Int("tickets", ds.Result.Total).Msg("sample dataset loaded")
	}

	router := httpapi.Router(cfg, httpapi.Deps{
		Sessions: sessions,
		Engine:   engine,
		Decoder:  decoder,
		Insights: ai.NewInsightWriter(text, cfg.AISampleLimit),
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("server stopped")
}

// assistants returns the text assistant for reports and the one used to
// structure PDF text. The second is nil when PDF import is unavailable.
func assistants(cfg config.Config) (ai.Assistant, ai.Assistant) {
	switch cfg.AIProvider {
	case config.ProviderGemini:
		g := ai.GeminiAssistant{
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			APIKey:  cfg.GeminiAPIKey,
		}
		structured := g
		structured.JSONMode = true
		return g, structured
	case config.ProviderOpenAI:
		a := ai.OpenAICompatAssistant{
			BaseURL:   cfg.AssistantBaseURL,
			Model:     cfg.AssistantModel,
			APIKey:    cfg.AssistantAPIKey,
			MaxTokens: cfg.AssistantMaxTokens,
		}
		return a, a
	default:
		return ai.MockAssistant{ModelVersion: "mock-v1"}, nil
	}
}
