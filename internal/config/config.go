package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	APIKey          string        `mapstructure:"API_KEY"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	MaxUploadSizeMB int64         `mapstructure:"MAX_UPLOAD_MB"`
	LoadSample      bool          `mapstructure:"LOAD_SAMPLE"`

	AIProvider         string `mapstructure:"AI_PROVIDER"`
	AISampleLimit      int    `mapstructure:"AI_SAMPLE_LIMIT"`
	GeminiAPIKey       string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel        string `mapstructure:"GEMINI_MODEL"`
	GeminiBaseURL      string `mapstructure:"GEMINI_BASE_URL"`
	AssistantBaseURL   string `mapstructure:"ASSISTANT_BASE_URL"`
	AssistantModel     string `mapstructure:"ASSISTANT_MODEL"`
	AssistantAPIKey    string `mapstructure:"ASSISTANT_API_KEY"`
	AssistantMaxTokens int    `mapstructure:"ASSISTANT_MAX_TOKENS"`

	ChartMaxTechnicians int `mapstructure:"CHART_MAX_TECHNICIANS"`
	ChartMaxCategories  int `mapstructure:"CHART_MAX_CATEGORIES"`
}

const (
	ProviderMock   = "mock"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var keys = []string{
	"ENV", "PORT", "API_KEY", "CORS_ALLOWED_ORIGINS", "REQUEST_TIMEOUT", "LOG_LEVEL",
	"MAX_UPLOAD_MB", "LOAD_SAMPLE", "AI_PROVIDER", "AI_SAMPLE_LIMIT", "GEMINI_API_KEY",
	"GEMINI_MODEL", "GEMINI_BASE_URL", "ASSISTANT_BASE_URL", "ASSISTANT_MODEL",
	"ASSISTANT_API_KEY", "ASSISTANT_MAX_TOKENS", "CHART_MAX_TECHNICIANS",
	"CHART_MAX_CATEGORIES",
}

// Load reads .env (when present) and the environment. Environment variables
// win over the file.
func Load() (Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	// AutomaticEnv only covers keys viper already knows about.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 20)
	v.SetDefault("LOAD_SAMPLE", true)
	v.SetDefault("AI_PROVIDER", ProviderMock)
	v.SetDefault("AI_SAMPLE_LIMIT", 50)
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("ASSISTANT_MAX_TOKENS", 1024)
	v.SetDefault("CHART_MAX_TECHNICIANS", 10)
	v.SetDefault("CHART_MAX_CATEGORIES", 5)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.AIProvider {
	case ProviderMock, ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("AI_PROVIDER must be one of mock, gemini, openai, got %q", c.AIProvider)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadSizeMB)
	}
	if c.ChartMaxTechnicians < 1 || c.ChartMaxCategories < 1 {
		return fmt.Errorf("chart caps must be at least 1")
	}
	return nil
}
