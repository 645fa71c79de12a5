package httpapi

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/chamados/dashboard/internal/ai"
	"github.com/chamados/dashboard/internal/analytics"
	"github.com/chamados/dashboard/internal/config"
	"github.com/chamados/dashboard/internal/http/handlers"
	"github.com/chamados/dashboard/internal/http/middleware"
	"github.com/chamados/dashboard/internal/ingest"
	"github.com/chamados/dashboard/internal/session"

	_ "github.com/chamados/dashboard/docs"
)

// Deps are the collaborators the router wires into the handlers.
type Deps struct {
	Sessions *session.Store
	Engine   *analytics.Engine
	Decoder  *ingest.Decoder
	Insights *ai.InsightWriter
}

func Router(cfg config.Config, deps Deps, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.APIKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" || cfg.CORSAllowed == "" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		for _, o := range strings.Split(cfg.CORSAllowed, ",") {
			if o = strings.TrimSpace(o); o != "" {
				corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, o)
			}
		}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Sessions:       deps.Sessions,
		Engine:         deps.Engine,
		Decoder:        deps.Decoder,
		InsightWriter:  deps.Insights,
		Validator:      validator.New(),
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		MaxUploadBytes: cfg.MaxUploadSizeMB << 20,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/sample.csv", h.SampleCSV)
		api.POST("/sample", h.LoadSample)
		api.POST("/upload", h.Upload)
		api.GET("/analysis", h.Analysis)
		api.GET("/tickets", h.Tickets)
		api.GET("/highlights", h.Highlights)
		api.DELETE("/session", h.ClearSession)
	}

	protected := api.Group("")
	protected.Use(middleware.APIKey(cfg.APIKey))
	{
		protected.POST("/insights", h.Insights)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
