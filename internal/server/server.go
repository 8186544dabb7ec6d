package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/suffixctl/internal/attribution"
	"github.com/danmuck/suffixctl/internal/auth"
	"github.com/danmuck/suffixctl/internal/config"
	"github.com/danmuck/suffixctl/internal/indexer"
	"github.com/danmuck/suffixctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const Version = "0.1.0"

// Server exposes the attribution codec, the mint call builder and the app
// manifest over HTTP.
type Server struct {
	cfg        config.AppConfig
	attributor *attribution.Attributor
	tally      *indexer.Tally
	webhook    auth.Validator
	logger     zerolog.Logger
	started    time.Time

	router *gin.Engine
	http   *http.Server
}

func New(cfg config.AppConfig, attributor *attribution.Attributor, logger zerolog.Logger) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		cfg:        cfg,
		attributor: attributor,
		tally:      &indexer.Tally{},
		webhook:    auth.ForWebhook(cfg.WebhookToken),
		logger:     logger,
		started:    time.Now(),
		router:     r,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.registerRoutes()
	return s
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) Tally() *indexer.Tally {
	return s.tally
}

// Serve blocks until the listener fails or Shutdown is called.
func (s *Server) Serve() error {
	s.logger.Info().Str("addr", s.cfg.Addr).Str("code", s.attributor.Code()).Msg("server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
