package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/internal/service/stats"
	"github.com/sandevgo/lifeos/pkg/log"
)

type Assistant interface {
	Process(ctx context.Context, sessionID string, audio []byte, mimeType string) (*core.InteractionResult, error)
}

type StatsService interface {
	Dashboard(ctx context.Context, date string) (*stats.DayStats, error)
	AllTime(ctx context.Context) (*stats.Totals, error)
	Reset(ctx context.Context) error
}

// Config is the slice of application settings the HTTP layer needs.
type Config struct {
	ListenAddr    string
	PublicBaseURL string
	AudioDir      string
	FacesDir      string
}

// Server is the REST and static-file surface. Implements the srv.Service
// lifecycle.
type Server struct {
	echo      *echo.Echo
	cfg       Config
	assistant Assistant
	stats     StatsService
}

func NewServer(ctx context.Context, cfg Config, assistant Assistant, statsSvc StatsService, wsHandler echo.HandlerFunc) *Server {
	s := &Server{
		cfg:       cfg,
		assistant: assistant,
		stats:     statsSvc,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(loggerMiddleware(log.FromCtx(ctx)))

	e.POST("/api/audio/voice-command", s.handleVoiceCommand)
	e.GET("/api/stats", s.handleStats)
	e.GET("/api/settings/stats", s.handleSettingsStats)
	e.DELETE("/api/settings/reset", s.handleReset)
	e.GET("/ws", wsHandler)

	e.Static("/audio", cfg.AudioDir)
	e.Static("/faces", cfg.FacesDir)

	s.echo = e
	return s
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.ListenAddr).Msg("http server listening")

	if err := s.echo.Start(s.cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// publicURL turns a public-relative file path (audio/x.mp3) into an absolute
// URL clients can fetch.
func (s *Server) publicURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + strings.TrimLeft(relPath, "/")
}

// loggerMiddleware makes the application logger reachable from request
// contexts, the same way background services get it.
func loggerMiddleware(logger *zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
			return next(c)
		}
	}
}
