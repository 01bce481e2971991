package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Rizwanrichu87/studio/internal/engine"
)

// Server is the Habit Studio JSON API.
type Server struct {
	svc      *engine.Service
	insights *engine.Insights // nil when no AI key is configured
	router   *gin.Engine
	logger   *zap.Logger
	metrics  *Metrics
}

type Option func(*Server)

func WithInsights(in *engine.Insights) Option {
	return func(s *Server) { s.insights = in }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func NewServer(svc *engine.Service, opts ...Option) *Server {
	s := &Server{
		svc:     svc,
		logger:  zap.NewNop(),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), s.metrics.Middleware())
	s.router = router

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.GET("/habits", s.handleListHabits)
		api.POST("/habits", s.handleCreateHabit)
		api.GET("/habits/:id", s.handleGetHabit)
		api.PUT("/habits/:id", s.handleUpdateHabit)
		api.DELETE("/habits/:id", s.handleDeleteHabit)
		api.POST("/habits/:id/increment", s.handleIncrement)
		api.POST("/habits/:id/decrement", s.handleDecrement)
		api.PUT("/habits/:id/count", s.handleSetCount)

		api.GET("/stats", s.handleStats)
		api.GET("/stats/week", s.handleWeek)
		api.GET("/stats/month", s.handleMonth)
		api.GET("/stats/calendar", s.handleCalendar)
		api.GET("/achievements", s.handleAchievements)

		api.POST("/insights/:kind", s.handleInsight)
	}

	return s
}

// Handler exposes the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
