// Package server assembles the gin engine for the HTTP front end.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	billingH "github.com/jith-01/Billing-Software-amd/internal/billing/handler"
	"github.com/jith-01/Billing-Software-amd/internal/database"
	"github.com/jith-01/Billing-Software-amd/internal/logger"
	salesH "github.com/jith-01/Billing-Software-amd/internal/sales/handler"
	"github.com/jith-01/Billing-Software-amd/internal/session"
	stockH "github.com/jith-01/Billing-Software-amd/internal/stock/handler"
)

const basePath = "/api/v1"

type Config struct {
	Port           string
	AllowedOrigins []string
	GinMode        string
}

type Handlers struct {
	Stock   *stockH.StockHandler
	Billing *billingH.BillingHandler
	Sales   *salesH.SalesHandler
}

type Server struct {
	Router *gin.Engine

	cfg    Config
	db     *sqlx.DB
	logger logger.ZapLogger
	http   *http.Server
}

func NewServer(cfg Config, db *sqlx.DB, h Handlers, log logger.ZapLogger) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		Router: gin.New(),
		cfg:    cfg,
		db:     db,
		logger: log,
	}
	s.MountMiddlewares()
	s.MountHandlers(h)

	port := cfg.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	s.http = &http.Server{
		Addr:              port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(s.accessLog())
	s.Router.Use(cors.New(corsConfig(s.cfg.AllowedOrigins)))
	s.Router.Use(session.Middleware())
}

func (s *Server) MountHandlers(h Handlers) {
	api := s.Router.Group(basePath)
	h.Stock.MapRoutes(api)
	h.Billing.MapRoutes(api)
	h.Sales.MapRoutes(api)

	s.Router.GET("/healthz", s.handleHealthz)
}

func (s *Server) handleHealthz(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), s.db, 2*time.Second); err != nil {
		s.logger.Warn("health check: store unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "store": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "ok"})
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestid.Get(c)),
			zap.String("terminal_id", session.TerminalID(c.Request.Context())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Warn("request failed", fields...)
			return
		}
		s.logger.Debug("request", fields...)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", session.HeaderTerminalID, "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", session.HeaderTerminalID, "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

// Run serves until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
