// Package web serves the label form and its rendering endpoints.
package web

import (
	"context"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/letterpack/letterpack/internal/logger"
	"github.com/letterpack/letterpack/internal/settings"
	"github.com/letterpack/letterpack/internal/storage"
	"github.com/letterpack/letterpack/pkg/api"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 10 * time.Second

// Config wires the server's collaborators
type Config struct {
	Server    settings.ServerConfig
	Generator *api.Generator
	// Sink archives every generated document when not nil
	Sink   storage.Sink
	Logger *zap.Logger
}

// Server is the label web form
type Server struct {
	cfg     settings.ServerConfig
	gen     *api.Generator
	sink    storage.Sink
	logger  *zap.Logger
	metrics *Metrics
	index   *template.Template
	engine  *gin.Engine
}

// NewServer builds the gin engine and routes
func NewServer(cfg Config) *Server {
	setupValidator()

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	gen := cfg.Generator
	if gen == nil {
		gen = api.New()
	}

	s := &Server{
		cfg:     cfg.Server,
		gen:     gen,
		sink:    cfg.Sink,
		logger:  log,
		metrics: NewMetrics(),
		index:   template.Must(template.New("index").Parse(indexHTML)),
	}

	engine := gin.New()
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		s.metrics.Middleware(),
	)
	if cfg.Server.MaxUploadSize > 0 {
		engine.MaxMultipartMemory = cfg.Server.MaxUploadSize
	}

	engine.GET("/", s.handleIndex)
	engine.POST("/labels", s.handleLabel)
	engine.POST("/labels/batch", s.handleBatch)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	s.engine = engine
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. Concurrent connections are capped at Server.MaxConnections.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ListenAndServe listens on Server.Addr and calls Serve
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
