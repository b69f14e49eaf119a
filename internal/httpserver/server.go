package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/RealMosam/SEMS/internal/config"
	"github.com/RealMosam/SEMS/internal/telemetry"
	authusecase "github.com/RealMosam/SEMS/internal/usecase/auth"
	participationusecase "github.com/RealMosam/SEMS/internal/usecase/participation"
	playerusecase "github.com/RealMosam/SEMS/internal/usecase/player"
	sportusecase "github.com/RealMosam/SEMS/internal/usecase/sport"
)

// ErrNoVerifier is returned when protected routes are requested without a token validator.
var ErrNoVerifier = errors.New("protected routes require a token validator")

// Dependencies lists what a service process exposes. Nil services are not routed.
type Dependencies struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *telemetry.Metrics

	// Auth serves the issuer endpoints.
	Auth *authusecase.Service
	// Tokens validates bearer tokens for every /api route except the issuer's.
	Tokens authusecase.TokenValidator

	Players        *playerusecase.Service
	Sports         *sportusecase.Service
	Participations *participationusecase.Service

	// Ready reports readiness, typically a database ping. Nil means always ready.
	Ready func(ctx context.Context) error
}

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	deps       Dependencies
	logger     *slog.Logger
	metrics    *telemetry.Metrics
	addr       string
}

// NewServer constructs a Server, refusing to expose protected routes without a verifier.
func NewServer(deps Dependencies) (*Server, error) {
	protected := deps.Players != nil || deps.Sports != nil || deps.Participations != nil
	if protected && deps.Tokens == nil {
		return nil, ErrNoVerifier
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = telemetry.NewMetrics(deps.Config.Service)
	}

	addr := deps.Config.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	mux := http.NewServeMux()
	srv := &Server{
		router:  mux,
		deps:    deps,
		logger:  logger,
		metrics: metrics,
		addr:    addr,
	}
	srv.httpServer = &http.Server{
		Addr:         addr,
		Handler:      withObservability(withCORS(mux, deps.Config.AllowedOrigins), logger, metrics),
		ReadTimeout:  deps.Config.ReadTimeout,
		WriteTimeout: deps.Config.WriteTimeout,
		IdleTimeout:  deps.Config.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	srv.registerRoutes()
	return srv, nil
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
