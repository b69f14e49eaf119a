// Package app assembles one service process from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/RealMosam/SEMS/internal/config"
	authdomain "github.com/RealMosam/SEMS/internal/domain/auth"
	participationdomain "github.com/RealMosam/SEMS/internal/domain/participation"
	playerdomain "github.com/RealMosam/SEMS/internal/domain/player"
	"github.com/RealMosam/SEMS/internal/httpserver"
	"github.com/RealMosam/SEMS/internal/infrastructure/memory"
	"github.com/RealMosam/SEMS/internal/infrastructure/postgres"
	"github.com/RealMosam/SEMS/internal/infrastructure/seed"
	"github.com/RealMosam/SEMS/internal/infrastructure/token"
	"github.com/RealMosam/SEMS/internal/telemetry"
	authusecase "github.com/RealMosam/SEMS/internal/usecase/auth"
	participationusecase "github.com/RealMosam/SEMS/internal/usecase/participation"
	playerusecase "github.com/RealMosam/SEMS/internal/usecase/player"
	sportusecase "github.com/RealMosam/SEMS/internal/usecase/sport"

	"golang.org/x/sync/errgroup"
)

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

// Role names the service a process runs.
type Role string

const (
	RoleAuthorization Role = "authorization"
	RolePlayers       Role = "players"
	RoleSports        Role = "sports"
	RoleParticipation Role = "participation"
)

// DefaultPort returns the port a role listens on when none is configured.
func (r Role) DefaultPort() string {
	switch r {
	case RoleAuthorization:
		return "8080"
	case RolePlayers:
		return "8081"
	case RoleSports:
		return "8082"
	case RoleParticipation:
		return "8083"
	default:
		return "8080"
	}
}

func (r Role) valid() bool {
	switch r {
	case RoleAuthorization, RolePlayers, RoleSports, RoleParticipation:
		return true
	}
	return false
}

// App is a wired service process.
type App struct {
	cfg      config.Config
	role     Role
	logger   *slog.Logger
	server   *httpserver.Server
	db       *postgres.Database
	shutdown telemetry.ShutdownFunc
}

// New builds the stores, services and HTTP server for role.
func New(ctx context.Context, cfg config.Config, role Role, logger *slog.Logger) (*App, error) {
	if !role.valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{cfg: cfg, role: role, logger: logger}
	ok := false
	defer func() {
		if !ok {
			a.close(context.Background())
		}
	}()

	shutdown, err := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
		Service:    cfg.Service,
		Version:    Version,
		Exporter:   cfg.Tracing.Exporter,
		Endpoint:   cfg.Tracing.Endpoint,
		SampleRate: cfg.Tracing.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}
	a.shutdown = shutdown

	tokens, err := token.NewManager(token.Config{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.Expiry,
		Leeway:   cfg.JWT.Leeway,
	})
	if err != nil {
		return nil, fmt.Errorf("create token manager: %w", err)
	}

	if cfg.DatabaseURL != "" && role != RoleSports {
		db, err := postgres.New(ctx, cfg.DatabaseURL, postgres.PoolOptions{
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.db = db
		if err := db.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("using postgres storage")
	} else {
		logger.Info("using in-memory storage")
	}

	deps := httpserver.Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: telemetry.NewMetrics(cfg.Service),
		Tokens:  tokens,
	}
	if a.db != nil {
		deps.Ready = a.db.Ping
	}

	catalog := memory.NewSportCatalog(seed.Sports(), seed.Events())

	switch role {
	case RoleAuthorization:
		authSvc, err := authusecase.NewService(a.credentialStore(), tokens)
		if err != nil {
			return nil, err
		}
		if cfg.SeedData {
			if err := seed.LoadCredentials(ctx, authSvc); err != nil {
				return nil, err
			}
		}
		deps.Auth = authSvc
	case RolePlayers:
		playerSvc := playerusecase.NewService(a.playerRepository(), catalog)
		if cfg.SeedData {
			if err := seed.LoadPlayers(ctx, playerSvc); err != nil {
				return nil, err
			}
		}
		deps.Players = playerSvc
	case RoleSports:
		deps.Sports = sportusecase.NewService(catalog)
	case RoleParticipation:
		participationSvc := participationusecase.NewService(a.participationRepository(), catalog)
		if cfg.SeedData {
			if err := seed.LoadParticipations(ctx, participationSvc); err != nil {
				return nil, err
			}
		}
		deps.Participations = participationSvc
	}

	server, err := httpserver.NewServer(deps)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}
	a.server = server
	ok = true
	return a, nil
}

func (a *App) credentialStore() authdomain.CredentialStore {
	if a.db != nil {
		return postgres.NewCredentialStore(a.db.Pool)
	}
	return memory.NewCredentialStore()
}

func (a *App) playerRepository() playerdomain.Repository {
	if a.db != nil {
		return postgres.NewPlayerRepository(a.db.Pool)
	}
	return memory.NewPlayerRepository()
}

func (a *App) participationRepository() participationdomain.Repository {
	if a.db != nil {
		return postgres.NewParticipationRepository(a.db.Pool)
	}
	return memory.NewParticipationRepository()
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Run listens on the configured port until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr())
	if err != nil {
		a.close(context.Background())
		return fmt.Errorf("listen on %s: %w", a.server.Addr(), err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the server on ln until ctx is cancelled. Resources are released on return.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("http server listening", "addr", ln.Addr().String(), "role", string(a.role), "version", Version)
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		a.logger.Info("graceful shutdown completed")
		return nil
	})

	err := g.Wait()
	a.close(context.Background())
	return err
}

func (a *App) close(ctx context.Context) {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
	if a.shutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.shutdown(shutdownCtx); err != nil {
			a.logger.Warn("tracer shutdown failed", "error", err)
		}
		a.shutdown = nil
	}
}
