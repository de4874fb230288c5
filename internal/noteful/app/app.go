package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/noteful/internal/noteful/http"
	"github.com/aussiebroadwan/noteful/internal/noteful/service"
	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/drivers/postgres"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/drivers/redis"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/drivers/sqlite"
	"github.com/aussiebroadwan/noteful/pkg/cryptox"
	"github.com/aussiebroadwan/noteful/pkg/jwtx"
	"github.com/aussiebroadwan/noteful/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the noteful service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	sessions *redis.RefreshTokens // nil unless SESSION_BACKEND=redis
	hasher   *cryptox.Hasher
	access   *jwtx.Codec
	refresh  *jwtx.Codec

	// Services
	sessionService *service.SessionService
	userService    *service.UserService
	folderService  *service.FolderService
	noteService    *service.NoteService

	// nil when the session backend expires tokens itself
	housekeeping        *service.HousekeepingService
	housekeepingRunning bool

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "noteful",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initCrypto(); err != nil {
		_ = app.closeBackends()
		return nil, err
	}

	if err := app.initSessions(ctx); err != nil {
		_ = app.closeBackends()
		return nil, err
	}

	app.initServices()

	if err := app.seedUser(ctx); err != nil {
		_ = app.closeBackends()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.housekeeping != nil {
		app.housekeeping.Start()
		app.housekeepingRunning = true
	}

	app.logger.Info("noteful starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"sessions", app.cfg.SessionBackend,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if app.housekeepingRunning {
			app.housekeeping.Stop()
		}
		_ = app.closeBackends()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down noteful...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingRunning {
		app.housekeeping.Stop()
		app.housekeepingRunning = false
	}

	if err := app.closeBackends(); err != nil {
		return err
	}

	app.logger.Info("noteful stopped")
	return nil
}

func (app *Application) closeBackends() error {
	var errs []error
	if app.sessions != nil {
		if err := app.sessions.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStore connects to the configured database and applies migrations.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		db  store.Store
		err error
	)

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
	return db, nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenStore(ctx, app.cfg, app.logger)
	if err != nil {
		return err
	}
	app.db = db
	return nil
}

// NewHasher loads (or creates) the pepper and returns the password hasher.
func NewHasher(cfg Config) (*cryptox.Hasher, error) {
	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	return cryptox.NewHasher(pepper), nil
}

func (app *Application) initCrypto() error {
	hasher, err := NewHasher(app.cfg)
	if err != nil {
		return err
	}
	app.hasher = hasher

	access, refresh, err := InitCodecs(app.cfg, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize token codecs: %w", err)
	}
	app.access, app.refresh = access, refresh
	return nil
}

// initSessions connects the redis refresh token backend when configured.
func (app *Application) initSessions(ctx context.Context) error {
	if app.cfg.SessionBackend != SessionsRedis {
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})
	sessions := redis.NewRefreshTokens(client, app.cfg.RefreshTokenLife)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sessions.Ping(pingCtx); err != nil {
		_ = sessions.Close()
		return fmt.Errorf("failed to reach redis at %s: %w", app.cfg.RedisAddr, err)
	}

	app.sessions = sessions
	app.logger.Info("refresh tokens stored in redis", "addr", app.cfg.RedisAddr, "db", app.cfg.RedisDB)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	var tokens store.RefreshTokens = app.db.RefreshTokens()
	if app.sessions != nil {
		tokens = app.sessions
	}

	app.sessionService = &service.SessionService{
		Store:   store.NewCredentialStore(app.db.Users(), tokens),
		Hasher:  app.hasher,
		Access:  app.access,
		Refresh: app.refresh,
	}
	app.userService = &service.UserService{Users: app.db.Users(), Hasher: app.hasher}
	app.folderService = &service.FolderService{Folders: app.db.Folders()}
	app.noteService = &service.NoteService{Notes: app.db.Notes()}

	if sweeper, ok := tokens.(store.SessionSweeper); ok {
		app.housekeeping = service.NewHousekeepingService(
			sweeper,
			app.refresh,
			app.logger,
			app.cfg.HousekeepingInterval,
		)
	}
}

// seedUser creates the configured seed user, or warns when nobody can log in.
func (app *Application) seedUser(ctx context.Context) error {
	if app.cfg.SeedUsername != "" {
		created, err := app.userService.EnsureUser(ctx, app.cfg.SeedUsername, app.cfg.SeedPassword)
		if err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		if created {
			app.logger.Info("seed user created", "username", app.cfg.SeedUsername)
		}
		return nil
	}

	empty, err := app.db.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if empty {
		app.logger.Warn("no users exist; create one with `noteful user add` or set SEED_USERNAME")
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.access,
		httpapi.Options{
			BuildVersion: BuildVersion,
			Production:   app.cfg.Production(),
			CORSOrigin:   app.cfg.CORSOrigin,
		},
		app.db,
		app.logger,
	)

	// Wire services to router
	router.SessionService = app.sessionService
	router.FolderService = app.folderService
	router.NoteService = app.noteService
	if app.sessions != nil {
		router.Sessions = app.sessions
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
