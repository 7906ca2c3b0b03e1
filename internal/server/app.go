// Package server initializes and runs the bucketlist gRPC server: it opens
// the database, wires the services and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/server/auth"
	"github.com/dmitrijs2005/bucketlist/internal/server/config"
	"github.com/dmitrijs2005/bucketlist/internal/server/ratelimit"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bucketlist/internal/server/services"
	"github.com/dmitrijs2005/bucketlist/internal/telemetry"

	gs "github.com/dmitrijs2005/bucketlist/internal/server/grpc"
)

// openDB, newLimiter and setupTracing are seams used in tests.
var (
	openDB       = repomanager.Open
	newLimiter   = ratelimit.New
	setupTracing = telemetry.Setup
)

const serviceName = "bucketlist"

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	userService       *services.UserService
	bucketlistService *services.BucketlistService
	exportService     *services.ExportService
	limiter           *ratelimit.RedisLimiter
	shutdownTracing   telemetry.ShutdownFunc
}

// NewApp validates c, connects to the database and builds the services.
// Log output goes to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.NewJSONLogger(w, c.LogLevel)

	db, rm, err := openDB(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var limiter *ratelimit.RedisLimiter
	if c.RedisURL != "" {
		limiter, err = newLimiter(ctx, c.RedisURL, c.LoginRatePerMinute, c.LoginBurst)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("rate limiter init error: %w", err)
		}
	}

	shutdown, err := setupTracing(ctx, c.OtelEndpoint, serviceName)
	if err != nil {
		_ = db.Close()
		if limiter != nil {
			_ = limiter.Close()
		}
		return nil, fmt.Errorf("tracing init error: %w", err)
	}

	creds := auth.NewCredentialStore(c.BcryptCost)
	tokens := auth.NewTokenService(c)

	return &App{
		config:            c,
		logger:            logger,
		db:                db,
		userService:       services.NewUserService(db, rm, creds, tokens, logger),
		bucketlistService: services.NewBucketlistService(db, rm, logger),
		exportService:     services.NewExportService(db, rm, c, logger),
		limiter:           limiter,
		shutdownTracing:   shutdown,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.userService, app.bucketlistService, app.exportService)
	if app.limiter != nil {
		s.WithLoginLimiter(app.limiter)
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	var runErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err)
	}
	if app.limiter != nil {
		if err := app.limiter.Close(); err != nil {
			app.logger.Warn(ctx, "redis close failed", "error", err)
		}
	}
	if app.shutdownTracing != nil {
		if err := app.shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			app.logger.Warn(ctx, "tracing shutdown failed", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
	return runErr
}
