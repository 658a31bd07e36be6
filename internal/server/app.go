// Package server initializes and runs the artifact registry server.
// It opens the database, applies migrations, wires the services, handles
// graceful shutdown, and starts the HTTP endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/server/config"
	"github.com/dmitrijs2005/artkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/artkeeper/internal/server/rest"
	"github.com/dmitrijs2005/artkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	userService     *services.UserService
	artifactService *services.ArtifactService
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	us := services.NewUserService(db, rm, c)
	as := services.NewArtifactService(db, rm)

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		repomanager:     rm,
		userService:     us,
		artifactService: as,
	}, nil
}

// initDB waits for the database to become reachable (the server may start
// before the database container does) and applies pending migrations.
// Per-request storage calls are never retried; this backoff exists only at
// startup.
func (app *App) initDB(ctx context.Context) error {

	backoff := retry.WithMaxRetries(5, retry.NewExponential(1*time.Second))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Warn(ctx, "db not ready, retrying...", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRestServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := rest.NewRestServer(app.config.EndpointAddr, app.logger, app.userService, app.artifactService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.initDB(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRestServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
