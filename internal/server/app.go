// Package server wires the development backend together: configuration,
// the SQLite database, services and the HTTP server, with graceful shutdown
// on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrijs2005/mpdash/internal/logging"
	"github.com/dmitrijs2005/mpdash/internal/server/config"
	"github.com/dmitrijs2005/mpdash/internal/server/httpapi"
	"github.com/dmitrijs2005/mpdash/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mpdash/internal/server/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sqlx.DB
	server   *httpapi.Server
	notifyFn func(c chan<- os.Signal, sig ...os.Signal)
}

// NewApp opens and migrates the database and builds the HTTP server. Logs
// go to out as JSON.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger := logging.NewJSON(out, c.LogLevel)

	m := repomanager.NewSQLiteRepositoryManager()
	db, err := repomanager.Open(ctx, m, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(db, m, c)
	ps := services.NewProductService(db, m)
	srv := httpapi.NewServer(c.Addr, logger, us, ps, c.CORSOrigins)

	return &App{config: c, logger: logger, db: db, server: srv, notifyFn: signal.Notify}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	app.notifyFn(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "dsn", app.config.DatabaseDSN)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
	return runErr
}
