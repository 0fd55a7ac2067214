package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mpdash/internal/buildinfo"
	"github.com/dmitrijs2005/mpdash/internal/client/api"
	"github.com/dmitrijs2005/mpdash/internal/client/cli"
	"github.com/dmitrijs2005/mpdash/internal/client/config"
	"github.com/dmitrijs2005/mpdash/internal/client/services"
	"github.com/dmitrijs2005/mpdash/internal/client/session"
	"github.com/dmitrijs2005/mpdash/internal/client/storage"
	"github.com/dmitrijs2005/mpdash/internal/client/tokenstore"
	"github.com/dmitrijs2005/mpdash/internal/filex"
	"github.com/dmitrijs2005/mpdash/internal/flagx"
	"github.com/dmitrijs2005/mpdash/internal/logging"
)

func main() {
	if flagx.HasBoolFlag(os.Args[1:], "-version", "--version") {
		buildinfo.PrintBuildData(os.Stdout)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mpdash:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logFile, err := filex.OpenAppend(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.NewText(logFile, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store tokenstore.Store
	if cfg.Ephemeral {
		store = tokenstore.NewMemoryStore()
	} else {
		db, err := storage.Open(ctx, cfg.DatabasePath)
		if errors.Is(err, storage.ErrLocked) {
			return fmt.Errorf("%s is used by another mpdash process", cfg.DatabasePath)
		}
		if err != nil {
			return err
		}
		defer db.Close()
		store = tokenstore.NewSQLiteStore(db.DB)
	}

	client, err := api.New(cfg.BaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
		api.WithTokenSource(storedToken(store)),
	)
	if err != nil {
		return err
	}

	logger.Info(ctx, "client started",
		"version", buildinfo.Version,
		"backend", client.BaseURL(),
		"ephemeral", cfg.Ephemeral,
	)

	app := cli.NewApp(cli.Deps{
		Auth:     services.NewAuthService(client),
		Products: services.NewProductService(client),
		Store:    store,
		Identity: session.NewIdentityResolver(cfg.TokenSecret),
		Logger:   logger,
		BaseURL:  client.BaseURL(),
		In:       os.Stdin,
		Out:      os.Stdout,
	})
	app.Run(ctx, cfg.PingInterval)

	logger.Info(ctx, "client stopped")
	return nil
}

// storedToken feeds the bearer token from the token store into every
// backend request.
func storedToken(store tokenstore.Store) api.TokenSource {
	return api.TokenSourceFunc(func(ctx context.Context) (string, error) {
		tok, ok, err := store.Load(ctx)
		if err != nil || !ok {
			return "", err
		}
		return tok.Value, nil
	})
}
