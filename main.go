// Feedreg is the feed registration service.
//
// It lets users register an account, obtain a bearer token, and track
// the RSS feed urls they follow. It records that a feed exists and who
// follows it; it never fetches the feeds themselves.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/lmoran/feedreg/internal/api"
	"github.com/lmoran/feedreg/internal/feedreg"
	"github.com/lmoran/feedreg/internal/logging"
	"github.com/lmoran/feedreg/internal/migrations"
	fedqlite "github.com/lmoran/feedreg/internal/sqlite"
)

type config struct {
	Port     int    `env:"PORT, default=4444"`
	Database string `env:"DATABASE, required"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`

	CORSOrigin string `env:"CORS_ORIGIN, default=*"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Parse the config
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("error parsing config: %s", err)
	}

	logging.Setup(os.Stderr, cfg.LoggerFormat)

	// Start the application
	if err := run(ctx, cfg); err != nil {
		slog.Error("error running", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	slog.Info("running", "config", cfg)

	// Connect to the sqlite db
	dbx, err := fedqlite.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("error opening database: %s", err)
	}
	defer dbx.Close()

	// Migrate, always
	if err := migrations.Run(dbx); err != nil {
		return fmt.Errorf("error migrating: %s", err)
	}

	repo := fedqlite.New(dbx)
	s := api.NewServer(api.ServerConfig{
		Port:       cfg.Port,
		CORSOrigin: cfg.CORSOrigin,
	}, feedreg.NewAccounts(repo), feedreg.NewFeeds(repo), repo)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Start the server
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error listening: %s", err)
		}

		return nil
	})
	g.Go(func() error {
		// Block from shutting down until the group is canceled
		<-gCtx.Done()

		downCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(downCtx); err != nil {
			slog.Error("error shutting down server", "error", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("error running: %s", err)
	}

	return nil
}
