package main

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

	"github.com/iudanet/usersvc/internal/server"
	"github.com/iudanet/usersvc/internal/server/config"
	"github.com/iudanet/usersvc/internal/server/storage/boltdb"
	"github.com/iudanet/usersvc/internal/server/storage/sqlite"
	"github.com/iudanet/usersvc/internal/server/token"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// ledgerPruneInterval controls how often expired revocation entries are
// collected. Correctness does not depend on it, only storage growth.
const ledgerPruneInterval = 1 * time.Hour

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	logger := newLogger(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open user storage: %w", err)
	}
	defer func() {
		_ = users.Close()
	}()

	ledger, err := boltdb.New(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("failed to open revocation ledger: %w", err)
	}
	defer func() {
		_ = ledger.Close()
	}()

	codec := token.New(cfg.SecretKey, cfg.TokenTTL)

	srv := server.New(logger, users, ledger, codec)

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go pruneLedger(ctx, logger, ledger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("address", cfg.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// pruneLedger periodically drops revocation entries whose token has
// already expired. Runs off the request path.
func pruneLedger(ctx context.Context, logger *slog.Logger, ledger *boltdb.Ledger) {
	ticker := time.NewTicker(ledgerPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := ledger.DeleteExpired(ctx, time.Now())
			if err != nil {
				logger.Warn("ledger pruning failed", slog.Any("error", err))
				continue
			}
			if deleted > 0 {
				logger.Info("pruned revocation ledger", slog.Int("deleted", deleted))
			}
		}
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("usersvc server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
