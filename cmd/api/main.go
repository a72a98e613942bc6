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

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/fastprodman/divegame/internal/api"
	"github.com/fastprodman/divegame/internal/gamemath"
	"github.com/fastprodman/divegame/internal/infra/logging"
	"github.com/fastprodman/divegame/internal/infra/pgutils"
	"github.com/fastprodman/divegame/internal/repos/pools"
	poolspg "github.com/fastprodman/divegame/internal/repos/pools/postgres"
	sessionspg "github.com/fastprodman/divegame/internal/repos/sessions/postgres"
	walletspg "github.com/fastprodman/divegame/internal/repos/wallets/postgres"
	"github.com/fastprodman/divegame/internal/services/session"
	"github.com/fastprodman/divegame/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// Optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[apiConfig]()
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.Setup("api", cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	gameCfg := gamemath.DefaultConfig()
	if cfg.GameConfigPath != "" {
		gameCfg, err = gamemath.LoadConfig(cfg.GameConfigPath)
		if err != nil {
			return fmt.Errorf("load game config: %w", err)
		}
	}

	// --- Infra ---
	pool, err := pgutils.Connect(ctx, cfg.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Close db pool")
		pool.Close()

		return nil
	})

	txManager, err := manager.New(trmpgx.NewDefaultFactory(pool))
	if err != nil {
		return fmt.Errorf("init tx manager: %w", err)
	}

	poolsRepo := poolspg.New(pool)
	sessionsRepo := sessionspg.New(pool)
	walletsRepo := walletspg.New(pool)

	// The house pool must exist before any session can reserve against
	// it; Create is a no-op when it already does.
	err = poolsRepo.Create(ctx, pools.Pool{ID: cfg.PoolID})
	if err != nil {
		return fmt.Errorf("ensure pool %q: %w", cfg.PoolID, err)
	}

	gameSrv, err := session.New(gameCfg, cfg.PoolID, sessionsRepo, poolsRepo, walletsRepo, txManager)
	if err != nil {
		return fmt.Errorf("init session service: %w", err)
	}

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, gameSrv)

	// Register HTTP server graceful shutdown
	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "pool", cfg.PoolID)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
