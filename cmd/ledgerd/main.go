// @title        chain-wallet API
// @version      1.0
// @description  Single-node proof-of-work ledger with password and PIN sealed wallet keys.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AlexZinkM/chain-wallet/docs"
	"github.com/AlexZinkM/chain-wallet/internal/api"
	"github.com/AlexZinkM/chain-wallet/internal/config"
	"github.com/AlexZinkM/chain-wallet/internal/handler"
	"github.com/AlexZinkM/chain-wallet/internal/ledger"
	"github.com/AlexZinkM/chain-wallet/internal/store"
	"github.com/AlexZinkM/chain-wallet/wallet"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := config.Get()

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("ledgerd stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := store.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	l, err := ledger.Open(ctx, db, ledger.Options{
		Difficulty:   cfg.Difficulty,
		Reward:       cfg.MiningReward,
		MineTimeout:  cfg.MiningTimeout,
		Store:        db,
		Transactions: db,
		Logger:       logger.Named("ledger"),
	})
	if err != nil {
		return err
	}

	service := wallet.NewService(db, l, wallet.Options{
		GrantReward: cfg.GrantReward,
		Logger:      logger.Named("wallet"),
	})
	h := handler.NewLedgerHandler(service, handler.HeaderAuthenticator{Header: config.GetAccountHeader()}, logger.Named("http"))
	router := api.SetupRouter(h, api.Options{Limiter: api.NewLimiter(cfg.RateLimit, cfg.RateBurst)})

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.Int("difficulty", cfg.Difficulty))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
