package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ecordell/optgen/helpers"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dbnav/object-browser/internal/config"
	"github.com/dbnav/object-browser/internal/handlers"
	"github.com/dbnav/object-browser/internal/server"
	"github.com/dbnav/object-browser/internal/services"
	"github.com/dbnav/object-browser/internal/store"
	"github.com/dbnav/object-browser/internal/store/migrations"
	"github.com/dbnav/object-browser/pkg/event"
)

const (
	dbFilename      = "navigator.duckdb"
	shutdownTimeout = 10 * time.Second
)

func NewServeCommand(cfg *config.Configuration, flags configFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the navigation trees over http",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	flags.register(cmd)
	return cmd
}

func runServe(ctx context.Context, cfg *config.Configuration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := zap.S().Named("main")
	log.Infow("starting navigator", "config", helpers.Flatten(cfg.DebugMap()))

	nav, err := services.NewNavigator(cfg.Browser, cfg.Auth, event.NewBus())
	if err != nil {
		return err
	}
	defer nav.Close()

	var treeState *services.TreeStateService
	if cfg.TreeState.Enabled {
		st, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		treeState = services.NewTreeStateService(st, nav, cfg.TreeState.SaveInterval)
		if err := treeState.Restore(ctx); err != nil {
			log.Warnw("failed to restore tree state", "error", err)
		}
		treeState.Start(ctx)
		defer treeState.Stop()
	}

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		handlers.RegisterHandlers(router, handlers.New(nav, treeState))
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	return <-errCh
}

func openStore(ctx context.Context, cfg config.Store) (*store.Store, error) {
	path := ":memory:"
	if cfg.DataFolder != "" {
		if err := os.MkdirAll(cfg.DataFolder, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create data folder: %w", err)
		}
		path = filepath.Join(cfg.DataFolder, dbFilename)
	}

	db, err := store.NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	zap.S().Named("main").Infow("tree state store ready", "path", path)
	return store.NewStore(db), nil
}
