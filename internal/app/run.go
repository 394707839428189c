package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Flarenzy/site-ipam/internal/auth"
	"github.com/Flarenzy/site-ipam/internal/domain"
	apihttp "github.com/Flarenzy/site-ipam/internal/http"
	"github.com/Flarenzy/site-ipam/internal/planner"
	"github.com/Flarenzy/site-ipam/internal/storage"
)

const shutdownTimeout = 5 * time.Second

func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, cfg, listener)
}

// Serve loads the inventory and serves the API on listener until ctx is done.
// SIGHUP reloads the inventory file.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger, err := newLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}

	repo := storage.NewYAMLRepository(cfg.InventoryPath)
	inventory, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	warnInvariants(ctx, logger, inventory)

	authenticator, err := newAuthenticator(ctx, cfg)
	if err != nil {
		return err
	}
	if authenticator != nil {
		logger.Info("auth enabled", "issuer", cfg.AuthIssuer, "audience", cfg.AuthAudience)
	}

	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	service := domain.NewLoggingInventoryService(logger, domain.NewInventoryService(inventory, repo))
	opts := []apihttp.Option{
		apihttp.WithExportDir(cfg.ExportDir),
		apihttp.WithWriteRole(cfg.AuthWriteRole),
	}
	if cfg.PlanLogPath != "" {
		opts = append(opts, apihttp.WithPlanLog(planner.NewLog(cfg.PlanLogPath)))
	}
	api := apihttp.NewAPI(logger, repo, service, authenticator, opts...)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				reloadInventory(ctx, logger, service)
			}
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", listener.Addr().String(), "inventory", cfg.InventoryPath)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func newAuthenticator(ctx context.Context, cfg Config) (auth.Authenticator, error) {
	return auth.NewKeycloakAuthenticator(ctx, cfg.authConfig())
}

// warnInvariants logs records that break the inventory invariants. They are
// still served.
func warnInvariants(ctx context.Context, logger *slog.Logger, inventory domain.Inventory) {
	err := inventory.Validate()
	if err == nil {
		return
	}

	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		logger.WarnContext(ctx, "inventory invariant violated", "err", err.Error())
		return
	}
	for _, e := range joined.Unwrap() {
		logger.WarnContext(ctx, "inventory invariant violated", "err", e.Error())
	}
}

// reloadInventory re-reads the inventory file and warns about records that
// break the inventory invariants. A failed reload keeps the previous data.
func reloadInventory(ctx context.Context, logger *slog.Logger, service domain.InventoryService) {
	if err := service.Reload(ctx); err != nil {
		logger.WarnContext(ctx, "reload failed, keeping previous inventory", "err", err.Error())
		return
	}

	inventory, err := snapshot(ctx, service)
	if err != nil {
		logger.WarnContext(ctx, "reading reloaded inventory failed", "err", err.Error())
		return
	}
	warnInvariants(ctx, logger, inventory)
}

func snapshot(ctx context.Context, service domain.InventoryService) (domain.Inventory, error) {
	keys, err := service.ListSites(ctx)
	if err != nil {
		return domain.Inventory{}, err
	}
	inventory := domain.Inventory{Sites: make([]domain.Site, 0, len(keys))}
	for _, key := range keys {
		site, err := service.GetSite(ctx, key)
		if err != nil {
			return domain.Inventory{}, err
		}
		inventory.Sites = append(inventory.Sites, site)
	}
	return inventory, nil
}
