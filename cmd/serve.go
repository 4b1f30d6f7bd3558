package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuentas/invoice-tracker/internal/api"
	"github.com/cuentas/invoice-tracker/internal/api/metrics"
	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/service"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/auth"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/db/gormdb"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/http/handlers"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/notify"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/queue"
)

const shutdownTimeout = 10 * time.Second

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply schema migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = gormdb.Close(db) }()

	if autoMigrate {
		if err := gormdb.Migrate(ctx, db); err != nil {
			return err
		}
	}

	rdb, err := openRedis(ctx)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	clock := domain.UTCClock{}
	repos := newRepositories(db, clock)
	tokens := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	clients := service.NewPartyService(repos.clients, log)
	suppliers := service.NewPartyService(repos.suppliers, log)
	notifications := service.NewNotificationService(repos.notifications, repos.invoices, notify.NewLogNotifier(log), log)

	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notifications, log)
	dispatcher.OnResult = func(_ queue.Delivery, err error) {
		if err != nil {
			metrics.NotificationDeliveriesTotal.WithLabelValues("failed").Inc()
		} else {
			metrics.NotificationDeliveriesTotal.WithLabelValues("sent").Inc()
		}
		metrics.DeliveryQueueDepth.Set(float64(dispatcher.Pending()))
	}
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	checks := map[string]handlers.Check{"database": handlers.DatabaseCheck(db)}
	if rdb != nil {
		checks["redis"] = handlers.RedisCheck(rdb)
	}

	e := api.NewRouter(api.Deps{
		Log:           log,
		Tokens:        tokens,
		Sweeper:       service.NewSweepService(repos.invoices, clock, log),
		Auth:          service.NewAuthService(repos.users, tokens, revocationList(rdb), log),
		Users:         service.NewUserService(repos.users, log),
		Clients:       clients,
		Suppliers:     suppliers,
		Invoices:      service.NewInvoiceService(repos.invoices, repos.clients, repos.suppliers, log),
		Notifications: notifications,
		Dashboard:     service.NewDashboardService(repos.dashboard),
		Deliveries:    dispatcher,
		HealthChecks:  checks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		stopWorkers()
		dispatcher.Wait()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Int("undelivered", dispatcher.Pending()).Msg("server stopped")
	return nil
}
