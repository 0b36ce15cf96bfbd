package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	googlegrpc "google.golang.org/grpc"

	"github.com/vendralabs/vendra/app/jobs"
	"github.com/vendralabs/vendra/app/models"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/config"
	"github.com/vendralabs/vendra/pkg/auditlog"
	"github.com/vendralabs/vendra/pkg/cache"
	"github.com/vendralabs/vendra/pkg/database"
	"github.com/vendralabs/vendra/pkg/event"
	vendragrpc "github.com/vendralabs/vendra/pkg/grpc"
	"github.com/vendralabs/vendra/pkg/logger"
	"github.com/vendralabs/vendra/pkg/metrics"
	"github.com/vendralabs/vendra/pkg/notification"
	"github.com/vendralabs/vendra/pkg/queue"
	"github.com/vendralabs/vendra/pkg/schedule"
	"github.com/vendralabs/vendra/pkg/workerpool"

	appsvc "github.com/vendralabs/vendra/app/services"
)

const shutdownTimeout = 15 * time.Second

// Start boots the full application and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	kernel, err := NewKernel(st)
	if err != nil {
		return fmt.Errorf("kernel: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis backs the response cache, the alert dedup keys, and optionally
	// the queue. Its absence degrades those features, nothing else.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache: redis unavailable, continuing without it", "error", err)
	}

	pool := workerpool.New(8)
	defer pool.Shutdown()
	event.UsePool(pool)
	defer event.UsePool(nil)

	exporter := startAuditExporter()
	if exporter != nil {
		defer exporter.Close()
	}

	startQueue(ctx, st)
	wireSaleEffects(kernel)
	startScheduler(ctx, st)

	grpcSrv := startGRPC()
	if grpcSrv != nil {
		defer vendragrpc.Stop(grpcSrv)
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http: listening", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// openStore selects the record store backend from STORE_DRIVER.
func openStore() (store.Store, error) {
	driver := config.StoreDriver()
	if driver == "" || driver == "memory" {
		logger.Info("store: in-memory (records do not survive restart)")
		return store.NewMemoryStore(), nil
	}

	if err := database.Connect(driver, config.DatabaseDSN()); err != nil {
		return nil, err
	}

	st, err := store.NewGormStore(database.DB)
	if err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	logger.Info("store: sql", "driver", driver)
	return st, nil
}

func startAuditExporter() *auditlog.Exporter {
	uri := config.AuditMongoURI()
	if uri == "" {
		return nil
	}

	exporter, err := auditlog.NewExporter(uri, config.AuditMongoDB(), config.AuditMongoColl())
	if err != nil {
		logger.Warn("auditlog: disabled", "error", err)
		return nil
	}

	jobs.SetExporter(exporter)
	logger.Info("auditlog: exporting sale receipts", "db", config.AuditMongoDB())
	return exporter
}

func startQueue(ctx context.Context, st store.Store) {
	jobs.Register()
	jobs.UseStore(st)

	if config.QueueDriver() == "redis" && cache.Client() != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.Client()))
		logger.Info("queue: redis driver")
	}

	queue.StartWorkers(ctx, config.QueueWorkers())
}

// wireSaleEffects connects the sale.recorded event to its consumers:
// the websocket feed, the audit trail, and the low-stock alert.
func wireSaleEffects(k *Kernel) {
	notification.SetSlackWebhook(config.SlackWebhookURL())

	event.Listen(appsvc.EventSaleRecorded, func(payload interface{}) {
		sale, ok := payload.(models.Sale)
		if !ok {
			return
		}

		k.SaleHub.BroadcastJSON(map[string]interface{}{
			"event": "sale.recorded",
			"sale":  sale,
		})

		if err := queue.Dispatch(&jobs.SaleAuditJob{Sale: sale}); err != nil {
			logger.Error("queue: audit dispatch failed", "error", err, "saleId", sale.ID)
		}
		if err := queue.Dispatch(jobs.NewLowStockAlertJob(k.Store, sale.ProductID)); err != nil {
			logger.Error("queue: alert dispatch failed", "error", err, "productId", sale.ProductID)
		}
	})
}

// startScheduler keeps the inventory gauges fresh even when no sales flow.
func startScheduler(ctx context.Context, st store.Store) {
	schedule.EveryMinute().Name("metrics.inventory").WithoutOverlapping().Run(func() {
		products, _ := st.Snapshot()
		units := 0
		for _, p := range products {
			units += p.Quantity
		}
		metrics.SetInventory(len(products), units)
	})

	go schedule.Start(ctx)
}

func startGRPC() *googlegrpc.Server {
	port := config.GRPCPort()
	if port == "" {
		return nil
	}

	srv, _, err := vendragrpc.Start(port)
	if err != nil {
		logger.Warn("grpc: disabled", "error", err)
		return nil
	}
	return srv
}
