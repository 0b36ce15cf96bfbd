package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vendralabs/vendra/app/jobs"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/config"
	"github.com/vendralabs/vendra/pkg/cache"
	"github.com/vendralabs/vendra/pkg/database"
	"github.com/vendralabs/vendra/pkg/logger"
	"github.com/vendralabs/vendra/pkg/queue"
)

// queue:work runs a standalone worker process. It only makes sense with the
// Redis queue driver and a SQL store — the in-memory variants are invisible
// to other processes.
func newQueueWorkCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "queue:work",
		Short: "Process queued jobs until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}

			if err := cache.Connect(); err != nil {
				return err
			}
			queue.SetDriver(queue.NewRedisDriver(cache.Client()))

			jobs.Register()
			if config.StoreDriver() != "memory" {
				if err := database.Connect(config.StoreDriver(), config.DatabaseDSN()); err != nil {
					return err
				}
				st, err := store.NewGormStore(database.DB)
				if err != nil {
					return err
				}
				jobs.UseStore(st)
			} else {
				logger.Warn("queue:work: memory store selected, alert jobs will see an empty catalogue")
				jobs.UseStore(store.NewMemoryStore())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("queue:work: starting", "workers", workers)
			queue.StartWorkers(ctx, workers)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent workers")
	return cmd
}
