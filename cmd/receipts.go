package cmd

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/frahmantamala/sistema-extras/internal/receipt"
	"github.com/frahmantamala/sistema-extras/pkg/logger"
	"github.com/spf13/cobra"
)

var receiptsCmd = &cobra.Command{
	Use:   "receipts",
	Short: "Receipt maintenance",
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Generate receipts for approved extras that have none",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runBackfill(ctx)
	},
}

func runBackfill(ctx context.Context) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	log := logger.LoggerWrapper()

	db, err := initDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	gormDB, err := initGorm(db)
	if err != nil {
		return err
	}

	service := newReceiptService(gormDB, cfg.Receipt, log)
	ids, err := service.ListMissing(ctx)
	if err != nil {
		return fmt.Errorf("list missing receipts: %w", err)
	}
	if len(ids) == 0 {
		fmt.Println("no receipts to generate")
		return nil
	}

	workers := backfillJobs
	if workers < 1 {
		workers = cfg.Receipt.Workers
	}

	var generated, failed atomic.Int64
	pool := receipt.NewPool(func(ctx context.Context, job receipt.Job) error {
		if _, err := service.Generate(ctx, job.ExtraID); err != nil {
			failed.Add(1)
			return err
		}
		generated.Add(1)
		return nil
	}, workers, cfg.Receipt.QueueSize, log)
	pool.Start()

	log.Info("backfilling receipts", "pending", len(ids), "workers", workers)
	for _, id := range ids {
		if err := pool.Submit(ctx, receipt.Job{ExtraID: id}); err != nil {
			_ = pool.Stop(context.Background())
			return fmt.Errorf("submit %s: %w", id, err)
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := pool.Stop(stopCtx); err != nil {
		return fmt.Errorf("waiting for receipt workers: %w", err)
	}

	fmt.Printf("generated %d receipts, %d failed\n", generated.Load(), failed.Load())
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d receipts failed to generate", n)
	}
	return nil
}
