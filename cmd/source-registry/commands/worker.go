package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"source-registry-service/internal/adapters/secondary/postgres"
	"source-registry-service/internal/adapters/secondary/upstream"
	"source-registry-service/internal/core/services"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Process queued ingest tasks",
	Long: `Runs the ingest worker loop: fetch a batch of queued tasks, download
each artifact and import it, then delete the finished task. Failed tasks
stay queued for a later round.`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	ingestSvc := services.NewIngestService(
		postgres.NewArtifactRepository(pool),
		postgres.NewRefRepository(pool),
		postgres.NewSbomRepository(pool),
	)
	fetcher := upstream.NewFetcher(cfg.Upstream.UserAgent, cfg.Upstream.Timeout)
	taskSvc := services.NewTaskService(postgres.NewTaskRepository(pool), ingestSvc, fetcher, cfg.Worker.Batch)

	log.WithFields(log.Fields{
		"interval": cfg.Worker.Interval,
		"batch":    cfg.Worker.Batch,
	}).Info("worker started")

	if err := taskSvc.Run(ctx, cfg.Worker.Interval); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("worker stopped")
	return nil
}
