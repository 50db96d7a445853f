package commands

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"source-registry-service/internal/adapters/secondary/postgres"
	"source-registry-service/internal/adapters/secondary/upstream"
	"source-registry-service/internal/config"
	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/services"
)

var (
	queueVendor      string
	queuePackage     string
	queueVersion     string
	queueCompression string
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Enqueue ingest tasks for the worker",
}

var queueTarCmd = &cobra.Command{
	Use:   "tar <url>",
	Short: "Queue a tarball download",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueueTar,
}

var queueRpmCmd = &cobra.Command{
	Use:   "rpm <url>",
	Short: "Queue an rpm download",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueueRpm,
}

func init() {
	queueTarCmd.Flags().StringVar(&queueVendor, "vendor", "", "Vendor claiming the artifact (records a ref when set)")
	queueTarCmd.Flags().StringVar(&queuePackage, "package", "", "Package name")
	queueTarCmd.Flags().StringVar(&queueVersion, "version", "", "Package version")
	queueTarCmd.Flags().StringVar(&queueCompression, "compression", "", "Compression format: gz, xz, bz2, zst or none (sniffed when empty)")

	queueRpmCmd.Flags().StringVar(&queueVendor, "vendor", "", "Vendor the rpm came from")
	queueRpmCmd.Flags().StringVar(&queuePackage, "package", "", "Package name")
	queueRpmCmd.Flags().StringVar(&queueVersion, "version", "", "Package version")
	_ = queueRpmCmd.MarkFlagRequired("vendor")
	_ = queueRpmCmd.MarkFlagRequired("package")
	_ = queueRpmCmd.MarkFlagRequired("version")

	queueCmd.AddCommand(queueTarCmd, queueRpmCmd)
	rootCmd.AddCommand(queueCmd)
}

func newTaskService(cfg *config.Config, pool *pgxpool.Pool) *services.TaskService {
	fetcher := upstream.NewFetcher(cfg.Upstream.UserAgent, cfg.Upstream.Timeout)
	return services.NewTaskService(postgres.NewTaskRepository(pool), newIngestService(pool), fetcher, cfg.Worker.Batch)
}

func runQueueTar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	err = newTaskService(cfg, pool).QueueTar(ctx, args[0], queueVendor, queuePackage, queueVersion, queueCompression)
	if errors.Is(err, domain.ErrTaskExists) {
		log.WithField("url", args[0]).Info("already queued")
		return nil
	}
	return err
}

func runQueueRpm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	err = newTaskService(cfg, pool).QueueRPM(ctx, args[0], queueVendor, queuePackage, queueVersion)
	if errors.Is(err, domain.ErrTaskExists) {
		log.WithField("url", args[0]).Info("already queued")
		return nil
	}
	return err
}
