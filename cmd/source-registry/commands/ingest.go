package commands

import (
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"source-registry-service/internal/adapters/secondary/postgres"
	"source-registry-service/internal/adapters/secondary/upstream"
	"source-registry-service/internal/archive"
	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/services"
)

var (
	ingestVendor      string
	ingestPackage     string
	ingestVersion     string
	ingestCompression string
	ingestStrain      string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import artifacts into the registry",
}

var ingestTarCmd = &cobra.Command{
	Use:   "tar <file-or-url>",
	Short: "Import a source tarball",
	Long: `Imports one source archive: records the file listing under the
checksum of the decompressed tar stream, an alias for the compressed
checksum, and any lockfiles found inside. Prints the artifact checksum.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestTar,
}

var ingestRpmCmd = &cobra.Command{
	Use:   "rpm <file-or-url>",
	Short: "Import the source archives carried by an rpm package",
	Long: `Converts the rpm payload to a tar stream with bsdtar and imports
every member: nested source archives in full, everything else by
checksum. Each member is recorded as a ref of the given provenance.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestRpm,
}

var ingestSbomCmd = &cobra.Command{
	Use:   "sbom <file-or-url>",
	Short: "Register a dependency lockfile",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngestSbom,
}

func init() {
	ingestTarCmd.Flags().StringVar(&ingestVendor, "vendor", "", "Vendor claiming the artifact (records a ref when set)")
	ingestTarCmd.Flags().StringVar(&ingestPackage, "package", "", "Package name")
	ingestTarCmd.Flags().StringVar(&ingestVersion, "version", "", "Package version")
	ingestTarCmd.Flags().StringVar(&ingestCompression, "compression", "", "Compression format: gz, xz, bz2, zst or none (sniffed when empty)")

	ingestRpmCmd.Flags().StringVar(&ingestVendor, "vendor", "", "Vendor the rpm came from")
	ingestRpmCmd.Flags().StringVar(&ingestPackage, "package", "", "Package name")
	ingestRpmCmd.Flags().StringVar(&ingestVersion, "version", "", "Package version")
	_ = ingestRpmCmd.MarkFlagRequired("vendor")
	_ = ingestRpmCmd.MarkFlagRequired("package")
	_ = ingestRpmCmd.MarkFlagRequired("version")

	ingestSbomCmd.Flags().StringVar(&ingestStrain, "strain", "", "Lockfile dialect: cargo, npm-package-lock, go-sum, yarn or pnpm")
	_ = ingestSbomCmd.MarkFlagRequired("strain")

	ingestCmd.AddCommand(ingestTarCmd, ingestRpmCmd, ingestSbomCmd)
	rootCmd.AddCommand(ingestCmd)
}

func newIngestService(pool *pgxpool.Pool) *services.IngestService {
	return services.NewIngestService(
		postgres.NewArtifactRepository(pool),
		postgres.NewRefRepository(pool),
		postgres.NewSbomRepository(pool),
	)
}

func runIngestTar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	compression, err := archive.ParseCompression(ingestCompression)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	fetcher := upstream.NewFetcher(cfg.Upstream.UserAgent, cfg.Upstream.Timeout)
	body, err := fetcher.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer body.Close()

	ingestSvc := newIngestService(pool)
	res, err := ingestSvc.ImportTar(ctx, body, compression)
	if err != nil {
		return err
	}

	if ingestVendor != "" {
		ref := &domain.Ref{
			Chksum:  res.Outer.SHA256,
			Vendor:  ingestVendor,
			Package: ingestPackage,
			Version: ingestVersion,
		}
		if err := ingestSvc.RecordRef(ctx, ref); err != nil {
			return err
		}
	}

	fmt.Println(res.Inner.SHA256)
	return nil
}

func runIngestRpm(cmd *cobra.Command, args []string) error {
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

	fetcher := upstream.NewFetcher(cfg.Upstream.UserAgent, cfg.Upstream.Timeout)
	body, err := fetcher.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer body.Close()

	return newIngestService(pool).ImportRPM(ctx, body, ingestVendor, ingestPackage, ingestVersion)
}

func runIngestSbom(cmd *cobra.Command, args []string) error {
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

	fetcher := upstream.NewFetcher(cfg.Upstream.UserAgent, cfg.Upstream.Timeout)
	body, err := fetcher.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read lockfile: %w", err)
	}

	sbomSvc := services.NewSbomService(postgres.NewSbomRepository(pool))
	record, err := sbomSvc.Register(ctx, ingestStrain, string(data))
	if err != nil {
		return err
	}

	fmt.Println(record.Chksum)
	return nil
}
