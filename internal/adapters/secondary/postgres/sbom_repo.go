package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

type sbomRepo struct {
	pool *pgxpool.Pool
}

func NewSbomRepository(pool *pgxpool.Pool) ports.SbomRepository {
	return &sbomRepo{pool: pool}
}

func (r *sbomRepo) Insert(ctx context.Context, sbom *domain.Sbom) error {
	query := `
		INSERT INTO sboms (chksum, strain, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (chksum, strain) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, sbom.Chksum, sbom.Strain, sbom.Data); err != nil {
		return fmt.Errorf("insert sbom: %w", err)
	}
	return nil
}

func (r *sbomRepo) Get(ctx context.Context, chksum string) (*domain.Sbom, error) {
	query := `
		SELECT chksum, strain, data
		FROM sboms
		WHERE chksum = $1
		LIMIT 1
	`
	sbom := &domain.Sbom{}
	err := r.pool.QueryRow(ctx, query, chksum).Scan(&sbom.Chksum, &sbom.Strain, &sbom.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSbomNotFound
		}
		return nil, fmt.Errorf("get sbom: %w", err)
	}
	return sbom, nil
}

func (r *sbomRepo) InsertRef(ctx context.Context, ref *domain.SbomRef) error {
	query := `
		INSERT INTO sbom_refs (from_archive, sbom_strain, sbom_chksum, path)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (from_archive, sbom_strain, sbom_chksum, path) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		ref.ArchiveChksum, ref.SbomStrain, ref.SbomChksum, ref.Path,
	)
	if err != nil {
		return fmt.Errorf("insert sbom ref: %w", err)
	}
	return nil
}

func (r *sbomRepo) ListRefsForArchive(ctx context.Context, archiveChksum string) ([]domain.SbomRef, error) {
	query := `
		SELECT from_archive, sbom_strain, sbom_chksum, path
		FROM sbom_refs
		WHERE from_archive = $1
		ORDER BY path ASC
	`
	rows, err := r.pool.Query(ctx, query, archiveChksum)
	if err != nil {
		return nil, fmt.Errorf("list sbom refs for archive: %w", err)
	}
	defer rows.Close()

	return collectSbomRefs(rows)
}

func (r *sbomRepo) ListRefsForSbom(ctx context.Context, sbomChksum string) ([]domain.SbomRef, error) {
	query := `
		SELECT from_archive, sbom_strain, sbom_chksum, path
		FROM sbom_refs
		WHERE sbom_chksum = $1
		ORDER BY from_archive ASC, path ASC
	`
	rows, err := r.pool.Query(ctx, query, sbomChksum)
	if err != nil {
		return nil, fmt.Errorf("list sbom refs for sbom: %w", err)
	}
	defer rows.Close()

	return collectSbomRefs(rows)
}

func collectSbomRefs(rows pgx.Rows) ([]domain.SbomRef, error) {
	var refs []domain.SbomRef
	for rows.Next() {
		var ref domain.SbomRef
		if err := rows.Scan(&ref.ArchiveChksum, &ref.SbomStrain, &ref.SbomChksum, &ref.Path); err != nil {
			return nil, fmt.Errorf("scan sbom ref row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sbom ref rows: %w", err)
	}
	return refs, nil
}
