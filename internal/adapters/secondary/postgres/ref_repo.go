package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

type refRepo struct {
	pool *pgxpool.Pool
}

func NewRefRepository(pool *pgxpool.Pool) ports.RefRepository {
	return &refRepo{pool: pool}
}

func (r *refRepo) Insert(ctx context.Context, ref *domain.Ref) error {
	// re-imports legitimately produce the same ref again
	query := `
		INSERT INTO refs (chksum, vendor, package, version, filename)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (chksum, vendor, package, version, filename) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		ref.Chksum, ref.Vendor, ref.Package, ref.Version, ref.Filename,
	)
	if err != nil {
		return fmt.Errorf("insert ref: %w", err)
	}
	return nil
}

func (r *refRepo) ListForArtifact(ctx context.Context, chksum string) ([]domain.Ref, error) {
	query := `
		SELECT chksum, vendor, package, version, filename
		FROM refs
		WHERE chksum = $1
		   OR chksum IN (SELECT alias_from FROM aliases WHERE alias_to = $1)
	`
	rows, err := r.pool.Query(ctx, query, chksum)
	if err != nil {
		return nil, fmt.Errorf("list refs for artifact: %w", err)
	}
	defer rows.Close()

	return collectRefs(rows)
}

func (r *refRepo) Search(ctx context.Context, pattern string, limit int) ([]domain.Ref, error) {
	query := `
		SELECT chksum, vendor, package, version, filename
		FROM refs
		WHERE package ILIKE $1
		ORDER BY package ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search refs: %w", err)
	}
	defer rows.Close()

	return collectRefs(rows)
}

func collectRefs(rows pgx.Rows) ([]domain.Ref, error) {
	var refs []domain.Ref
	for rows.Next() {
		var ref domain.Ref
		if err := rows.Scan(&ref.Chksum, &ref.Vendor, &ref.Package, &ref.Version, &ref.Filename); err != nil {
			return nil, fmt.Errorf("scan ref row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ref rows: %w", err)
	}
	return refs, nil
}
