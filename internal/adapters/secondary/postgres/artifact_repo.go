package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

type artifactRepo struct {
	pool *pgxpool.Pool
}

func NewArtifactRepository(pool *pgxpool.Pool) ports.ArtifactRepository {
	return &artifactRepo{pool: pool}
}

func (r *artifactRepo) Upsert(ctx context.Context, artifact *domain.Artifact) error {
	filesJSON, err := json.Marshal(artifact.Files)
	if err != nil {
		return fmt.Errorf("marshal file listing: %w", err)
	}

	query := `
		INSERT INTO artifacts (chksum, first_seen, last_imported, files)
		VALUES ($1, NOW(), NOW(), $2)
		ON CONFLICT (chksum) DO UPDATE
		SET last_imported = NOW(), files = EXCLUDED.files
	`
	if _, err := r.pool.Exec(ctx, query, artifact.Chksum, filesJSON); err != nil {
		return fmt.Errorf("upsert artifact: %w", err)
	}
	return nil
}

func (r *artifactRepo) Get(ctx context.Context, chksum string) (*domain.Artifact, error) {
	query := `
		SELECT chksum, first_seen, last_imported, files
		FROM artifacts
		WHERE chksum = $1
	`
	a, err := scanArtifact(r.pool.QueryRow(ctx, query, chksum))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("get artifact: %w", err)
	}
	return a, nil
}

func (r *artifactRepo) GetAlias(ctx context.Context, chksum string) (*domain.Alias, error) {
	query := `
		SELECT alias_from, alias_to
		FROM aliases
		WHERE alias_from = $1
	`
	alias := &domain.Alias{}
	err := r.pool.QueryRow(ctx, query, chksum).Scan(&alias.From, &alias.To)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAliasNotFound
		}
		return nil, fmt.Errorf("get alias: %w", err)
	}
	return alias, nil
}

func (r *artifactRepo) InsertAlias(ctx context.Context, alias *domain.Alias) error {
	query := `
		INSERT INTO aliases (alias_from, alias_to)
		VALUES ($1, $2)
		ON CONFLICT (alias_from) DO UPDATE
		SET alias_to = EXCLUDED.alias_to
	`
	if _, err := r.pool.Exec(ctx, query, alias.From, alias.To); err != nil {
		return fmt.Errorf("insert alias: %w", err)
	}
	return nil
}

func scanArtifact(row pgx.Row) (*domain.Artifact, error) {
	a := &domain.Artifact{}
	var filesJSON []byte

	if err := row.Scan(&a.Chksum, &a.FirstSeen, &a.LastImported, &filesJSON); err != nil {
		return nil, err
	}

	if len(filesJSON) > 0 {
		if err := json.Unmarshal(filesJSON, &a.Files); err != nil {
			return nil, fmt.Errorf("unmarshal file listing: %w", err)
		}
	}
	return a, nil
}
