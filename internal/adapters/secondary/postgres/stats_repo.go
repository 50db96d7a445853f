package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

type statsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) ports.StatsRepository {
	return &statsRepo{pool: pool}
}

func (r *statsRepo) ImportDates(ctx context.Context) ([]domain.DateCount, error) {
	query := `
		SELECT to_char(first_seen, 'YYYY-MM-DD') AS day, COUNT(*) AS count
		FROM artifacts
		GROUP BY day
		ORDER BY day DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query import dates: %w", err)
	}
	defer rows.Close()

	var dates []domain.DateCount
	for rows.Next() {
		var dc domain.DateCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan import date row: %w", err)
		}
		dates = append(dates, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import date rows: %w", err)
	}
	return dates, nil
}

func (r *statsRepo) PendingTasks(ctx context.Context) ([]domain.KindCount, error) {
	query := `
		SELECT kind, COUNT(*) AS count
		FROM tasks
		GROUP BY kind
		ORDER BY kind ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query pending tasks: %w", err)
	}
	defer rows.Close()

	var kinds []domain.KindCount
	for rows.Next() {
		var kc domain.KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, fmt.Errorf("scan pending task row: %w", err)
		}
		kinds = append(kinds, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending task rows: %w", err)
	}
	return kinds, nil
}
