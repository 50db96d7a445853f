package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

type taskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) ports.TaskRepository {
	return &taskRepo{pool: pool}
}

func (r *taskRepo) Insert(ctx context.Context, task *domain.Task) error {
	dataJSON, err := json.Marshal(task.Data)
	if err != nil {
		return fmt.Errorf("marshal task data: %w", err)
	}

	query := `
		INSERT INTO tasks (id, key, kind, data, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (key) DO NOTHING
	`
	result, err := r.pool.Exec(ctx, query, task.ID, task.Key, string(task.Kind), dataJSON)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTaskExists
	}
	return nil
}

func (r *taskRepo) FetchBatch(ctx context.Context, limit int) ([]domain.Task, error) {
	// imports are idempotent, so workers racing on the same batch is fine
	query := `
		SELECT id, key, kind, data, created_at
		FROM tasks
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch task batch: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		var dataJSON []byte
		if err := rows.Scan(&task.ID, &task.Key, &task.Kind, &dataJSON, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		if err := json.Unmarshal(dataJSON, &task.Data); err != nil {
			return nil, fmt.Errorf("unmarshal task data: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return tasks, nil
}

func (r *taskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
