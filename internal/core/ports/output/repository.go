package ports

import (
	"context"

	"github.com/google/uuid"

	"source-registry-service/internal/core/domain"
)

type ArtifactRepository interface {
	// Upsert inserts the artifact or, when the checksum is already known,
	// refreshes last_imported and the file listing.
	Upsert(ctx context.Context, artifact *domain.Artifact) error
	Get(ctx context.Context, chksum string) (*domain.Artifact, error)
	GetAlias(ctx context.Context, chksum string) (*domain.Alias, error)
	InsertAlias(ctx context.Context, alias *domain.Alias) error
}

type RefRepository interface {
	Insert(ctx context.Context, ref *domain.Ref) error
	// ListForArtifact returns refs attached to the checksum itself or to
	// any alias pointing at it.
	ListForArtifact(ctx context.Context, chksum string) ([]domain.Ref, error)
	Search(ctx context.Context, pattern string, limit int) ([]domain.Ref, error)
}

type SbomRepository interface {
	Insert(ctx context.Context, sbom *domain.Sbom) error
	Get(ctx context.Context, chksum string) (*domain.Sbom, error)
	InsertRef(ctx context.Context, ref *domain.SbomRef) error
	ListRefsForArchive(ctx context.Context, archiveChksum string) ([]domain.SbomRef, error)
	ListRefsForSbom(ctx context.Context, sbomChksum string) ([]domain.SbomRef, error)
}

type TaskRepository interface {
	// Insert queues a task. A task with the same key already queued is
	// reported as domain.ErrTaskExists.
	Insert(ctx context.Context, task *domain.Task) error
	FetchBatch(ctx context.Context, limit int) ([]domain.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type StatsRepository interface {
	ImportDates(ctx context.Context) ([]domain.DateCount, error)
	PendingTasks(ctx context.Context) ([]domain.KindCount, error)
}
