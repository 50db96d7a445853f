package testutil

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"source-registry-service/internal/core/domain"
)

// MockArtifactRepo is a mock of ArtifactRepository.
type MockArtifactRepo struct {
	mock.Mock
}

func (m *MockArtifactRepo) Upsert(ctx context.Context, artifact *domain.Artifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}

func (m *MockArtifactRepo) Get(ctx context.Context, chksum string) (*domain.Artifact, error) {
	args := m.Called(ctx, chksum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func (m *MockArtifactRepo) GetAlias(ctx context.Context, chksum string) (*domain.Alias, error) {
	args := m.Called(ctx, chksum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alias), args.Error(1)
}

func (m *MockArtifactRepo) InsertAlias(ctx context.Context, alias *domain.Alias) error {
	args := m.Called(ctx, alias)
	return args.Error(0)
}

// MockRefRepo is a mock of RefRepository.
type MockRefRepo struct {
	mock.Mock
}

func (m *MockRefRepo) Insert(ctx context.Context, ref *domain.Ref) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockRefRepo) ListForArtifact(ctx context.Context, chksum string) ([]domain.Ref, error) {
	args := m.Called(ctx, chksum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ref), args.Error(1)
}

func (m *MockRefRepo) Search(ctx context.Context, pattern string, limit int) ([]domain.Ref, error) {
	args := m.Called(ctx, pattern, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ref), args.Error(1)
}

// MockSbomRepo is a mock of SbomRepository.
type MockSbomRepo struct {
	mock.Mock
}

func (m *MockSbomRepo) Insert(ctx context.Context, sbom *domain.Sbom) error {
	args := m.Called(ctx, sbom)
	return args.Error(0)
}

func (m *MockSbomRepo) Get(ctx context.Context, chksum string) (*domain.Sbom, error) {
	args := m.Called(ctx, chksum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sbom), args.Error(1)
}

func (m *MockSbomRepo) InsertRef(ctx context.Context, ref *domain.SbomRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockSbomRepo) ListRefsForArchive(ctx context.Context, archiveChksum string) ([]domain.SbomRef, error) {
	args := m.Called(ctx, archiveChksum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SbomRef), args.Error(1)
}

func (m *MockSbomRepo) ListRefsForSbom(ctx context.Context, sbomChksum string) ([]domain.SbomRef, error) {
	args := m.Called(ctx, sbomChksum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SbomRef), args.Error(1)
}

// MockTaskRepo is a mock of TaskRepository.
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Insert(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepo) FetchBatch(ctx context.Context, limit int) ([]domain.Task, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatsRepo is a mock of StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) ImportDates(ctx context.Context) ([]domain.DateCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DateCount), args.Error(1)
}

func (m *MockStatsRepo) PendingTasks(ctx context.Context) ([]domain.KindCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KindCount), args.Error(1)
}

// MockCache is a mock of Cache.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// MockFetcher is a mock of Fetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
