package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"source-registry-service/internal/archive"
	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/testutil"
)

func newTaskService(tasks *testutil.MockTaskRepo, fetcher *testutil.MockFetcher) (*TaskService, *testutil.MockArtifactRepo, *testutil.MockRefRepo) {
	artifacts := new(testutil.MockArtifactRepo)
	refs := new(testutil.MockRefRepo)
	sboms := new(testutil.MockSbomRepo)
	ingest := NewIngestService(artifacts, refs, sboms)
	return NewTaskService(tasks, ingest, fetcher, 0), artifacts, refs
}

func TestQueueTar(t *testing.T) {
	tasks := new(testutil.MockTaskRepo)
	svc, _, _ := newTaskService(tasks, new(testutil.MockFetcher))

	tasks.On("Insert", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
		return task.Kind == domain.TaskFetchTar &&
			task.Key == "fetch-tar:https://example.com/pkg-1.0.tar.gz" &&
			task.Data.Compression == "gz" &&
			task.ID != uuid.Nil
	})).Return(nil)

	err := svc.QueueTar(context.Background(), "https://example.com/pkg-1.0.tar.gz", "fedora", "pkg", "1.0", "gz")
	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestQueueTarDuplicate(t *testing.T) {
	tasks := new(testutil.MockTaskRepo)
	svc, _, _ := newTaskService(tasks, new(testutil.MockFetcher))

	tasks.On("Insert", mock.Anything, mock.Anything).Return(domain.ErrTaskExists)

	err := svc.QueueTar(context.Background(), "https://example.com/pkg.tar", "", "", "", "")
	assert.ErrorIs(t, err, domain.ErrTaskExists)
}

func TestQueueTarBadCompression(t *testing.T) {
	tasks := new(testutil.MockTaskRepo)
	svc, _, _ := newTaskService(tasks, new(testutil.MockFetcher))

	err := svc.QueueTar(context.Background(), "https://example.com/pkg.tar.lzma", "", "", "", "lzma")
	assert.ErrorIs(t, err, domain.ErrUnsupportedCompression)
	tasks.AssertExpectations(t)
}

func TestQueueRPM(t *testing.T) {
	tasks := new(testutil.MockTaskRepo)
	svc, _, _ := newTaskService(tasks, new(testutil.MockFetcher))

	tasks.On("Insert", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
		return task.Kind == domain.TaskFetchRPM &&
			task.Key == "fetch-rpm:https://example.com/pkg-1.0.src.rpm"
	})).Return(nil)

	err := svc.QueueRPM(context.Background(), "https://example.com/pkg-1.0.src.rpm", "fedora", "pkg", "1.0")
	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestProcessBatch(t *testing.T) {
	tasks := new(testutil.MockTaskRepo)
	fetcher := new(testutil.MockFetcher)
	svc, artifacts, refs := newTaskService(tasks, fetcher)

	tarBytes := buildTarball(t, []tarMember{{name: "pkg-1.0/hello.txt", body: []byte("hello world")}})
	want, err := archive.HashReader(bytes.NewReader(tarBytes))
	require.NoError(t, err)

	task := domain.Task{
		ID:   uuid.New(),
		Key:  "fetch-tar:https://example.com/pkg-1.0.tar",
		Kind: domain.TaskFetchTar,
		Data: domain.TaskData{
			URL:     "https://example.com/pkg-1.0.tar",
			Vendor:  "fedora",
			Package: "pkg",
			Version: "1.0",
		},
	}

	tasks.On("FetchBatch", mock.Anything, defaultBatchSize).Return([]domain.Task{task}, nil)
	fetcher.On("Fetch", mock.Anything, task.Data.URL).
		Return(io.NopCloser(bytes.NewReader(tarBytes)), nil)
	artifacts.On("Upsert", mock.Anything, mock.MatchedBy(func(a *domain.Artifact) bool {
		return a.Chksum == want.SHA256
	})).Return(nil)
	refs.On("Insert", mock.Anything, &domain.Ref{
		Chksum:  want.SHA256,
		Vendor:  "fedora",
		Package: "pkg",
		Version: "1.0",
	}).Return(nil)
	tasks.On("Delete", mock.Anything, task.ID).Return(nil)

	done, err := svc.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, done)
	tasks.AssertExpectations(t)
	fetcher.AssertExpectations(t)
	refs.AssertExpectations(t)
}

func TestProcessBatchKeepsFailedTask(t *testing.T) {
	tasks := new(testutil.MockTaskRepo)
	fetcher := new(testutil.MockFetcher)
	svc, _, _ := newTaskService(tasks, fetcher)

	task := domain.Task{
		ID:   uuid.New(),
		Kind: domain.TaskFetchTar,
		Data: domain.TaskData{URL: "https://example.com/gone.tar"},
	}
	tasks.On("FetchBatch", mock.Anything, defaultBatchSize).Return([]domain.Task{task}, nil)
	fetcher.On("Fetch", mock.Anything, task.Data.URL).Return(nil, errors.New("connection refused"))

	// the task is not deleted, so it stays queued for a later round
	done, err := svc.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, done)
	tasks.AssertExpectations(t)
}

func TestRunStopsOnCancel(t *testing.T) {
	tasks := new(testutil.MockTaskRepo)
	svc, _, _ := newTaskService(tasks, new(testutil.MockFetcher))

	tasks.On("FetchBatch", mock.Anything, defaultBatchSize).Return([]domain.Task{}, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Run(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}
