package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"source-registry-service/internal/archive"
	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

const defaultBatchSize = 32

type TaskService struct {
	tasks   ports.TaskRepository
	ingest  *IngestService
	fetcher ports.Fetcher
	batch   int
}

func NewTaskService(tasks ports.TaskRepository, ingest *IngestService, fetcher ports.Fetcher, batch int) *TaskService {
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return &TaskService{tasks: tasks, ingest: ingest, fetcher: fetcher, batch: batch}
}

// QueueTar schedules a tarball download. A task for the same URL that is
// already queued comes back as domain.ErrTaskExists.
func (s *TaskService) QueueTar(ctx context.Context, url, vendor, pkg, version, compression string) error {
	if _, err := archive.ParseCompression(compression); err != nil {
		return err
	}
	task := &domain.Task{
		ID:   uuid.New(),
		Key:  domain.TaskKey(domain.TaskFetchTar, url),
		Kind: domain.TaskFetchTar,
		Data: domain.TaskData{
			URL:         url,
			Vendor:      vendor,
			Package:     pkg,
			Version:     version,
			Compression: compression,
		},
	}
	return s.tasks.Insert(ctx, task)
}

// QueueRPM schedules an rpm download.
func (s *TaskService) QueueRPM(ctx context.Context, url, vendor, pkg, version string) error {
	task := &domain.Task{
		ID:   uuid.New(),
		Key:  domain.TaskKey(domain.TaskFetchRPM, url),
		Kind: domain.TaskFetchRPM,
		Data: domain.TaskData{
			URL:     url,
			Vendor:  vendor,
			Package: pkg,
			Version: version,
		},
	}
	return s.tasks.Insert(ctx, task)
}

// ProcessBatch takes one batch off the queue and runs it. Failed tasks stay
// queued for a later round; the count of completed tasks is returned.
func (s *TaskService) ProcessBatch(ctx context.Context) (int, error) {
	tasks, err := s.tasks.FetchBatch(ctx, s.batch)
	if err != nil {
		return 0, err
	}

	done := 0
	for i := range tasks {
		task := &tasks[i]
		log := logrus.WithFields(logrus.Fields{
			"task_id": task.ID,
			"kind":    task.Kind,
			"url":     task.Data.URL,
		})

		if err := s.process(ctx, task); err != nil {
			log.WithError(err).Error("Task failed")
			if ctx.Err() != nil {
				return done, ctx.Err()
			}
			continue
		}
		if err := s.tasks.Delete(ctx, task.ID); err != nil {
			log.WithError(err).Error("Failed to delete finished task")
			continue
		}
		log.Info("Task finished")
		done++
	}
	return done, nil
}

func (s *TaskService) process(ctx context.Context, task *domain.Task) error {
	body, err := s.fetcher.Fetch(ctx, task.Data.URL)
	if err != nil {
		return err
	}
	defer body.Close()

	switch task.Kind {
	case domain.TaskFetchTar:
		compression, err := archive.ParseCompression(task.Data.Compression)
		if err != nil {
			return err
		}
		res, err := s.ingest.ImportTar(ctx, body, compression)
		if err != nil {
			return err
		}
		if task.Data.Vendor != "" {
			ref := &domain.Ref{
				Chksum:  res.Outer.SHA256,
				Vendor:  task.Data.Vendor,
				Package: task.Data.Package,
				Version: task.Data.Version,
			}
			return s.ingest.RecordRef(ctx, ref)
		}
		return nil
	case domain.TaskFetchRPM:
		return s.ingest.ImportRPM(ctx, body, task.Data.Vendor, task.Data.Package, task.Data.Version)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidTaskKind, string(task.Kind))
	}
}

// Run drains the queue until the context ends, sleeping while it is empty.
func (s *TaskService) Run(ctx context.Context, interval time.Duration) error {
	for {
		done, err := s.ProcessBatch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logrus.WithError(err).Error("Failed to process task batch")
		}

		// an empty or fully failing batch means there is nothing useful
		// to retry right now
		if done == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
	}
}
