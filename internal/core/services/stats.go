package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

const (
	statsCacheKey = "stats:overview"
	statsCacheTTL = time.Minute
)

type StatsService struct {
	stats ports.StatsRepository
	cache ports.Cache
}

// NewStatsService wires the stats page. The cache is optional; pass nil to
// aggregate from the database on every request.
func NewStatsService(stats ports.StatsRepository, cache ports.Cache) *StatsService {
	return &StatsService{stats: stats, cache: cache}
}

// Overview aggregates registry-wide counters. Both queries scan whole
// tables, so they run concurrently and the result is cached briefly.
func (s *StatsService) Overview(ctx context.Context) (*domain.StatsOverview, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey); err == nil {
			var overview domain.StatsOverview
			if err := json.Unmarshal(raw, &overview); err == nil {
				return &overview, nil
			}
		}
	}

	var (
		dates   []domain.DateCount
		pending []domain.KindCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dates, err = s.stats.ImportDates(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.stats.PendingTasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int64
	for _, dc := range dates {
		total += dc.Count
	}

	overview := &domain.StatsOverview{
		ImportDates:    dates,
		TotalArtifacts: total,
		PendingTasks:   pending,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(overview); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL); err != nil {
				logrus.WithError(err).Debug("Failed to cache stats overview")
			}
		}
	}
	return overview, nil
}
