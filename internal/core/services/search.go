package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"

	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

const (
	searchLimit    = 150
	searchCacheTTL = 10 * time.Second
)

type RefService struct {
	refs  ports.RefRepository
	cache ports.Cache
}

// NewRefService wires the ref search. The cache is optional; pass nil to
// go straight to the database.
func NewRefService(refs ports.RefRepository, cache ports.Cache) *RefService {
	return &RefService{refs: refs, cache: cache}
}

// Search matches package names by prefix. Wildcard characters in the query
// are stripped so users cannot widen the pattern themselves.
func (s *RefService) Search(ctx context.Context, query string) ([]domain.Ref, error) {
	pattern := strings.Map(func(r rune) rune {
		if r == '%' || r == '_' {
			return -1
		}
		return r
	}, query) + "%"

	cacheKey := "search:" + pattern
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			var refs []domain.Ref
			if err := json.Unmarshal(raw, &refs); err == nil {
				return refs, nil
			}
		}
	}

	refs, err := s.refs.Search(ctx, pattern, searchLimit)
	if err != nil {
		return nil, err
	}
	orderRefs(refs)

	if s.cache != nil {
		if raw, err := json.Marshal(refs); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, searchCacheTTL); err != nil {
				logrus.WithError(err).Debug("Failed to cache search results")
			}
		}
	}
	return refs, nil
}

// orderRefs sorts by package name, then newest version first. Versions that
// parse as semver compare semantically, everything else falls back to plain
// string order.
func orderRefs(refs []domain.Ref) {
	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].Package != refs[j].Package {
			return refs[i].Package < refs[j].Package
		}
		if refs[i].Version != refs[j].Version {
			vi, errI := semver.NewVersion(refs[i].Version)
			vj, errJ := semver.NewVersion(refs[j].Version)
			if errI == nil && errJ == nil {
				return vi.GreaterThan(vj)
			}
			return refs[i].Version > refs[j].Version
		}
		return refs[i].Filename < refs[j].Filename
	})
}
