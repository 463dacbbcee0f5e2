package masterdata

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/triple-tgg/sams-sub001/internal/cache"
	"github.com/triple-tgg/sams-sub001/internal/db"
	"github.com/triple-tgg/sams-sub001/internal/logger"
	"github.com/triple-tgg/sams-sub001/internal/model"
)

// Service serves the five option lists, fronted by a short-TTL cache.
// Freshness within a running import session is not guaranteed; sessions
// pin the set they fetched at open time.
type Service struct {
	repo  db.Repository
	cache *cache.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewService(repo db.Repository, c *cache.Cache, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		log:   logger.With("masterdata"),
	}
}

// Options returns the full option set, from cache when fresh.
func (s *Service) Options(ctx context.Context) (model.OptionSet, error) {
	var options model.OptionSet

	if s.cache != nil {
		hit, err := s.cache.GetJSON(ctx, cache.OptionSetKey, &options)
		if err != nil {
			s.log.Warn().Err(err).Msg("Master data cache read failed")
		} else if hit {
			return options, nil
		}
	}

	var err error
	if options.Airlines, err = s.repo.ListAirlineOptions(ctx); err != nil {
		return options, fmt.Errorf("failed to load airlines: %w", err)
	}
	if options.Stations, err = s.repo.ListStationOptions(ctx); err != nil {
		return options, fmt.Errorf("failed to load stations: %w", err)
	}
	if options.AircraftTypes, err = s.repo.ListAircraftTypeOptions(ctx); err != nil {
		return options, fmt.Errorf("failed to load aircraft types: %w", err)
	}
	if options.Staff, err = s.repo.ListStaffOptions(ctx); err != nil {
		return options, fmt.Errorf("failed to load staff: %w", err)
	}
	if options.CheckStatuses, err = s.repo.ListCheckStatusOptions(ctx); err != nil {
		return options, fmt.Errorf("failed to load check statuses: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.OptionSetKey, options, s.ttl); err != nil {
			s.log.Warn().Err(err).Msg("Master data cache write failed")
		}
	}
	return options, nil
}
