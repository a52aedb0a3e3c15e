package usecases

import (
	"context"
	"encoding/json"

	"github.com/emissiond/emissiond/internal/core/domain"
	"github.com/emissiond/emissiond/internal/core/ports"
)

// StatisticsService answers per-day aggregate queries. It shares the
// epoch-keyed cache layout with MeasurementService.
type StatisticsService struct {
	measurements ports.MeasurementRepository
	cache        ports.CacheService
	ttl          int
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(measurements ports.MeasurementRepository, cache ports.CacheService, ttlSeconds int) *StatisticsService {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &StatisticsService{measurements: measurements, cache: cache, ttl: ttlSeconds}
}

// Daily returns per-day aggregates of the readings inside the area.
func (s *StatisticsService) Daily(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.DailyStatistic, error) {
	cacheKey := cacheKey(currentEpoch(ctx, s.cache), "statistics", area, tr, page)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var days []domain.DailyStatistic
			if err := json.Unmarshal(data, &days); err == nil {
				return days, nil
			}
		}
	}

	days, err := s.measurements.DailyStatistics(ctx, area, tr, page)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []domain.DailyStatistic{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(days); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.ttl)
		}
	}

	return days, nil
}
