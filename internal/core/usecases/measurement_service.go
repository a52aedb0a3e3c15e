package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/emissiond/emissiond/internal/core/domain"
	"github.com/emissiond/emissiond/internal/core/ports"
)

// epochKey holds the cache generation counter. Every cached response key
// embeds the current value, so bumping it orphans all cached responses at
// once instead of scanning for keys to delete.
const epochKey = "emissions:epoch"

// MeasurementService answers point and daily-average queries with a
// read-through cache in front of the store.
type MeasurementService struct {
	measurements ports.MeasurementRepository
	cache        ports.CacheService
	ttl          int
}

// NewMeasurementService creates a new MeasurementService. ttlSeconds
// bounds how long cached responses outlive an unnoticed invalidation.
func NewMeasurementService(measurements ports.MeasurementRepository, cache ports.CacheService, ttlSeconds int) *MeasurementService {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &MeasurementService{measurements: measurements, cache: cache, ttl: ttlSeconds}
}

// Points returns the readings inside the area as a GeoJSON feature collection.
func (s *MeasurementService) Points(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) (*domain.FeatureCollection, error) {
	cacheKey := s.queryKey(ctx, "points", area, tr, page)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var fc domain.FeatureCollection
			if err := json.Unmarshal(data, &fc); err == nil {
				if fc.Features == nil {
					fc.Features = []domain.Feature{}
				}
				return &fc, nil
			}
		}
	}

	points, err := s.measurements.Within(ctx, area, tr, page)
	if err != nil {
		return nil, err
	}
	fc := domain.NewFeatureCollection(points)

	if s.cache != nil {
		if data, err := json.Marshal(fc); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.ttl)
		}
	}

	return &fc, nil
}

// DailyAverages returns the per-day mean of readings inside the area.
func (s *MeasurementService) DailyAverages(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.DailyAverage, error) {
	cacheKey := s.queryKey(ctx, "average", area, tr, page)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var days []domain.DailyAverage
			if err := json.Unmarshal(data, &days); err == nil {
				return days, nil
			}
		}
	}

	days, err := s.measurements.DailyAverages(ctx, area, tr, page)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []domain.DailyAverage{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(days); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.ttl)
		}
	}

	return days, nil
}

// InvalidateCache advances the cache epoch so no cached response built from
// the previous store contents is served again.
func (s *MeasurementService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	_, err := s.cache.Incr(ctx, epochKey)
	return err
}

func (s *MeasurementService) queryKey(ctx context.Context, op string, area domain.Area, tr domain.TimeRange, page domain.Page) string {
	return cacheKey(currentEpoch(ctx, s.cache), op, area, tr, page)
}

// currentEpoch reads the cache generation. A missing or unreadable key
// counts as generation zero.
func currentEpoch(ctx context.Context, cache ports.CacheService) int64 {
	if cache == nil {
		return 0
	}
	data, err := cache.Get(ctx, epochKey)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// cacheKey builds a stable key from the query parameters.
func cacheKey(epoch int64, op string, area domain.Area, tr domain.TimeRange, page domain.Page) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "emissions:%d:%s:", epoch, op)
	switch area.Kind {
	case domain.AreaRectangle:
		b := area.Box
		fmt.Fprintf(&sb, "rect:%g,%g,%g,%g", b.West, b.South, b.East, b.North)
	case domain.AreaPolygon:
		sb.WriteString("poly:")
		for _, p := range area.Ring {
			fmt.Fprintf(&sb, "%g,%g;", p.Lon, p.Lat)
		}
	default:
		sb.WriteString("all")
	}
	if tr.Begin != nil {
		fmt.Fprintf(&sb, ":b=%d", tr.Begin.Unix())
	}
	if tr.End != nil {
		fmt.Fprintf(&sb, ":e=%d", tr.End.Unix())
	}
	if page.Limit != nil {
		fmt.Fprintf(&sb, ":l=%d", *page.Limit)
	}
	if page.Offset != nil {
		fmt.Fprintf(&sb, ":o=%d", *page.Offset)
	}
	return sb.String()
}
