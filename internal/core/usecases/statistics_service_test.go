package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/emissiond/emissiond/internal/core/domain"
	"github.com/emissiond/emissiond/internal/core/usecases"
)

func TestStatisticsService_Daily(t *testing.T) {
	sd := 0.004
	repo := &mockMeasurementRepo{
		dailyStatisticsFn: func(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.DailyStatistic, error) {
			return []domain.DailyStatistic{
				{
					Value: domain.ValueStatistics{Count: 12, Average: 0.028, StdDev: &sd, Min: 0.021, Max: 0.034},
					Time: domain.TimeStatistics{
						Start: time.Date(2019, 2, 10, 3, 12, 0, 0, time.UTC),
						End:   time.Date(2019, 2, 10, 22, 47, 0, 0, time.UTC),
						Day:   "2019-02-10",
					},
				},
			}, nil
		},
	}

	svc := usecases.NewStatisticsService(repo, nil, 0)

	days, err := svc.Daily(context.Background(), domain.UnrestrictedArea(), domain.TimeRange{}, domain.Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if days[0].Value.Count != 12 {
		t.Errorf("expected count 12, got %d", days[0].Value.Count)
	}
	if days[0].Value.StdDev == nil || *days[0].Value.StdDev != 0.004 {
		t.Errorf("unexpected stddev: %v", days[0].Value.StdDev)
	}
}

func TestStatisticsService_Daily_SingleReadingDay(t *testing.T) {
	repo := &mockMeasurementRepo{
		dailyStatisticsFn: func(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.DailyStatistic, error) {
			return []domain.DailyStatistic{
				{Value: domain.ValueStatistics{Count: 1, Average: 0.03, Min: 0.03, Max: 0.03}},
			}, nil
		},
	}

	svc := usecases.NewStatisticsService(repo, nil, 0)

	days, err := svc.Daily(context.Background(), domain.UnrestrictedArea(), domain.TimeRange{}, domain.Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days[0].Value.StdDev != nil {
		t.Error("single-reading day must report no standard deviation")
	}
}

func TestStatisticsService_Daily_EmptyNotNil(t *testing.T) {
	svc := usecases.NewStatisticsService(&mockMeasurementRepo{}, nil, 0)

	days, err := svc.Daily(context.Background(), domain.UnrestrictedArea(), domain.TimeRange{}, domain.Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestStatisticsService_Daily_CacheHit(t *testing.T) {
	calls := 0
	repo := &mockMeasurementRepo{
		dailyStatisticsFn: func(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.DailyStatistic, error) {
			calls++
			return []domain.DailyStatistic{{Value: domain.ValueStatistics{Count: 3}}}, nil
		},
	}
	cache := newMockCache()
	svc := usecases.NewStatisticsService(repo, cache, 60)

	for i := 0; i < 2; i++ {
		if _, err := svc.Daily(context.Background(), domain.UnrestrictedArea(), domain.TimeRange{}, domain.Page{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 repository call, got %d", calls)
	}
}
