package cache

import (
	"context"
	"time"

	"lubewash/backend/internal/report"
)

type ReportCache interface {
	Get(ctx context.Context, key string) (*report.DailyTotals, bool, error)
	Set(ctx context.Context, key string, value *report.DailyTotals, ttl time.Duration) error
}

type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) (*report.DailyTotals, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ *report.DailyTotals, _ time.Duration) error {
	return nil
}
