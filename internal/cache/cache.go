package cache

import (
	"context"
	"time"
)

// ReportCache stores serialized report payloads keyed per user and query.
// Keys follow the form "report:{userID}:{kind}:{params}" so a whole user's
// reports can be dropped with InvalidatePrefix after a write that changes
// the underlying numbers.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// NoopReportCache disables caching. Used in tests and when Redis is absent.
type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (NoopReportCache) InvalidatePrefix(_ context.Context, _ string) error {
	return nil
}
