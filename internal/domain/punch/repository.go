package punch

import (
	"context"
	"time"
)

// Source reads the daily view produced by the ingestion pipeline.
//
// Both methods may return a non-nil slice together with an
// *IncompleteUpstreamDataError when only part of the range could be read.
type Source interface {
	GetDailyPunches(ctx context.Context, legajo string, start, end time.Time) ([]DailyPunchRecord, error)
	GetDailyPunchesForAll(ctx context.Context, start, end time.Time) ([]DailyPunchRecord, error)
}
