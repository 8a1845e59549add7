package reconciliation

import (
	"context"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
)

// Engine classifies (employee, day) pairs.
type Engine interface {
	// Classify resolves one day. A nil record means no punches; a nil jornada
	// resolves the employee's configuration or the system default.
	Classify(ctx context.Context, legajo string, day time.Time, record *punch.DailyPunchRecord, jornadaHours *int) (ClassifiedDay, error)

	// ClassifyRange returns one entry per day in [start, end], ascending.
	ClassifyRange(ctx context.Context, legajo string, start, end time.Time) ([]ClassifiedDay, error)

	// ClassifyDay classifies every listed employee on day.
	ClassifyDay(ctx context.Context, day time.Time, legajos []string) ([]ClassifiedDay, error)

	// ClassifyPopulationByDay classifies every listed employee on every day
	// of [start, end], grouped by day in ascending order.
	ClassifyPopulationByDay(ctx context.Context, legajos []string, start, end time.Time) ([][]ClassifiedDay, error)

	// ClassifyPopulationByEmployee is ClassifyPopulationByDay keyed by legajo.
	ClassifyPopulationByEmployee(ctx context.Context, legajos []string, start, end time.Time) (map[string][]ClassifiedDay, error)
}
