package metricsRepo

import (
	"context"
	"time"

	"github.com/See2Code/transport-platform-sub000/models"
)

// MetricsRepository records per-day notification counters. All writes are
// merges: safe to repeat and safe to interleave with the hourly initializer.
type MetricsRepository interface {
	// Increment adds one to the counter of the kind on the day-document for
	// when's calendar date, creating the document if absent.
	Increment(ctx context.Context, kind models.ReminderKind, when time.Time) error

	// InitializeDay guarantees the day-document exists. Existing counters
	// are never clobbered; only the timestamp is written unconditionally.
	InitializeDay(ctx context.Context, when time.Time) error
}
