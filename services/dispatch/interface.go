package dispatch

import (
	"context"
	"time"
)

// Stats summarizes one dispatch tick, for logging only — the scheduler
// trigger never branches on it.
type Stats struct {
	Due     int // reminders returned by the poll
	Sent    int // delivered and finalized
	Skipped int // claim lost to another invocation
	Invalid int // missing required fields, left unclaimed
	Failed  int // render or send failure, claim released
}

// DispatchService runs one bounded poll-claim-send cycle. It never panics
// and never returns an error: every failure is contained and logged, so the
// trigger always observes a completed run.
type DispatchService interface {
	RunOnce(ctx context.Context, now time.Time) Stats
}
