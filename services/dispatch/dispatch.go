package dispatch

import (
	"context"
	"time"

	metricsRepo "github.com/See2Code/transport-platform-sub000/database/repository/metrics"
	reminderRepo "github.com/See2Code/transport-platform-sub000/database/repository/reminder"
	"github.com/See2Code/transport-platform-sub000/models"
	"github.com/See2Code/transport-platform-sub000/services/mailer"
	"github.com/See2Code/transport-platform-sub000/services/templates"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job is the dispatch job for one reminder kind. It is stateless across
// invocations: every run polls the store, and the store's conditional writes
// are the only coordination between overlapping runs.
type Job struct {
	policy   KindPolicy
	repo     reminderRepo.ReminderRepository
	metrics  metricsRepo.MetricsRepository
	renderer *templates.Renderer
	mailer   mailer.Mailer
	logger   *zap.Logger
}

var _ DispatchService = (*Job)(nil)

func NewJob(
	policy KindPolicy,
	repo reminderRepo.ReminderRepository,
	metrics metricsRepo.MetricsRepository,
	renderer *templates.Renderer,
	m mailer.Mailer,
	logger *zap.Logger,
) *Job {
	return &Job{
		policy:   policy,
		repo:     repo,
		metrics:  metrics,
		renderer: renderer,
		mailer:   m,
		logger:   logger.With(zap.String("kind", string(policy.Kind))),
	}
}

// Kind returns the reminder kind this job owns.
func (j *Job) Kind() models.ReminderKind {
	return j.policy.Kind
}

// RunOnce executes one poll-claim-render-send-finalize cycle. A failure on
// one reminder never aborts the rest of the batch; a failure of the batch
// read itself ends the tick cleanly with nothing changed.
func (j *Job) RunOnce(ctx context.Context, now time.Time) (stats Stats) {
	defer func() {
		if r := recover(); r != nil {
			// The trigger must always see a completed run.
			j.logger.Error("dispatch tick panicked", zap.Any("panic", r))
		}
	}()

	due, err := j.repo.DueUnsent(ctx, j.policy.Kind, now)
	if err != nil {
		j.logger.Error("failed to read due reminders, aborting tick", zap.Error(err))
		return stats
	}
	stats.Due = len(due)
	if len(due) == 0 {
		return stats
	}

	for i := range due {
		if ctx.Err() != nil {
			// Tick deadline hit; unfinalized reminders stay eligible.
			j.logger.Warn("tick deadline reached, abandoning remaining reminders",
				zap.Int("remaining", len(due)-i))
			return stats
		}
		j.processOne(ctx, &due[i], now, &stats)
	}

	if stats.Sent > 0 || stats.Failed > 0 || stats.Invalid > 0 {
		j.logger.Info("dispatch tick completed",
			zap.Int("due", stats.Due),
			zap.Int("sent", stats.Sent),
			zap.Int("skipped", stats.Skipped),
			zap.Int("invalid", stats.Invalid),
			zap.Int("failed", stats.Failed))
	}
	return stats
}

func (j *Job) processOne(ctx context.Context, reminder *models.Reminder, now time.Time, stats *Stats) {
	log := j.logger.With(
		zap.String("reminderId", reminder.ID),
		zap.String("parentId", reminder.ParentID()))

	// Data errors leave the reminder unclaimed so an operator can fix it;
	// claiming here would orphan it forever.
	if err := reminder.Validate(); err != nil {
		stats.Invalid++
		log.Error("reminder has invalid data, leaving unclaimed", zap.Error(err))
		return
	}

	token := uuid.New().String()
	claimed, err := j.repo.Claim(ctx, j.policy.Kind, reminder.ID, token, now)
	if err != nil {
		stats.Failed++
		log.Error("claim attempt failed", zap.Error(err))
		return
	}
	if !claimed {
		// Lost the race to an overlapping invocation; expected, not an error.
		stats.Skipped++
		return
	}

	subject, html, err := j.renderer.Render(reminder)
	if err != nil {
		stats.Failed++
		j.release(ctx, reminder.ID, token, log)
		log.Error("failed to render reminder e-mail", zap.Error(err))
		return
	}

	if err := j.mailer.Send(ctx, reminder.UserEmail, subject, html); err != nil {
		stats.Failed++
		j.release(ctx, reminder.ID, token, log)
		log.Error("failed to send reminder e-mail",
			zap.String("recipient", reminder.UserEmail),
			zap.String("subject", subject),
			zap.Error(err))
		return
	}

	if err := j.policy.Finalize(ctx, j.repo, reminder.ID, now); err != nil {
		// The e-mail is out. Releasing now would re-send on the next tick,
		// so the claim is left to expire through the staleness window.
		stats.Failed++
		log.Error("e-mail sent but finalize failed", zap.Error(err))
		return
	}
	stats.Sent++
	log.Info("reminder delivered", zap.String("recipient", reminder.UserEmail))

	// Best effort: a metrics failure never affects reminder state.
	if err := j.metrics.Increment(ctx, j.policy.Kind, now); err != nil {
		log.Warn("failed to record daily metrics", zap.Error(err))
	}
}

func (j *Job) release(ctx context.Context, id, token string, log *zap.Logger) {
	if err := j.repo.Release(ctx, id, token); err != nil {
		// The claim will still expire through the staleness window.
		log.Warn("failed to release claim", zap.Error(err))
	}
}
