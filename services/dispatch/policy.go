package dispatch

import (
	"context"
	"time"

	reminderRepo "github.com/See2Code/transport-platform-sub000/database/repository/reminder"
	"github.com/See2Code/transport-platform-sub000/models"
)

// KindPolicy is the per-kind variation point of the dispatch job: which
// reminders it polls and how a delivered reminder is finalized. Everything
// else — claim, render, send, error isolation — is shared.
type KindPolicy struct {
	Kind     models.ReminderKind
	Finalize func(ctx context.Context, repo reminderRepo.ReminderRepository, id string, now time.Time) error
}

// BusinessCasePolicy keeps delivered reminders around with the sent flag
// flipped, so the back-office can show reminder history.
func BusinessCasePolicy() KindPolicy {
	return KindPolicy{
		Kind: models.ReminderKindBusinessCase,
		Finalize: func(ctx context.Context, repo reminderRepo.ReminderRepository, id string, now time.Time) error {
			return repo.MarkSent(ctx, id, now)
		},
	}
}

// TransportPolicy deletes delivered reminders outright; existence of a
// transport reminder means "not yet delivered".
func TransportPolicy() KindPolicy {
	return KindPolicy{
		Kind: models.ReminderKindTransport,
		Finalize: func(ctx context.Context, repo reminderRepo.ReminderRepository, id string, _ time.Time) error {
			return repo.Delete(ctx, id)
		},
	}
}
