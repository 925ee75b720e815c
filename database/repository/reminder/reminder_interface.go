package reminderRepo

import (
	"context"
	"time"

	"github.com/See2Code/transport-platform-sub000/models"
)

// ReminderRepository is the store adapter for reminder documents. All
// cross-invocation coordination goes through the conditional writes below;
// there are no locks anywhere else.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) (string, error)
	GetByID(ctx context.Context, id string) (*models.Reminder, error)
	List(ctx context.Context, kind models.ReminderKind) ([]models.Reminder, error)

	// DueUnsent returns all reminders of the kind with
	// reminderDateTime <= now that have not been finalized. Ordering is
	// unspecified.
	DueUnsent(ctx context.Context, kind models.ReminderKind, now time.Time) ([]models.Reminder, error)

	// Claim attempts the atomic transition "unclaimed (or stale-claimed)
	// -> claimed by token". Returns false when another invocation holds a
	// fresh claim or the reminder was already finalized.
	Claim(ctx context.Context, kind models.ReminderKind, id, token string, now time.Time) (bool, error)

	// Release relinquishes a claim so the next tick can retry. It is a CAS
	// against the claim token: a reminder finalized by someone else in the
	// meantime is left untouched.
	Release(ctx context.Context, id, token string) error

	// MarkSent finalizes a BUSINESS_CASE reminder. Calling it on an
	// already-sent reminder is a no-op success.
	MarkSent(ctx context.Context, id string, sentAt time.Time) error

	// Delete finalizes a TRANSPORT reminder. Deleting an already-deleted id
	// is treated as success.
	Delete(ctx context.Context, id string) error

	// DeleteByParent removes all reminders of the kind attached to a parent
	// record; the edit flow recreates reminders wholesale.
	DeleteByParent(ctx context.Context, kind models.ReminderKind, parentID string) (int64, error)
}
