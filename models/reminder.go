package models

import (
	"errors"
	"fmt"
	"time"
)

// ReminderKind selects which dispatch job owns a reminder and which
// template and finalization policy apply to it.
type ReminderKind string

const (
	ReminderKindBusinessCase ReminderKind = "BUSINESS_CASE"
	ReminderKindTransport    ReminderKind = "TRANSPORT"
)

// TransportEventType distinguishes the two tracked transport events.
type TransportEventType string

const (
	TransportEventLoading   TransportEventType = "loading"
	TransportEventUnloading TransportEventType = "unloading"
)

var (
	ErrMissingUserEmail   = errors.New("reminder has no userEmail")
	ErrMissingReminderAt  = errors.New("reminder has no reminderDateTime")
	ErrMissingParentID    = errors.New("reminder has no parent record id for its kind")
	ErrUnknownKind        = errors.New("unknown reminder kind")
	ErrMissingEventTime   = errors.New("transport reminder has no event dateTime")
	ErrInvalidEventType   = errors.New("transport reminder has an invalid event type")
	ErrConflictingParents = errors.New("reminder populates both businessCaseId and transportId")
)

// ContactPerson is the optional contact embedded in business case reminders.
type ContactPerson struct {
	FirstName string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"lastName,omitempty" json:"lastName,omitempty"`
}

// Reminder is a time-triggered notification request. BUSINESS_CASE reminders
// persist after delivery with Sent=true; TRANSPORT reminders are deleted on
// delivery, so their existence alone means "not yet delivered".
type Reminder struct {
	ID               string       `bson:"id" json:"id"`
	Kind             ReminderKind `bson:"kind" json:"kind"`
	ReminderDateTime time.Time    `bson:"reminderDateTime" json:"reminderDateTime"`
	Sent             bool         `bson:"sent" json:"sent"`
	SentAt           *time.Time   `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	UserEmail        string       `bson:"userEmail" json:"userEmail"`
	CreatedAt        time.Time    `bson:"createdAt" json:"createdAt"`

	// Claim bookkeeping, written only by the dispatcher. A claim older than
	// the configured staleness window is treated as abandoned.
	ClaimToken       string     `bson:"claimToken,omitempty" json:"-"`
	ClaimedAt        *time.Time `bson:"claimedAt,omitempty" json:"-"`
	DeliveryAttempts int        `bson:"deliveryAttempts,omitempty" json:"-"`

	// BUSINESS_CASE payload.
	BusinessCaseID string         `bson:"businessCaseId,omitempty" json:"businessCaseId,omitempty"`
	CompanyName    string         `bson:"companyName,omitempty" json:"companyName,omitempty"`
	ContactPerson  *ContactPerson `bson:"contactPerson,omitempty" json:"contactPerson,omitempty"`

	// TRANSPORT payload. DateTime is the loading/unloading time itself,
	// distinct from ReminderDateTime.
	TransportID string             `bson:"transportId,omitempty" json:"transportId,omitempty"`
	OrderNumber string             `bson:"orderNumber,omitempty" json:"orderNumber,omitempty"`
	Type        TransportEventType `bson:"type,omitempty" json:"type,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	DateTime    *time.Time         `bson:"dateTime,omitempty" json:"dateTime,omitempty"`

	// Free-text note, optional for both kinds.
	ReminderNote string `bson:"reminderNote,omitempty" json:"reminderNote,omitempty"`
}

// ParentID returns the id of the record the reminder belongs to.
func (r *Reminder) ParentID() string {
	if r.Kind == ReminderKindTransport {
		return r.TransportID
	}
	return r.BusinessCaseID
}

// Due reports whether the reminder has become due at the given instant.
func (r *Reminder) Due(now time.Time) bool {
	return !r.ReminderDateTime.After(now)
}

// Validate checks the fields required for dispatching. Optional fields
// (note, contact person) are not checked; the renderer substitutes
// placeholders for those.
func (r *Reminder) Validate() error {
	if r.UserEmail == "" {
		return fmt.Errorf("reminder %s: %w", r.ID, ErrMissingUserEmail)
	}
	if r.ReminderDateTime.IsZero() {
		return fmt.Errorf("reminder %s: %w", r.ID, ErrMissingReminderAt)
	}
	if r.BusinessCaseID != "" && r.TransportID != "" {
		return fmt.Errorf("reminder %s: %w", r.ID, ErrConflictingParents)
	}
	switch r.Kind {
	case ReminderKindBusinessCase:
		if r.BusinessCaseID == "" {
			return fmt.Errorf("reminder %s: %w", r.ID, ErrMissingParentID)
		}
	case ReminderKindTransport:
		if r.TransportID == "" {
			return fmt.Errorf("reminder %s: %w", r.ID, ErrMissingParentID)
		}
		if r.DateTime == nil || r.DateTime.IsZero() {
			return fmt.Errorf("reminder %s: %w", r.ID, ErrMissingEventTime)
		}
		if r.Type != TransportEventLoading && r.Type != TransportEventUnloading {
			return fmt.Errorf("reminder %s: %w", r.ID, ErrInvalidEventType)
		}
	default:
		return fmt.Errorf("reminder %s: %w: %q", r.ID, ErrUnknownKind, r.Kind)
	}
	return nil
}
