package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransportReminder() Reminder {
	event := time.Now().Add(2 * time.Hour)
	return Reminder{
		ID:               "t1",
		Kind:             ReminderKindTransport,
		ReminderDateTime: time.Now(),
		UserEmail:        "dispo@firma.sk",
		TransportID:      "T1",
		OrderNumber:      "123",
		Type:             TransportEventLoading,
		Address:          "Bratislava",
		DateTime:         &event,
	}
}

func validBusinessCaseReminder() Reminder {
	return Reminder{
		ID:               "b1",
		Kind:             ReminderKindBusinessCase,
		ReminderDateTime: time.Now(),
		UserEmail:        "dispo@firma.sk",
		BusinessCaseID:   "BC1",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		reminder func() Reminder
		wantErr  error
	}{
		{"valid transport", validTransportReminder, nil},
		{"valid business case", validBusinessCaseReminder, nil},
		{
			"empty email",
			func() Reminder { r := validTransportReminder(); r.UserEmail = ""; return r },
			ErrMissingUserEmail,
		},
		{
			"zero reminder time",
			func() Reminder { r := validBusinessCaseReminder(); r.ReminderDateTime = time.Time{}; return r },
			ErrMissingReminderAt,
		},
		{
			"business case without parent",
			func() Reminder { r := validBusinessCaseReminder(); r.BusinessCaseID = ""; return r },
			ErrMissingParentID,
		},
		{
			"transport without parent",
			func() Reminder { r := validTransportReminder(); r.TransportID = ""; return r },
			ErrMissingParentID,
		},
		{
			"transport without event time",
			func() Reminder { r := validTransportReminder(); r.DateTime = nil; return r },
			ErrMissingEventTime,
		},
		{
			"transport with bad event type",
			func() Reminder { r := validTransportReminder(); r.Type = "parking"; return r },
			ErrInvalidEventType,
		},
		{
			"both parents populated",
			func() Reminder { r := validTransportReminder(); r.BusinessCaseID = "BC1"; return r },
			ErrConflictingParents,
		},
		{
			"unknown kind",
			func() Reminder { r := validBusinessCaseReminder(); r.Kind = "FLEET"; return r },
			ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.reminder()
			err := r.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDue(t *testing.T) {
	now := time.Now()
	r := validBusinessCaseReminder()

	r.ReminderDateTime = now.Add(-time.Minute)
	assert.True(t, r.Due(now))

	r.ReminderDateTime = now
	assert.True(t, r.Due(now), "a reminder is due exactly at its reminderDateTime")

	r.ReminderDateTime = now.Add(time.Minute)
	assert.False(t, r.Due(now))
}

func TestParentID(t *testing.T) {
	tr := validTransportReminder()
	assert.Equal(t, "T1", tr.ParentID())

	bc := validBusinessCaseReminder()
	assert.Equal(t, "BC1", bc.ParentID())
}

func TestMetricsDateKey(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Bratislava")
	require.NoError(t, err)

	// 23:30 UTC already belongs to the next local calendar day.
	when := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-02", MetricsDateKey(when, loc))
	assert.Equal(t, "2025-06-01", MetricsDateKey(when, time.UTC))
}
