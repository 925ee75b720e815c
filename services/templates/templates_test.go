package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/See2Code/transport-platform-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Bratislava")
	require.NoError(t, err)
	return loc
}

func dueReminder(kind models.ReminderKind) models.Reminder {
	due := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	r := models.Reminder{
		ID:               "r1",
		Kind:             kind,
		ReminderDateTime: due,
		UserEmail:        "dispo@firma.sk",
	}
	switch kind {
	case models.ReminderKindBusinessCase:
		r.BusinessCaseID = "BC42"
		r.CompanyName = "Logistika SK s.r.o."
	case models.ReminderKindTransport:
		event := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
		r.TransportID = "T7"
		r.OrderNumber = "2025/123"
		r.Type = models.TransportEventLoading
		r.Address = "Priemyselná 4, Bratislava"
		r.DateTime = &event
	}
	return r
}

func TestRender_BusinessCase(t *testing.T) {
	r := NewRenderer("https://app.example.com", testLocation(t))
	reminder := dueReminder(models.ReminderKindBusinessCase)
	reminder.ContactPerson = &models.ContactPerson{FirstName: "Peter"}
	reminder.ReminderNote = "zavolať ohľadom ceny"

	subject, html, err := r.Render(&reminder)
	require.NoError(t, err)

	assert.Equal(t, "Pripomienka: Logistika SK s.r.o.", subject)
	assert.Contains(t, html, "Dobrý deň, Peter,")
	assert.Contains(t, html, "Logistika SK s.r.o.")
	assert.Contains(t, html, "zavolať ohľadom ceny")
	assert.Contains(t, html, "https://app.example.com/business-cases/BC42")
	// 08:30 UTC is 09:30 in Bratislava in March (CET).
	assert.Contains(t, html, "10.03.2025 09:30")
}

func TestRender_BusinessCaseOptionalFieldsGetPlaceholders(t *testing.T) {
	r := NewRenderer("https://app.example.com", testLocation(t))
	reminder := dueReminder(models.ReminderKindBusinessCase)
	reminder.CompanyName = ""

	subject, html, err := r.Render(&reminder)
	require.NoError(t, err)

	assert.Contains(t, subject, "BC42")
	assert.Contains(t, html, "Dobrý deň,")
	assert.NotContains(t, html, "Dobrý deň, ,")
	assert.Contains(t, html, "bez poznámky")
}

func TestRender_Transport(t *testing.T) {
	r := NewRenderer("https://app.example.com", testLocation(t))
	reminder := dueReminder(models.ReminderKindTransport)

	subject, html, err := r.Render(&reminder)
	require.NoError(t, err)

	assert.Equal(t, "Pripomienka: Nakládka – objednávka 2025/123", subject)
	assert.Contains(t, html, "Nakládka")
	assert.Contains(t, html, "2025/123")
	assert.Contains(t, html, "Priemyselná 4, Bratislava")
	assert.Contains(t, html, "https://app.example.com/tracked-transports")
	// Event at 14:00 UTC, reminder at 08:30 UTC, both shifted to CET.
	assert.Contains(t, html, "10.03.2025 15:00")
	assert.Contains(t, html, "10.03.2025 09:30")
}

func TestRender_UnloadingLabel(t *testing.T) {
	r := NewRenderer("https://app.example.com", testLocation(t))
	reminder := dueReminder(models.ReminderKindTransport)
	reminder.Type = models.TransportEventUnloading

	subject, html, err := r.Render(&reminder)
	require.NoError(t, err)
	assert.Contains(t, subject, "Vykládka")
	assert.Contains(t, html, "Vykládka")
}

func TestRender_MissingRequiredFieldsFail(t *testing.T) {
	r := NewRenderer("https://app.example.com", testLocation(t))

	tests := []struct {
		name    string
		mutate  func(*models.Reminder)
		wantErr error
	}{
		{
			name:    "missing userEmail",
			mutate:  func(rem *models.Reminder) { rem.UserEmail = "" },
			wantErr: models.ErrMissingUserEmail,
		},
		{
			name:    "missing reminderDateTime",
			mutate:  func(rem *models.Reminder) { rem.ReminderDateTime = time.Time{} },
			wantErr: models.ErrMissingReminderAt,
		},
		{
			name:    "missing transportId",
			mutate:  func(rem *models.Reminder) { rem.TransportID = "" },
			wantErr: models.ErrMissingParentID,
		},
		{
			name:    "missing event time",
			mutate:  func(rem *models.Reminder) { rem.DateTime = nil },
			wantErr: models.ErrMissingEventTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminder := dueReminder(models.ReminderKindTransport)
			tt.mutate(&reminder)
			_, _, err := r.Render(&reminder)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRender_NoteIsHTMLEscaped(t *testing.T) {
	r := NewRenderer("https://app.example.com", testLocation(t))
	reminder := dueReminder(models.ReminderKindBusinessCase)
	reminder.ReminderNote = `<script>alert("x")</script>`

	_, html, err := r.Render(&reminder)
	require.NoError(t, err)
	assert.False(t, strings.Contains(html, "<script>"))
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer("https://app.example.com", testLocation(t))
	reminder := dueReminder(models.ReminderKindTransport)

	_, first, err := r.Render(&reminder)
	require.NoError(t, err)
	_, second, err := r.Render(&reminder)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
