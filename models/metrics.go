package models

import "time"

// DailyMetrics is the per-calendar-day counter document. The dispatcher only
// ever merge-writes it; nothing in this service reads it back.
type DailyMetrics struct {
	Date                   string    `bson:"_id" json:"date"` // YYYY-MM-DD
	BusinessCaseReminders  int       `bson:"businessCaseReminders" json:"businessCaseReminders"`
	TransportNotifications int       `bson:"transportNotifications" json:"transportNotifications"`
	Timestamp              time.Time `bson:"timestamp" json:"timestamp"`
}

// MetricsDateKey formats the day-document key for the given instant in the
// given display timezone.
func MetricsDateKey(when time.Time, loc *time.Location) string {
	return when.In(loc).Format("2006-01-02")
}
