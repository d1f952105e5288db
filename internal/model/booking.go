package model

import (
	"time"

	"breakdesk-backend/internal/breaktime"
)

// Booking is one agent's confirmed break selections for one civil calendar
// date. At most one row exists per (agent, date); there is no update path, a
// new day yields a new row. Times are "HH:MM" strings, booked-at timestamps
// "YYYY-MM-DD HH:MM:SS" in the service's civil timezone.
type Booking struct {
	ID           int64  `gorm:"primaryKey"`
	AgentID      string `gorm:"uniqueIndex:idx_booking_agent_date;size:128;not null"`
	Date         string `gorm:"uniqueIndex:idx_booking_agent_date;index;size:10;not null"`
	TemplateName string `gorm:"size:128;not null"`

	LunchTime        *string `gorm:"size:8"`
	LunchBookedAt    *string `gorm:"size:20"`
	EarlyTeaTime     *string `gorm:"size:8"`
	EarlyTeaBookedAt *string `gorm:"size:20"`
	LateTeaTime      *string `gorm:"size:8"`
	LateTeaBookedAt  *string `gorm:"size:20"`

	CreatedAt time.Time `gorm:"not null"`
}

// Time returns the booked slot for the given break kind, or "" when that
// sub-record is absent (missing sub-fields mean "not booked").
func (b *Booking) Time(kind breaktime.Kind) string {
	var t *string
	switch kind {
	case breaktime.Lunch:
		t = b.LunchTime
	case breaktime.EarlyTea:
		t = b.EarlyTeaTime
	case breaktime.LateTea:
		t = b.LateTeaTime
	}
	if t == nil {
		return ""
	}
	return *t
}

// BookedAt returns the first booked-at timestamp present on the record, the
// value shown for the booking as a whole.
func (b *Booking) BookedAt() string {
	for _, ts := range []*string{b.LunchBookedAt, b.EarlyTeaBookedAt, b.LateTeaBookedAt} {
		if ts != nil && *ts != "" {
			return *ts
		}
	}
	return ""
}
