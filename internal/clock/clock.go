package clock

import "time"

// DefaultTimezone is the civil timezone all booking dates and timestamps are
// computed in, regardless of server locale.
const DefaultTimezone = "Africa/Casablanca"

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Clock supplies the current time in the service's civil timezone.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a Clock backed by the system time in loc.
func NewSystem(loc *time.Location) Clock {
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Load resolves a timezone name, falling back to DefaultTimezone when empty.
func Load(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	return time.LoadLocation(name)
}

// Date formats t as the civil calendar date used to key bookings.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Timestamp formats t as the civil timestamp stored on booked breaks.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
