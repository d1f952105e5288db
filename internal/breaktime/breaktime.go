package breaktime

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one of the three daily breaks.
type Kind string

const (
	Lunch    Kind = "lunch"
	EarlyTea Kind = "early_tea"
	LateTea  Kind = "late_tea"
)

// Kinds returns all break kinds in booking order.
func Kinds() []Kind {
	return []Kind{Lunch, EarlyTea, LateTea}
}

// Valid reports whether k is one of the known break kinds.
func (k Kind) Valid() bool {
	return k == Lunch || k == EarlyTea || k == LateTea
}

// Display returns a human-readable name, e.g. "early tea".
func (k Kind) Display() string {
	return strings.ReplaceAll(string(k), "_", " ")
}

// TimeOfDay is a clock time expressed as minutes since midnight.
type TimeOfDay int

// Parse parses an "HH:MM" 24-hour time string.
func Parse(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// String formats the time back to "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// AddHours shifts the time by n hours, wrapping around midnight.
func (t TimeOfDay) AddHours(n int) TimeOfDay {
	const day = 24 * 60
	shifted := (int(t) + n*60) % day
	if shifted < 0 {
		shifted += day
	}
	return TimeOfDay(shifted)
}

// Window returns the minimum separation in minutes required between two
// breaks. Lunch is a 30 minute break; tea breaks are 15 minutes.
func Window(a, b Kind) int {
	if a == Lunch || b == Lunch {
		return 30
	}
	return 15
}

// Conflicts reports whether two break selections overlap.
func Conflicts(a Kind, ta TimeOfDay, b Kind, tb TimeOfDay) bool {
	diff := int(ta) - int(tb)
	if diff < 0 {
		diff = -diff
	}
	return diff < Window(a, b)
}

// ShiftSlot adjusts a raw slot string by n hours. Blank entries stay blank
// and unparsable entries are returned unchanged, so a bulk shift over a
// whole template set never fails on malformed data.
func ShiftSlot(raw string, n int) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	t, err := Parse(s)
	if err != nil {
		return raw
	}
	return t.AddHours(n).String()
}
