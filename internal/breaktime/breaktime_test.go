package breaktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  TimeOfDay
		expectErr bool
	}{
		{
			name:     "Standard time",
			raw:      "19:30",
			expected: TimeOfDay(19*60 + 30),
		},
		{
			name:     "Single digit hour",
			raw:      "9:05",
			expected: TimeOfDay(9*60 + 5),
		},
		{
			name:     "Midnight",
			raw:      "00:00",
			expected: TimeOfDay(0),
		},
		{
			name:     "Surrounding whitespace",
			raw:      " 16:15 ",
			expected: TimeOfDay(16*60 + 15),
		},
		{
			name:      "Hour out of range",
			raw:       "24:00",
			expectErr: true,
		},
		{
			name:      "Minute out of range",
			raw:       "12:60",
			expectErr: true,
		},
		{
			name:      "Missing colon",
			raw:       "1930",
			expectErr: true,
		},
		{
			name:      "Not a time",
			raw:       "lunchtime",
			expectErr: true,
		},
		{
			name:      "Empty",
			raw:       "",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, parsed)
			}
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay(9*60+5).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "23:59", TimeOfDay(23*60+59).String())
}

func TestAddHoursWrapsMidnight(t *testing.T) {
	late, err := Parse("23:30")
	assert.NoError(t, err)
	assert.Equal(t, "00:30", late.AddHours(1).String())

	early, err := Parse("00:15")
	assert.NoError(t, err)
	assert.Equal(t, "23:15", early.AddHours(-1).String())
}

func TestConflicts(t *testing.T) {
	mustParse := func(s string) TimeOfDay {
		tod, err := Parse(s)
		if err != nil {
			t.Fatalf("bad test time %q: %v", s, err)
		}
		return tod
	}

	testCases := []struct {
		name     string
		kindA    Kind
		timeA    string
		kindB    Kind
		timeB    string
		conflict bool
	}{
		{
			name:  "Lunch and early tea 10 minutes apart",
			kindA: Lunch, timeA: "20:00",
			kindB: EarlyTea, timeB: "20:10",
			conflict: true,
		},
		{
			name:  "Lunch and early tea 29 minutes apart",
			kindA: Lunch, timeA: "20:00",
			kindB: EarlyTea, timeB: "20:29",
			conflict: true,
		},
		{
			name:  "Lunch and early tea exactly 30 minutes apart",
			kindA: Lunch, timeA: "20:00",
			kindB: EarlyTea, timeB: "20:30",
			conflict: false,
		},
		{
			name:  "Tea pair 14 minutes apart",
			kindA: EarlyTea, timeA: "16:00",
			kindB: LateTea, timeB: "16:14",
			conflict: true,
		},
		{
			name:  "Tea pair exactly 15 minutes apart",
			kindA: EarlyTea, timeA: "16:00",
			kindB: LateTea, timeB: "16:15",
			conflict: false,
		},
		{
			name:  "Order does not matter",
			kindA: EarlyTea, timeA: "20:10",
			kindB: Lunch, timeB: "20:00",
			conflict: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Conflicts(tc.kindA, mustParse(tc.timeA), tc.kindB, mustParse(tc.timeB))
			assert.Equal(t, tc.conflict, got)
		})
	}
}

func TestShiftSlot(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		hours    int
		expected string
	}{
		{name: "Forward one hour", raw: "19:30", hours: 1, expected: "20:30"},
		{name: "Back one hour", raw: "19:30", hours: -1, expected: "18:30"},
		{name: "Wrap past midnight", raw: "23:45", hours: 1, expected: "00:45"},
		{name: "Blank stays blank", raw: "   ", hours: 1, expected: ""},
		{name: "Malformed left unchanged", raw: "7h30", hours: 1, expected: "7h30"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ShiftSlot(tc.raw, tc.hours))
		})
	}
}

// Shifting every slot by +1 then -1 hour must round-trip, with malformed
// entries untouched both times.
func TestShiftSlotRoundTrip(t *testing.T) {
	slots := []string{"19:30", "20:00", "21:45", "bad time", ""}
	shifted := make([]string, len(slots))
	for i, s := range slots {
		shifted[i] = ShiftSlot(s, 1)
	}
	for i, s := range shifted {
		shifted[i] = ShiftSlot(s, -1)
	}
	assert.Equal(t, []string{"19:30", "20:00", "21:45", "bad time", ""}, shifted)
}
