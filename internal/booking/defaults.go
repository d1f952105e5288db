package booking

import "breakdesk-backend/internal/breaktime"

// DefaultTemplateSlots returns the slot lists a new template starts with
// when the admin does not supply any.
func DefaultTemplateSlots() map[breaktime.Kind][]string {
	return map[breaktime.Kind][]string{
		breaktime.Lunch:    {"19:30", "20:00", "20:30", "21:00", "21:30"},
		breaktime.EarlyTea: {"16:00", "16:15", "16:30", "16:45", "17:00", "17:15", "17:30"},
		breaktime.LateTea:  {"21:45", "22:00", "22:15", "22:30"},
	}
}
