package booking

import (
	"breakdesk-backend/internal/breaktime"
	"breakdesk-backend/internal/model"
)

// Selection is a candidate set of break times for one day. All three are
// required before a booking can be confirmed.
type Selection struct {
	Lunch    string `json:"lunch"`
	EarlyTea string `json:"early_tea"`
	LateTea  string `json:"late_tea"`
}

// Time returns the selected time for the given kind.
func (sel Selection) Time(kind breaktime.Kind) string {
	switch kind {
	case breaktime.Lunch:
		return sel.Lunch
	case breaktime.EarlyTea:
		return sel.EarlyTea
	default:
		return sel.LateTea
	}
}

// CheckConflicts validates a complete selection against the overlap rule:
// any pair involving lunch needs 30 minutes of separation, tea-only pairs
// need 15. Pairs are checked lunch/early, lunch/late, early/late and the
// first conflict found fails the whole attempt.
func CheckConflicts(sel Selection) error {
	kinds := breaktime.Kinds()
	times := make([]breaktime.TimeOfDay, len(kinds))
	for i, kind := range kinds {
		raw := sel.Time(kind)
		if raw == "" {
			return model.ErrIncompleteSelection
		}
		t, err := breaktime.Parse(raw)
		if err != nil {
			return model.ErrUnknownSlot
		}
		times[i] = t
	}

	for i := 0; i < len(kinds); i++ {
		for j := i + 1; j < len(kinds); j++ {
			if breaktime.Conflicts(kinds[i], times[i], kinds[j], times[j]) {
				return &model.SlotConflictError{
					KindA: kinds[i], TimeA: times[i],
					KindB: kinds[j], TimeB: times[j],
				}
			}
		}
	}
	return nil
}
