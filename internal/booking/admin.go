package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/patrickmn/go-cache"

	"breakdesk-backend/internal/model"
)

// RequestClearAll starts the two-step clear of every booking on a date. The
// returned token must be presented to ConfirmClearAll before it expires;
// nothing is deleted until then.
func (s *Service) RequestClearAll(date string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	s.pendingClears.Set(token, date, cache.DefaultExpiration)
	return token, nil
}

// ConfirmClearAll completes a pending clear request. The token must match
// an outstanding request for the same date.
func (s *Service) ConfirmClearAll(ctx context.Context, date, token string) error {
	v, ok := s.pendingClears.Get(token)
	if !ok || v.(string) != date {
		return model.ErrNotPending
	}
	s.pendingClears.Delete(token)
	return s.store.ClearDate(ctx, date)
}

// CancelClearAll abandons a pending clear request.
func (s *Service) CancelClearAll(token string) {
	s.pendingClears.Delete(token)
}

// AdminBookings lists the ledger for one date as the admin dashboard shows
// it: one row per agent with the template and a single booked-at value.
type AdminBookingRow struct {
	Agent    string `json:"agent"`
	Template string `json:"template"`
	Lunch    string `json:"lunch"`
	EarlyTea string `json:"early_tea"`
	LateTea  string `json:"late_tea"`
	BookedAt string `json:"booked_at"`
}

func (s *Service) AdminBookings(ctx context.Context, date string) ([]AdminBookingRow, error) {
	bookings, err := s.store.ListBookings(ctx, date)
	if err != nil {
		return nil, err
	}
	rows := make([]AdminBookingRow, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		v := viewOf(b)
		rows = append(rows, AdminBookingRow{
			Agent:    b.AgentID,
			Template: v.Template,
			Lunch:    orDash(v.Lunch),
			EarlyTea: orDash(v.EarlyTea),
			LateTea:  orDash(v.LateTea),
			BookedAt: orDash(v.BookedAt),
		})
	}
	return rows, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
