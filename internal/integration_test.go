package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"breakdesk-backend/config"
	"breakdesk-backend/internal/api"
	"breakdesk-backend/internal/booking"
	"breakdesk-backend/internal/db"
	"breakdesk-backend/internal/mw"
	"breakdesk-backend/internal/store"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// TestBookingLifecycle walks an agent's booking through a full shift day and
// into the next one, verifying the state after each step.
func TestBookingLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 1. Setup an in-memory SQLite database for testing.
	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to the in-memory database: %v", err)
	}
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, db.Migrate(testDB))

	// 2. Wire the service against a controllable clock. The morning of day
	// one starts before the 11:59 rebook cutoff.
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000

	zone := time.FixedZone("+01", 3600)
	clk := &testClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, zone)}

	st := store.NewGormStore(testDB, store.Defaults{
		LunchLimit: cfg.Booking.DefaultLunchLimit,
		TeaLimit:   cfg.Booking.DefaultTeaLimit,
	})
	svc := booking.NewService(&cfg.Booking, st, clk)
	router := api.NewRouter(cfg, st, svc)

	send := func(method, path, agent, role, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(mw.HeaderAgentID, agent)
		req.Header.Set(mw.HeaderRole, role)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		router.ServeHTTP(w, req)
		return w
	}

	dashboard := func(agent string) (booked bool, date string) {
		w := send("GET", "/api/agent/dashboard", agent, "agent", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var state struct {
			Date   string `json:"date"`
			Booked bool   `json:"booked"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		return state.Booked, state.Date
	}

	// 3. An admin sets up the world: a template with the default slots,
	// activated and assigned to the agent.
	w := send("POST", "/api/admin/templates", "boss", "admin", `{"name":"Night Shift"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = send("PUT", "/api/admin/active-templates", "boss", "admin", `{"active":["Night Shift"]}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = send("PUT", "/api/admin/assignments/alice", "boss", "admin", `{"templates":["Night Shift"]}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	// 4. The agent books a full selection on day one.
	booked, date := dashboard("alice")
	assert.False(t, booked)
	assert.Equal(t, "2024-05-01", date)

	w = send("POST", "/api/agent/confirm", "alice", "agent",
		`{"lunch":"19:30","early_tea":"16:00","late_tea":"21:45"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	booked, _ = dashboard("alice")
	assert.True(t, booked)

	// 5. Past the cutoff the booking is cleared once so the next shift on
	// the same civil date can book.
	clk.now = time.Date(2024, 5, 1, 13, 0, 0, 0, zone)
	booked, _ = dashboard("alice")
	assert.False(t, booked)

	w = send("POST", "/api/agent/confirm", "alice", "agent",
		`{"lunch":"20:00","early_tea":"16:15","late_tea":"22:00"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The clear does not repeat: the evening booking survives later visits.
	clk.now = time.Date(2024, 5, 1, 18, 0, 0, 0, zone)
	booked, _ = dashboard("alice")
	assert.True(t, booked)

	// The admin ledger shows the evening booking.
	w = send("GET", "/api/admin/bookings?date=2024-05-01", "boss", "admin", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Bookings []struct {
			Agent string `json:"agent"`
			Lunch string `json:"lunch"`
		} `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Bookings, 1)
	assert.Equal(t, "alice", listing.Bookings[0].Agent)
	assert.Equal(t, "20:00", listing.Bookings[0].Lunch)

	// 6. The next civil day starts clean and the agent books again.
	clk.now = time.Date(2024, 5, 2, 8, 30, 0, 0, zone)
	booked, date = dashboard("alice")
	assert.False(t, booked)
	assert.Equal(t, "2024-05-02", date)

	w = send("POST", "/api/agent/confirm", "alice", "agent",
		`{"lunch":"19:30","early_tea":"16:00","late_tea":"21:45"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Yesterday's swept entry is gone from the ledger. Checked through the
	// store because the admin view above may still be cached.
	stale, err := st.GetBooking(context.Background(), "alice", "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, stale)

	today, err := st.GetBooking(context.Background(), "alice", "2024-05-02")
	require.NoError(t, err)
	require.NotNil(t, today)
}
