package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
	}{
		{"12:00 PM", 12, 0},
		{"12:30 pm", 12, 30},
		{"12:00 AM", 0, 0},
		{"12:15am", 0, 15},
		{"9:00 AM", 9, 0},
		{"1:05 PM", 13, 5},
		{"11:59 PM", 23, 59},
		{"14:30", 14, 30},
		{"00:00", 0, 0},
		{" 9:45 ", 9, 45},
	}

	for _, tt := range cases {
		h, m, err := ParseClock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.hour, h, tt.in)
		assert.Equal(t, tt.minute, m, tt.in)
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "noon", "9", "25:00", "13:00 PM", "0:30 AM", "10:75", "ab:cd"} {
		_, _, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestCancellationAllowed(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, loc)
	tomorrow := time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		date    time.Time
		clock   string
		admin   bool
		errCode string
	}{
		{"tomorrow morning is only 21h away", tomorrow, "9:00 AM", false, "cancellation_window"},
		{"exactly 24h away", tomorrow, "12:00 PM", false, ""},
		{"one minute short", tomorrow, "11:59 AM", false, "cancellation_window"},
		{"two hours away", today, "14:00", false, "cancellation_window"},
		{"admin inside window", today, "14:00", true, ""},
		{"admin with malformed time", today, "later", true, ""},
		{"malformed time", tomorrow, "later", false, "invalid_appointment_time"},
		{"two days out", tomorrow.AddDate(0, 0, 1), "9:00 AM", false, ""},
	}

	for _, tt := range cases {
		ap := &models.Appointment{Date: tt.date, Time: tt.clock}
		err := CancellationAllowed(ap, now, loc, tt.admin)
		if tt.errCode == "" {
			assert.NoError(t, err, tt.name)
			continue
		}
		assert.True(t, httperr.IsBusiness(err, tt.errCode), tt.name)
	}
}

func TestCancellationAllowedScenarioFromNoon(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, loc)

	// 9:00 AM two calendar days later is 45h away.
	ap := &models.Appointment{Date: time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC), Time: "9:00 AM"}
	assert.NoError(t, CancellationAllowed(ap, now, loc, false))

	soon := &models.Appointment{Date: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), Time: "2:00 PM"}
	assert.Error(t, CancellationAllowed(soon, now, loc, false))
	assert.NoError(t, CancellationAllowed(soon, now, loc, true))
}

func TestInstantUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	at, err := Instant(date, "10:30 PM", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 1, 2, 22, 30, 0, 0, loc), at)
	assert.Equal(t, time.Date(2026, 1, 3, 1, 30, 0, 0, time.UTC), at.UTC())
}
