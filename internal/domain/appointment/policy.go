package appointment

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// CancellationWindow is how far ahead a non-admin must cancel.
const CancellationWindow = 24 * time.Hour

var errMalformedClock = errors.New("malformed appointment time")

// ParseClock reads "H:MM AM/PM" (any case, space optional) or 24-hour
// "HH:MM". 12 AM is midnight, 12 PM is noon.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)

	meridiem := ""
	switch {
	case strings.HasSuffix(upper, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(upper, "PM"):
		meridiem = "PM"
	}
	if meridiem != "" {
		s = strings.TrimSpace(s[:len(s)-2])
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, errMalformedClock
	}

	hour, err = strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, 0, errMalformedClock
	}
	minute, err = strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, errMalformedClock
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, 0, errMalformedClock
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, 0, errMalformedClock
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, 0, errMalformedClock
		}
	}

	return hour, minute, nil
}

// Instant combines the stored calendar date with the clock string in loc.
// The date's own Y/M/D are used as-is: date columns come back at UTC midnight.
func Instant(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, loc), nil
}

func HoursUntil(ap *models.Appointment, now time.Time, loc *time.Location) (float64, error) {
	at, err := Instant(ap.Date, ap.Time, loc)
	if err != nil {
		return 0, err
	}
	return at.Sub(now).Hours(), nil
}

// CancellationAllowed returns nil when the actor may cancel ap at now.
// Admins always may.
func CancellationAllowed(ap *models.Appointment, now time.Time, loc *time.Location, isAdmin bool) error {
	if isAdmin {
		return nil
	}

	hours, err := HoursUntil(ap, now, loc)
	if err != nil {
		return httperr.ErrBusiness("invalid_appointment_time")
	}
	if hours < CancellationWindow.Hours() {
		return httperr.ErrBusiness("cancellation_window")
	}
	return nil
}
