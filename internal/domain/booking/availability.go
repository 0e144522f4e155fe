package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// Overlaps is the half-open interval test: [aStart,aEnd) and [bStart,bEnd)
// share at least one instant. Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FirstConflict returns the first slot-holding booking that overlaps
// [start,end), or nil.
func FirstConflict(existing []models.Booking, start, end time.Time) *models.Booking {
	for i := range existing {
		b := &existing[i]
		if !Status(b.Status).Occupies() {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			return b
		}
	}
	return nil
}

// EndOf computes the booking end from the service duration in minutes.
func EndOf(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// ParseHM parses a 24h "HH:MM" string.
func ParseHM(hm string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, 0, fmt.Errorf("parse %q: %w", hm, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ParseHour is the hour component of an "HH:MM" string.
func ParseHour(hm string) (int, error) {
	h, _, err := ParseHM(hm)
	return h, err
}

// IsWithinWorkingHours compares hour-of-day only: minutes of both the
// booking and the window are ignored, so 16:45 is inside a window ending
// at 17:00 and 17:00 is not.
func IsWithinWorkingHours(hour int, availableFrom, availableTo string) bool {
	from, err := ParseHour(availableFrom)
	if err != nil {
		return false
	}
	to, err := ParseHour(availableTo)
	if err != nil {
		return false
	}
	return hour >= from && hour < to
}

// ValidateWindow checks both ends are "HH:MM" and from is strictly earlier.
func ValidateWindow(availableFrom, availableTo string) error {
	fh, fm, err := ParseHM(availableFrom)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeWindow)
	}
	th, tm, err := ParseHM(availableTo)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeWindow)
	}
	if fh*60+fm >= th*60+tm {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeWindow)
	}
	return nil
}
