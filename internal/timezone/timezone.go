package timezone

import "time"

const DefaultTimezone = "Local"

// Clock returns the current wall-clock time.
type Clock func() time.Time

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

func SystemClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// HourIn is the hour-of-day of t as seen on the wall clock of loc.
func HourIn(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Hour()
}
