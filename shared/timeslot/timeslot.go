package timeslot

import (
	"errors"
	"fmt"
	"schedly/shared/constant"
	"time"
)

var (
	ErrInvalidWallClock = errors.New("invalid wall clock time")
	ErrInvalidTimezone  = errors.New("invalid timezone")
	ErrMinutesOutOfDay  = errors.New("minutes out of day range")
)

// Minutes parses a zero-padded "HH:MM" wall clock string into minutes since
// local midnight (0-1439). Padding is mandatory: stored times are compared
// lexically in SQL and used as slot identity in the bookings unique index, so
// "9:30" must never slip in as an alias of "09:30".
func Minutes(wallClock string) (int, error) {
	if len(wallClock) != len(constant.WallClockFormat) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWallClock, wallClock)
	}

	parsed, err := time.Parse(constant.WallClockFormat, wallClock)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWallClock, wallClock)
	}

	return parsed.Hour()*60 + parsed.Minute(), nil
}

// FormatMinutes is the inverse of Minutes. It is defined only inside a single
// civil day; duration arithmetic that rolls past midnight must be rejected by
// the caller before formatting.
func FormatMinutes(minutes int) (string, error) {
	if minutes < 0 || minutes >= constant.MinutesPerDay {
		return "", fmt.Errorf("%w: %d", ErrMinutesOutOfDay, minutes)
	}

	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// WeekdayInZone returns the weekday (0=Sunday..6=Saturday) of a "2006-01-02"
// calendar date as observed in the given IANA zone. Zone rules come from the
// real tz database, so DST transitions on the date itself are handled.
func WeekdayInZone(date, zone string) (int, error) {
	location, err := time.LoadLocation(zone)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimezone, zone)
	}

	day, err := time.ParseInLocation(constant.CalendarDayFormat, date, location)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWallClock, date)
	}

	return int(day.Weekday()), nil
}

// Generate emits candidate slot start minutes for one availability window
// using a fixed stride of duration+buffer: t is emitted while
// t+duration <= endMin. Slots are packed back to back plus buffer and are
// never shifted to squeeze in a final partial slot.
func Generate(startMin, endMin, durationMin, bufferMin int) []int {
	slots := []int{}
	if durationMin <= 0 || bufferMin < 0 {
		return slots
	}

	step := durationMin + bufferMin
	for t := startMin; t+durationMin <= endMin; t += step {
		slots = append(slots, t)
	}

	return slots
}

// Overlaps reports whether the half-open minute intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
