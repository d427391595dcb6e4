package meeting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Time is an hour of the day where the fractional part holds minutes scaled by
// 1/100, so 9.30 is 9:30 and 13.05 is 1:05 PM. Values compare correctly as
// plain floats since minutes never reach .60.
type Time float64

// Clock builds a Time from an hour and minute.
func Clock(hour, minute int) Time {
	return Time(float64(hour) + float64(minute)/100)
}

func (t Time) Hour() int {
	return int(math.Floor(float64(t)))
}

func (t Time) Minute() int {
	return int(math.Round((float64(t) - math.Floor(float64(t))) * 100))
}

// Minutes returns minutes since midnight.
func (t Time) Minutes() int {
	return t.Hour()*60 + t.Minute()
}

// Valid reports whether the value is a real clock reading between 0:00 and 24:00.
func (t Time) Valid() bool {
	if t < 0 || t > 24 {
		return false
	}
	return t.Minute() < 60
}

func (t Time) String() string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// FromMinutes is the inverse of Minutes.
func FromMinutes(m int) Time {
	return Clock(m/60, m%60)
}

// ParseTime reads "9:30", "09:30" or the raw "9.30" form.
func ParseTime(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if h, m, ok := strings.Cut(s, ":"); ok {
		hour, err := strconv.Atoi(h)
		if err != nil {
			return 0, fmt.Errorf("parsing hour in %q: %w", s, err)
		}
		minute, err := strconv.Atoi(m)
		if err != nil {
			return 0, fmt.Errorf("parsing minute in %q: %w", s, err)
		}
		if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
			return 0, fmt.Errorf("time %q out of range", s)
		}
		return Clock(hour, minute), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing time %q: %w", s, err)
	}
	t := Time(f)
	if !t.Valid() {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return t, nil
}
