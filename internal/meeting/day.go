package meeting

import (
	"fmt"
	"strings"
	"time"
)

// Day is a single-letter weekday code. The zero Day means the day is missing.
type Day byte

const (
	Monday    Day = 'M'
	Tuesday   Day = 'T'
	Wednesday Day = 'W'
	Thursday  Day = 'R'
	Friday    Day = 'F'
	Saturday  Day = 'S'
	Sunday    Day = 'U'
)

// Week lists the day codes in canonical display order.
var Week = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Day) Valid() bool {
	return d.index() >= 0
}

func (d Day) index() int {
	for i, w := range Week {
		if w == d {
			return i
		}
	}
	return -1
}

func (d Day) String() string {
	if d == 0 {
		return ""
	}
	return string(rune(d))
}

// Weekday converts the code to a time.Weekday. Invalid days map to Sunday.
func (d Day) Weekday() time.Weekday {
	switch d {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	}
	return time.Sunday
}

func DayFromWeekday(w time.Weekday) Day {
	return Week[(int(w)+6)%7]
}

// ParseDay accepts a day code ("R") or an English day name ("thursday", "Thu").
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		d := Day(strings.ToUpper(s)[0])
		if d.Valid() {
			return d, nil
		}
		return 0, fmt.Errorf("unknown day code %q", s)
	}

	lower := strings.ToLower(s)
	for w := time.Sunday; w <= time.Saturday; w++ {
		name := strings.ToLower(w.String())
		if lower == name || (len(lower) >= 2 && strings.HasPrefix(name, lower)) {
			return DayFromWeekday(w), nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}

// FormatDays concatenates the codes in canonical week order, dropping duplicates.
func FormatDays(days []Day) string {
	seen := make(map[Day]bool, len(days))
	for _, d := range days {
		seen[d] = true
	}
	var sb strings.Builder
	for _, d := range Week {
		if seen[d] {
			sb.WriteByte(byte(d))
		}
	}
	return sb.String()
}
