package meeting

import "fmt"

// TBA is shown for a section without meetings.
const TBA = "TBA"

type timeRange struct {
	start, end Time
}

// TimeString summarizes the meetings of one section as "9:30-10:45AM TR".
// The range shared by the most days wins; on a tie the range that reached the
// winning count first is kept. The AM/PM suffix follows the end time.
func TimeString(blocks []Block) string {
	if len(blocks) == 0 {
		return TBA
	}

	days := make(map[timeRange][]Day)
	var best timeRange
	bestCount := 0
	for _, b := range blocks {
		r := timeRange{b.Start, b.End}
		days[r] = append(days[r], b.Day)
		if len(days[r]) > bestCount {
			bestCount = len(days[r])
			best = r
		}
	}

	suffix := "AM"
	if best.end >= 12 {
		suffix = "PM"
	}

	return fmt.Sprintf("%s-%s%s %s",
		twelveHour(best.start), twelveHour(best.end), suffix, FormatDays(days[best]))
}

func twelveHour(t Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d", hour, t.Minute())
}
