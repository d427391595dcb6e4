package calendar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/christopherklint97/plancal/internal/meeting"
	"github.com/christopherklint97/plancal/internal/schedule"
	ical "github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

// Importer turns weekly iCalendar events into a schedule. Events are grouped
// into sections by SUMMARY.
type Importer struct {
	Location *time.Location
	// Cache, when set, is consulted before fetching http(s) sources.
	Cache  *FeedCache
	logger *slog.Logger
}

func NewImporter(loc *time.Location, logger *slog.Logger) *Importer {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Importer{Location: loc, logger: logger}
}

// Import reads an iCalendar document from a file path or an http(s) URL.
func (im *Importer) Import(ctx context.Context, source string) (*schedule.Schedule, error) {
	r, err := open(ctx, source, im.Cache)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	s, err := im.Decode(r, name)
	if err != nil && im.Cache != nil && isURL(source) {
		// A broken body must not be served again until the TTL runs out.
		im.logger.Debug("dropping unparsable feed from cache", "url", source)
		im.Cache.Invalidate(source)
	}
	return s, err
}

// Decode parses every calendar in r. name is used when the feed carries no
// X-WR-CALNAME.
func (im *Importer) Decode(r io.Reader, name string) (*schedule.Schedule, error) {
	dec := ical.NewDecoder(r)
	s := schedule.New(name)

	index := make(map[string]int)
	seen := make(map[string]map[schedule.Meeting]bool)

	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing calendar: %w", err)
		}

		if calName, err := cal.Props.Text("X-WR-CALNAME"); err == nil && calName != "" {
			s.Name = calName
		}

		for _, component := range cal.Children {
			if component.Name != ical.CompEvent {
				continue
			}
			event := ical.Event{Component: component}

			summary, _ := event.Props.Text(ical.PropSummary)
			if summary == "" {
				im.logger.Debug("skipping event without summary")
				continue
			}
			meetings, err := im.eventMeetings(event)
			if err != nil {
				im.logger.Debug("skipping malformed event", "summary", summary, "error", err)
				continue
			}

			if category, _ := event.Props.Text(ical.PropCategories); strings.EqualFold(category, breakCategory) {
				s.Breaks = appendBreak(s.Breaks, summary, meetings)
				continue
			}

			i, ok := index[summary]
			if !ok {
				i = len(s.Sections)
				index[summary] = i
				seen[summary] = make(map[schedule.Meeting]bool)
				s.Sections = append(s.Sections, schedule.Section{ID: summary, Title: summary})
			}
			for _, m := range meetings {
				// One-off events repeated every week collapse into a single meeting.
				if seen[summary][m] {
					continue
				}
				seen[summary][m] = true
				s.Sections[i].Meetings = append(s.Sections[i].Meetings, m)
			}
		}
	}

	im.logger.Debug("imported calendar", "name", s.Name, "sections", len(s.Sections), "breaks", len(s.Breaks))
	return s, nil
}

func appendBreak(breaks []schedule.Break, name string, meetings []schedule.Meeting) []schedule.Break {
	for i := range breaks {
		if breaks[i].Name == name {
			breaks[i].Meetings = append(breaks[i].Meetings, meetings...)
			return breaks
		}
	}
	return append(breaks, schedule.Break{Name: name, Meetings: meetings})
}

func (im *Importer) eventMeetings(event ical.Event) ([]schedule.Meeting, error) {
	start, err := event.DateTimeStart(im.Location)
	if err != nil {
		return nil, fmt.Errorf("reading start: %w", err)
	}
	end, err := event.DateTimeEnd(im.Location)
	if err != nil {
		return nil, fmt.Errorf("reading end: %w", err)
	}
	start, end = start.In(im.Location), end.In(im.Location)

	if !end.After(start) || end.Sub(start) >= 24*time.Hour {
		return nil, fmt.Errorf("event spans %s", end.Sub(start))
	}
	endClock := meeting.Clock(end.Hour(), end.Minute())
	if end.YearDay() != start.YearDay() {
		endClock = meeting.Clock(24, 0)
	}

	days := []meeting.Day{meeting.DayFromWeekday(start.Weekday())}
	if prop := event.Props.Get(ical.PropRecurrenceRule); prop != nil {
		opt, err := rrule.StrToROption(prop.Value)
		if err != nil {
			return nil, fmt.Errorf("parsing RRULE: %w", err)
		}
		if len(opt.Byweekday) > 0 {
			days = days[:0]
			for _, wd := range opt.Byweekday {
				// rrule counts weekdays from Monday.
				days = append(days, meeting.Week[wd.Day()])
			}
		}
	}

	loc, _ := event.Props.Text(ical.PropLocation)
	meetings := make([]schedule.Meeting, 0, len(days))
	for _, d := range days {
		meetings = append(meetings, schedule.Meeting{
			Day:   d.String(),
			Start: float64(meeting.Clock(start.Hour(), start.Minute())),
			End:   float64(endClock),
			Room:  loc,
		})
	}
	return meetings, nil
}
