package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/christopherklint97/plancal/internal/meeting"
	"github.com/christopherklint97/plancal/internal/schedule"
	ical "github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"github.com/tj/go-naturaldate"
)

const productID = "-//plancal//plancal//EN"

// breakCategory marks exported breaks so an import turns them back into
// breaks instead of sections.
const breakCategory = "PLANCAL-BREAK"

// Export writes one weekly recurring event per scheduled meeting and per break.
// Events start in the week of firstWeek and repeat for the given number of
// weeks.
func Export(w io.Writer, s *schedule.Schedule, firstWeek time.Time, weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("weeks must be positive, got %d", weeks)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText("X-WR-CALNAME", s.Name)

	e := exporter{
		cal:    cal,
		monday: weekStart(firstWeek),
		stamp:  time.Now().UTC(),
		weeks:  weeks,
	}

	for _, sec := range s.Sections {
		for _, m := range sec.Meetings {
			event, err := e.add(sec.ID, m)
			if err != nil {
				return fmt.Errorf("section %s: %w", sec.ID, err)
			}
			if sec.Title != "" && sec.Title != sec.ID {
				event.Props.SetText(ical.PropDescription, sec.Title)
			}
		}
	}

	for _, b := range s.Breaks {
		for _, m := range b.Meetings {
			event, err := e.add(b.Name, m)
			if err != nil {
				return fmt.Errorf("break %s: %w", b.Name, err)
			}
			event.Props.SetText(ical.PropCategories, breakCategory)
			event.Props.SetText(ical.PropTransparency, "TRANSPARENT")
		}
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

type exporter struct {
	cal    *ical.Calendar
	monday time.Time
	stamp  time.Time
	weeks  int
}

func (e exporter) add(summary string, m schedule.Meeting) (*ical.Event, error) {
	b := m.Block(summary)
	if !b.Valid() {
		return nil, fmt.Errorf("invalid meeting %s", m)
	}
	day := e.monday.AddDate(0, 0, dayOffset(b.Day))

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.NewString())
	event.Props.SetDateTime(ical.PropDateTimeStamp, e.stamp)
	event.Props.SetDateTime(ical.PropDateTimeStart, at(day, b.Start))
	event.Props.SetDateTime(ical.PropDateTimeEnd, at(day, b.End))
	event.Props.SetText(ical.PropSummary, summary)
	if m.Room != "" {
		event.Props.SetText(ical.PropLocation, m.Room)
	}

	rule := ical.NewProp(ical.PropRecurrenceRule)
	rule.Value = (&rrule.ROption{Freq: rrule.WEEKLY, Count: e.weeks}).RRuleString()
	event.Props.Set(rule)

	e.cal.Children = append(e.cal.Children, event.Component)
	return event, nil
}

// ParseWeekStart resolves a phrase such as "next monday" or "in 2 weeks"
// relative to now and returns midnight of that week's Monday.
func ParseWeekStart(expr string, now time.Time) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return weekStart(now), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", expr, now.Location()); err == nil {
		return weekStart(t), nil
	}

	t, err := naturaldate.Parse(expr, now, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing week %q: %w", expr, err)
	}
	return weekStart(t), nil
}

func weekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -dayOffset(meeting.DayFromWeekday(d.Weekday())))
}

func dayOffset(d meeting.Day) int {
	for i, w := range meeting.Week {
		if w == d {
			return i
		}
	}
	return 0
}

func at(day time.Time, t meeting.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
