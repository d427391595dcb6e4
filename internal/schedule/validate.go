package schedule

import (
	"errors"
	"fmt"

	"github.com/christopherklint97/plancal/internal/meeting"
)

// Validate reports every malformed meeting and duplicate section id at once.
// The conflict engine itself accepts anything, so files are checked here.
func (s *Schedule) Validate() error {
	var errs []error

	if s.Name == "" {
		errs = append(errs, errors.New("schedule has no name"))
	}

	seen := make(map[string]bool)
	check := func(kind string, secs []Section) {
		for _, sec := range secs {
			if sec.ID == "" {
				errs = append(errs, fmt.Errorf("%s section %q has no id", kind, sec.Title))
				continue
			}
			if seen[sec.ID] {
				errs = append(errs, fmt.Errorf("duplicate section id %s", sec.ID))
			}
			seen[sec.ID] = true
			for i, m := range sec.Meetings {
				if err := m.validate(); err != nil {
					errs = append(errs, fmt.Errorf("%s meeting %d: %w", sec.ID, i+1, err))
				}
			}
		}
	}
	check("scheduled", s.Sections)
	check("cart", s.Cart)

	for _, b := range s.Breaks {
		for i, m := range b.Meetings {
			if err := m.validate(); err != nil {
				errs = append(errs, fmt.Errorf("break %q meeting %d: %w", b.Name, i+1, err))
			}
		}
	}

	return errors.Join(errs...)
}

func (m Meeting) validate() error {
	if _, err := meeting.ParseDay(m.Day); err != nil {
		return err
	}
	start, end := meeting.Time(m.Start), meeting.Time(m.End)
	if !start.Valid() {
		return fmt.Errorf("start %v is not a clock time", m.Start)
	}
	if !end.Valid() {
		return fmt.Errorf("end %v is not a clock time", m.End)
	}
	if start >= end {
		return fmt.Errorf("start %s is not before end %s", start, end)
	}
	return nil
}
