package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/christopherklint97/plancal/internal/meeting"
)

var ErrSectionNotFound = errors.New("section not found")

func (s *Schedule) Section(id string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return Section{}, false
}

func (s *Schedule) CartSection(id string) (Section, bool) {
	for _, sec := range s.Cart {
		if sec.ID == id {
			return sec, true
		}
	}
	return Section{}, false
}

// Find looks a section up among the scheduled sections, then the cart.
func (s *Schedule) Find(id string) (Section, bool) {
	if sec, ok := s.Section(id); ok {
		return sec, true
	}
	return s.CartSection(id)
}

func (sec Section) validate() error {
	if sec.ID == "" {
		return fmt.Errorf("section has no id")
	}
	for i, m := range sec.Meetings {
		if err := m.validate(); err != nil {
			return fmt.Errorf("%s meeting %d: %w", sec.ID, i+1, err)
		}
	}
	return nil
}

// Add puts a section on the schedule. Ids must be unique across the schedule.
func (s *Schedule) Add(sec Section) error {
	if err := sec.validate(); err != nil {
		return err
	}
	if _, ok := s.Section(sec.ID); ok {
		return fmt.Errorf("section %s already scheduled", sec.ID)
	}
	s.Sections = append(s.Sections, sec)
	return nil
}

func (s *Schedule) Remove(id string) error {
	for i, sec := range s.Sections {
		if sec.ID == id {
			s.Sections = append(s.Sections[:i], s.Sections[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("removing %s: %w", id, ErrSectionNotFound)
}

// AddToCart stores a candidate section. A section already in the cart is replaced.
func (s *Schedule) AddToCart(sec Section) error {
	if err := sec.validate(); err != nil {
		return err
	}
	if _, ok := s.Section(sec.ID); ok {
		return fmt.Errorf("section %s is already scheduled", sec.ID)
	}
	for i, c := range s.Cart {
		if c.ID == sec.ID {
			s.Cart[i] = sec
			return nil
		}
	}
	s.Cart = append(s.Cart, sec)
	return nil
}

// MoveFromCart schedules a cart section and drops it from the cart.
func (s *Schedule) MoveFromCart(id string) error {
	for i, sec := range s.Cart {
		if sec.ID != id {
			continue
		}
		if err := s.Add(sec); err != nil {
			return err
		}
		s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
		return nil
	}
	return fmt.Errorf("moving %s from cart: %w", id, ErrSectionNotFound)
}

func (s *Schedule) RemoveFromCart(id string) error {
	for i, sec := range s.Cart {
		if sec.ID == id {
			s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("removing %s from cart: %w", id, ErrSectionNotFound)
}

// MoveToCart takes a scheduled section off the schedule but keeps it as a
// candidate.
func (s *Schedule) MoveToCart(id string) error {
	sec, ok := s.Section(id)
	if !ok {
		return fmt.Errorf("moving %s to cart: %w", id, ErrSectionNotFound)
	}
	if err := s.Remove(id); err != nil {
		return err
	}
	s.Cart = append(s.Cart, sec)
	return nil
}

// ParseMeetings reads a day pattern and a time range such as
// "MWF 10:00-11:00" or "TR 13.30-14.50 Towne 100" into one meeting per day.
// Anything after the range is kept as the room.
func ParseMeetings(expr string) ([]Meeting, error) {
	fields := strings.Fields(expr)
	if len(fields) < 2 {
		return nil, fmt.Errorf("meeting %q: want days and a time range", expr)
	}

	from, to, ok := strings.Cut(fields[1], "-")
	if !ok {
		return nil, fmt.Errorf("meeting %q: time range needs a dash", expr)
	}
	start, err := meeting.ParseTime(from)
	if err != nil {
		return nil, fmt.Errorf("meeting %q: %w", expr, err)
	}
	end, err := meeting.ParseTime(to)
	if err != nil {
		return nil, fmt.Errorf("meeting %q: %w", expr, err)
	}
	room := strings.Join(fields[2:], " ")

	var out []Meeting
	for _, r := range fields[0] {
		d, err := meeting.ParseDay(string(r))
		if err != nil {
			return nil, fmt.Errorf("meeting %q: %w", expr, err)
		}
		m := Meeting{Day: d.String(), Start: float64(start), End: float64(end), Room: room}
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("meeting %q: %w", expr, err)
		}
		out = append(out, m)
	}
	return out, nil
}
