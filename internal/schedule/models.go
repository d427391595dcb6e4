package schedule

import (
	"fmt"

	"github.com/christopherklint97/plancal/internal/meeting"
	"github.com/google/uuid"
)

type Schedule struct {
	ID       string    `json:"id" toml:"id" yaml:"id" jsonschema:"description=Stable identifier generated when empty"`
	Name     string    `json:"name" toml:"name" yaml:"name" jsonschema:"required"`
	Semester string    `json:"semester,omitempty" toml:"semester,omitempty" yaml:"semester,omitempty" jsonschema:"example=2026C"`
	Sections []Section `json:"sections" toml:"sections" yaml:"sections"`
	Breaks   []Break   `json:"breaks,omitempty" toml:"breaks,omitempty" yaml:"breaks,omitempty"`
	Cart     []Section `json:"cart,omitempty" toml:"cart,omitempty" yaml:"cart,omitempty" jsonschema:"description=Candidate sections not yet in the schedule"`
}

type Section struct {
	ID         string    `json:"id" toml:"id" yaml:"id" jsonschema:"required,example=CIS-1200-001"`
	Title      string    `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Instructor string    `json:"instructor,omitempty" toml:"instructor,omitempty" yaml:"instructor,omitempty"`
	Credits    float64   `json:"credits,omitempty" toml:"credits,omitempty" yaml:"credits,omitempty"`
	Color      string    `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty" jsonschema:"description=Terminal color number or hex code"`
	Meetings   []Meeting `json:"meetings" toml:"meetings" yaml:"meetings"`
}

// Break is time the student wants kept free, such as lunch or a commute.
type Break struct {
	Name     string    `json:"name" toml:"name" yaml:"name" jsonschema:"required"`
	Meetings []Meeting `json:"meetings" toml:"meetings" yaml:"meetings"`
}

// Meeting uses the H.MM hour convention for Start and End (9.30 is 9:30).
type Meeting struct {
	Day   string  `json:"day" toml:"day" yaml:"day" jsonschema:"required,enum=M,enum=T,enum=W,enum=R,enum=F,enum=S,enum=U"`
	Start float64 `json:"start" toml:"start" yaml:"start" jsonschema:"required,minimum=0,maximum=24"`
	End   float64 `json:"end" toml:"end" yaml:"end" jsonschema:"required,minimum=0,maximum=24"`
	Room  string  `json:"room,omitempty" toml:"room,omitempty" yaml:"room,omitempty"`
}

// New returns an empty schedule with a fresh id.
func New(name string) *Schedule {
	return &Schedule{
		ID:   uuid.NewString(),
		Name: name,
	}
}

func breakOwner(name string) string {
	return "break:" + name
}

func (m Meeting) Block(owner string) meeting.Block {
	day, _ := meeting.ParseDay(m.Day)
	return meeting.Block{
		Day:   day,
		Start: meeting.Time(m.Start),
		End:   meeting.Time(m.End),
		Owner: owner,
	}
}

func (m Meeting) String() string {
	s := fmt.Sprintf("%s %s-%s", m.Day, meeting.Time(m.Start), meeting.Time(m.End))
	if m.Room != "" {
		s += " " + m.Room
	}
	return s
}

// Blocks returns the section's meetings as engine blocks owned by the section id.
func (s Section) Blocks() []meeting.Block {
	blocks := make([]meeting.Block, 0, len(s.Meetings))
	for _, m := range s.Meetings {
		b := m.Block(s.ID)
		b.Payload = s
		blocks = append(blocks, b)
	}
	return blocks
}

// TimeString is the one-line meeting summary shown next to a section.
func (s Section) TimeString() string {
	return meeting.TimeString(s.Blocks())
}

func (b Break) Blocks() []meeting.Block {
	blocks := make([]meeting.Block, 0, len(b.Meetings))
	for _, m := range b.Meetings {
		blk := m.Block(breakOwner(b.Name))
		blk.Payload = b
		blocks = append(blocks, blk)
	}
	return blocks
}

// Blocks flattens every scheduled section and break, sections first. The cart
// is not included.
func (s *Schedule) Blocks() []meeting.Block {
	var blocks []meeting.Block
	for _, sec := range s.Sections {
		blocks = append(blocks, sec.Blocks()...)
	}
	for _, b := range s.Breaks {
		blocks = append(blocks, b.Blocks()...)
	}
	return blocks
}

// Credits sums the credits of the scheduled sections.
func (s *Schedule) Credits() float64 {
	total := 0.0
	for _, sec := range s.Sections {
		total += sec.Credits
	}
	return total
}
