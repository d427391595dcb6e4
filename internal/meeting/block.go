// Package meeting finds overlapping weekly meetings and lays them out so that
// conflicting blocks can be drawn side by side on a week grid.
//
// All functions are pure: they never retain or modify the slices passed in.
package meeting

import "fmt"

// Block is one weekly time slot. Owner and Payload are carried through for the
// caller and never inspected.
type Block struct {
	Day     Day
	Start   Time
	End     Time
	Owner   string
	Payload any
}

// Valid reports whether the block has a known day and a positive duration.
func (b Block) Valid() bool {
	return b.Day.Valid() && b.Start.Valid() && b.End.Valid() && b.Start < b.End
}

func (b Block) String() string {
	s := fmt.Sprintf("%s %s-%s", b.Day, b.Start, b.End)
	if b.Owner != "" {
		s = b.Owner + " " + s
	}
	return s
}
