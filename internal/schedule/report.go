package schedule

import (
	"github.com/christopherklint97/plancal/internal/meeting"
)

// Report is the conflict picture of a schedule: grouped overlapping meetings,
// their grid layout and whether each cart section fits.
type Report struct {
	Blocks []meeting.Block
	Groups []meeting.Group
	Hints  []meeting.StyleHint
	Cart   []CartStatus
}

type CartStatus struct {
	Section   Section
	Conflicts bool
	// With lists the scheduled owners the section collides with.
	With []string
}

func (s *Schedule) Conflicts() *Report {
	blocks := s.Blocks()
	groups := meeting.GroupConflicts(blocks)

	r := &Report{
		Blocks: blocks,
		Groups: groups,
		Hints:  meeting.Layout(groups, len(blocks)),
	}

	for _, sec := range s.Cart {
		r.Cart = append(r.Cart, Fit(sec, blocks))
	}

	return r
}

// Fit checks a candidate section against already scheduled blocks.
func Fit(sec Section, scheduled []meeting.Block) CartStatus {
	candidate := sec.Blocks()
	status := CartStatus{
		Section:   sec,
		Conflicts: meeting.SetsIntersect(candidate, scheduled),
	}
	if !status.Conflicts {
		return status
	}

	seen := make(map[string]bool)
	for i := range candidate {
		for j := range scheduled {
			owner := scheduled[j].Owner
			if !seen[owner] && meeting.Overlaps(&candidate[i], &scheduled[j]) {
				seen[owner] = true
				status.With = append(status.With, owner)
			}
		}
	}
	return status
}

// FitScheduled checks a scheduled section against everything else on the
// schedule.
func (s *Schedule) FitScheduled(id string) (CartStatus, bool) {
	sec, ok := s.Section(id)
	if !ok {
		return CartStatus{}, false
	}
	var others []meeting.Block
	for _, b := range s.Blocks() {
		if b.Owner != id {
			others = append(others, b)
		}
	}
	return Fit(sec, others), true
}

// Conflicting reports whether block i is part of any conflict group.
func (r *Report) Conflicting(i int) bool {
	for _, g := range r.Groups {
		if g.Contains(i) {
			return true
		}
	}
	return false
}

// Owners returns the distinct owners of a group in member order.
func Owners(g meeting.Group) []string {
	seen := make(map[string]bool)
	var owners []string
	for _, b := range g.Blocks {
		if !seen[b.Owner] {
			seen[b.Owner] = true
			owners = append(owners, b.Owner)
		}
	}
	return owners
}
