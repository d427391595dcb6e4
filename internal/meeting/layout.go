package meeting

// StyleHint places a block horizontally inside its day column, in percent of
// the column width.
type StyleHint struct {
	WidthPercent      float64 `json:"width_percent"`
	LeftOffsetPercent float64 `json:"left_offset_percent"`
}

// FullWidth is the hint for a block that conflicts with nothing.
var FullWidth = StyleHint{WidthPercent: 100}

// Layout returns one hint per input position. Members of a group of size k
// share the column equally, left to right in group order; positions outside
// every group get FullWidth. Indices outside [0, n) are ignored.
func Layout(groups []Group, n int) []StyleHint {
	hints := make([]StyleHint, n)
	for i := range hints {
		hints[i] = FullWidth
	}

	for _, g := range groups {
		k := g.Len()
		if k == 0 {
			continue
		}
		width := 100 / float64(k)
		for pos, idx := range g.Indices {
			if idx < 0 || idx >= n {
				continue
			}
			hints[idx] = StyleHint{
				WidthPercent:      width,
				LeftOffsetPercent: width * float64(pos),
			}
		}
	}

	return hints
}

// AssignLayout groups the blocks and lays them out in one call.
func AssignLayout(blocks []Block) []StyleHint {
	return Layout(GroupConflicts(blocks), len(blocks))
}
