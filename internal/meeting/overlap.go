package meeting

import "sort"

// Overlaps reports whether two blocks share a day and their half-open
// intervals [Start, End) intersect. Touching endpoints do not overlap. A nil
// block or a missing day never overlaps anything.
func Overlaps(a, b *Block) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Day == 0 || a.Day != b.Day {
		return false
	}
	return !(a.End <= b.Start || b.End <= a.Start)
}

// SetsIntersect reports whether any block of a overlaps any block of b.
func SetsIntersect(a, b []Block) bool {
	for i := range a {
		for j := range b {
			if Overlaps(&a[i], &b[j]) {
				return true
			}
		}
	}
	return false
}

// DayOverlapFlags marks every block that overlaps at least one other block on
// the same day. It buckets by day and sweeps each bucket in start order, which
// is all a list view needs when it only shows a warning per row.
func DayOverlapFlags(blocks []Block) []bool {
	flags := make([]bool, len(blocks))

	buckets := make(map[Day][]int)
	for i, b := range blocks {
		if b.Day == 0 {
			continue
		}
		buckets[b.Day] = append(buckets[b.Day], i)
	}

	for _, idx := range buckets {
		sort.SliceStable(idx, func(x, y int) bool {
			return blocks[idx[x]].Start < blocks[idx[y]].Start
		})

		// reach is the member of the bucket seen so far with the latest end.
		reach := -1
		for _, i := range idx {
			if reach >= 0 && Overlaps(&blocks[reach], &blocks[i]) {
				flags[reach] = true
				flags[i] = true
			}
			if reach < 0 || blocks[i].End > blocks[reach].End {
				reach = i
			}
		}
	}

	return flags
}
