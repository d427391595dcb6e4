package meeting

// Group is a set of two or more blocks connected by overlaps, directly or
// through other members.
type Group struct {
	// Indices are positions in the slice given to GroupConflicts, ascending.
	Indices []int
	Blocks  []Block
}

func (g Group) Len() int {
	return len(g.Indices)
}

// Contains reports whether the input position i belongs to the group.
func (g Group) Contains(i int) bool {
	for _, idx := range g.Indices {
		if idx == i {
			return true
		}
	}
	return false
}

// GroupConflicts partitions blocks into the transitive closure of Overlaps and
// returns only the groups with at least two members. A block is identified by
// its position, so passing the same value twice yields two members.
//
// Groups are ordered by their lowest member position. Every pair is compared,
// which is fine for the few dozen meetings a schedule holds.
func GroupConflicts(blocks []Block) []Group {
	n := len(blocks)
	if n == 0 {
		return []Group{}
	}

	ds := newDisjointSet(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Overlaps(&blocks[i], &blocks[j]) {
				ds.union(i, j)
			}
		}
	}

	byRoot := make(map[int]int)
	var groups []Group
	for i := 0; i < n; i++ {
		root := ds.find(i)
		if ds.size[root] < 2 {
			continue
		}
		gi, ok := byRoot[root]
		if !ok {
			gi = len(groups)
			byRoot[root] = gi
			groups = append(groups, Group{})
		}
		groups[gi].Indices = append(groups[gi].Indices, i)
		groups[gi].Blocks = append(groups[gi].Blocks, blocks[i])
	}

	if groups == nil {
		return []Group{}
	}
	return groups
}
