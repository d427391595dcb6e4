package meeting

import (
	"math"
	"sort"
	"testing"
)

func TestLayoutShares(t *testing.T) {
	for k := 2; k <= 6; k++ {
		blocks := make([]Block, k)
		for i := range blocks {
			blocks[i] = blk(Monday, 9, 10)
		}

		hints := AssignLayout(blocks)
		want := 100 / float64(k)

		var offsets []float64
		for i, h := range hints {
			if math.Abs(h.WidthPercent-want) > 1e-9 {
				t.Errorf("k=%d: width[%d] = %v, want %v", k, i, h.WidthPercent, want)
			}
			offsets = append(offsets, h.LeftOffsetPercent)
		}

		sort.Float64s(offsets)
		for i, off := range offsets {
			if math.Abs(off-want*float64(i)) > 1e-9 {
				t.Errorf("k=%d: offsets = %v", k, offsets)
				break
			}
		}
	}
}

func TestLayoutDefaultsToFullWidth(t *testing.T) {
	blocks := []Block{
		blk(Monday, 9, 10),
		blk(Tuesday, 9, 10),
	}
	for i, h := range AssignLayout(blocks) {
		if h != FullWidth {
			t.Errorf("hint[%d] = %+v, want %+v", i, h, FullWidth)
		}
	}
}

func TestLayoutIgnoresOutOfRange(t *testing.T) {
	groups := []Group{{Indices: []int{0, 5}}}
	hints := Layout(groups, 2)
	if len(hints) != 2 {
		t.Fatalf("expected 2 hints, got %d", len(hints))
	}
	if hints[0].WidthPercent != 50 || hints[1] != FullWidth {
		t.Errorf("unexpected hints %+v", hints)
	}
}

func TestAssignLayoutEmpty(t *testing.T) {
	if hints := AssignLayout(nil); len(hints) != 0 {
		t.Errorf("expected no hints, got %v", hints)
	}
}
