package meeting

import (
	"strings"
	"testing"
)

func TestTimeString(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		want   string
	}{
		{"empty", nil, "TBA"},
		{
			"mode wins",
			[]Block{blk(Monday, 9, 10), blk(Wednesday, 9, 10), blk(Friday, 10, 11)},
			"9:00-10:00AM MW",
		},
		{
			"days in week order",
			[]Block{blk(Thursday, 13.30, 14.50), blk(Tuesday, 13.30, 14.50)},
			"1:30-2:50PM TR",
		},
		{
			"noon end is PM",
			[]Block{blk(Friday, 11, 12)},
			"11:00-12:00PM F",
		},
		{
			"tie keeps first to reach count",
			[]Block{
				blk(Monday, 9, 10),
				blk(Tuesday, 12, 13.15),
				blk(Thursday, 12, 13.15),
				blk(Wednesday, 9, 10),
			},
			"12:00-1:15PM TR",
		},
		{
			"single minutes are padded",
			[]Block{blk(Monday, 8.05, 9.05)},
			"8:05-9:05AM M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeString(tt.blocks); got != tt.want {
				t.Errorf("TimeString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeStringModeSelection(t *testing.T) {
	got := TimeString([]Block{blk(Monday, 9, 10), blk(Wednesday, 9, 10), blk(Friday, 10, 11)})
	days := got[strings.LastIndex(got, " ")+1:]
	if !strings.Contains(days, "M") || !strings.Contains(days, "W") || strings.Contains(days, "F") {
		t.Errorf("unexpected days in %q", got)
	}
}
