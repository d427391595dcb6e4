package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/christopherklint97/plancal/internal/meeting"
)

const timeLabelWidth = 6

var dayNames = map[meeting.Day]string{
	meeting.Monday:    "Mon",
	meeting.Tuesday:   "Tue",
	meeting.Wednesday: "Wed",
	meeting.Thursday:  "Thu",
	meeting.Friday:    "Fri",
	meeting.Saturday:  "Sat",
	meeting.Sunday:    "Sun",
}

type WeekOptions struct {
	Days        []meeting.Day
	DayStart    int // hours
	DayEnd      int
	ColumnWidth int
	// Highlight draws blocks owned by this owner in bold.
	Highlight string
	// Conflicts marks blocks drawn in the conflict color, by block index.
	Conflicts []bool
	// Colors maps owners to terminal colors.
	Colors map[string]string
}

// ParseDays turns a config string such as "MTWRF" into day codes.
func ParseDays(s string) ([]meeting.Day, error) {
	var days []meeting.Day
	for _, r := range s {
		d, err := meeting.ParseDay(string(r))
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// RenderWeek draws the blocks on a half-hour grid. Each block takes the
// horizontal slice of its day column given by its hint, so blocks in one
// conflict group sit next to each other.
func RenderWeek(blocks []meeting.Block, hints []meeting.StyleHint, opts WeekOptions) string {
	width := opts.ColumnWidth
	rows := (opts.DayEnd - opts.DayStart) * 2
	if width <= 0 || rows <= 0 || len(opts.Days) == 0 {
		return ""
	}

	// cells[day][row][col] holds a block index, or -1.
	cells := make([][][]int, len(opts.Days))
	labels := make([][][]rune, len(opts.Days))
	for d := range cells {
		cells[d] = make([][]int, rows)
		labels[d] = make([][]rune, rows)
		for r := range cells[d] {
			cells[d][r] = make([]int, width)
			labels[d][r] = []rune(strings.Repeat(" ", width))
			for c := range cells[d][r] {
				cells[d][r][c] = -1
			}
		}
	}

	column := make(map[meeting.Day]int, len(opts.Days))
	for i, d := range opts.Days {
		column[d] = i
	}

	gridStart := opts.DayStart * 60
	for i, b := range blocks {
		d, ok := column[b.Day]
		if !ok {
			continue
		}
		hint := meeting.FullWidth
		if i < len(hints) {
			hint = hints[i]
		}
		left, right := span(hint, width)

		first := true
		for r := 0; r < rows; r++ {
			slotStart := gridStart + r*30
			if b.Start.Minutes() >= slotStart+30 || b.End.Minutes() <= slotStart {
				continue
			}
			label := []rune(b.Owner)
			for c := left; c < right; c++ {
				cells[d][r][c] = i
				if first && c-left < len(label) {
					labels[d][r][c] = label[c-left]
				}
			}
			first = false
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", timeLabelWidth))
	for _, d := range opts.Days {
		sb.WriteString("│")
		sb.WriteString(center(dayNames[d], width))
	}
	sb.WriteString("│\n")

	for r := 0; r < rows; r++ {
		label := ""
		if r%2 == 0 {
			label = meeting.FromMinutes(gridStart + r*30).String()
		}
		sb.WriteString(dimStyle.Render(fmt.Sprintf("%*s ", timeLabelWidth-1, label)))
		for d := range opts.Days {
			sb.WriteString("│")
			sb.WriteString(renderRow(cells[d][r], labels[d][r], blocks, opts))
		}
		sb.WriteString("│\n")
	}

	return sb.String()
}

// span converts a hint into a [left, right) range of character columns.
func span(h meeting.StyleHint, width int) (int, int) {
	left := int(h.LeftOffsetPercent*float64(width)/100 + 0.5)
	right := int((h.LeftOffsetPercent+h.WidthPercent)*float64(width)/100 + 0.5)
	left = min(max(left, 0), width-1)
	right = min(max(right, left+1), width)
	return left, right
}

// renderRow styles runs of cells that belong to the same block together.
func renderRow(cells []int, text []rune, blocks []meeting.Block, opts WeekOptions) string {
	var sb strings.Builder
	for start := 0; start < len(cells); {
		end := start + 1
		for end < len(cells) && cells[end] == cells[start] {
			end++
		}
		chunk := string(text[start:end])
		if idx := cells[start]; idx >= 0 {
			chunk = cellStyle(idx, blocks[idx], opts).Render(chunk)
		}
		sb.WriteString(chunk)
		start = end
	}
	return sb.String()
}

func cellStyle(idx int, b meeting.Block, opts WeekOptions) lipgloss.Style {
	var style lipgloss.Style
	if idx < len(opts.Conflicts) && opts.Conflicts[idx] {
		style = conflictCellStyle
	} else {
		style = blockStyle(b.Owner, opts.Colors[b.Owner])
	}
	if opts.Highlight != "" && b.Owner == opts.Highlight {
		style = style.Bold(true).Underline(true)
	}
	return style
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	pad := width - len(s)
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}
