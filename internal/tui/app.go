package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/christopherklint97/plancal/internal/schedule"
)

// App is the interactive week view of one schedule.
type App struct {
	schedule *schedule.Schedule
	report   *schedule.Report
	opts     WeekOptions
	owners   []string
	cursor   listCursor
	// conflictsOnly hides every block that is not in a conflict group.
	conflictsOnly bool
}

func NewApp(s *schedule.Schedule, opts WeekOptions) *App {
	a := &App{schedule: s, opts: opts}
	a.refresh()
	return a
}

func (a *App) refresh() {
	a.report = a.schedule.Conflicts()

	a.opts.Conflicts = make([]bool, len(a.report.Blocks))
	for i := range a.report.Blocks {
		a.opts.Conflicts[i] = a.report.Conflicting(i)
	}

	a.opts.Colors = make(map[string]string)
	a.owners = a.owners[:0]
	for _, sec := range a.schedule.Sections {
		a.owners = append(a.owners, sec.ID)
		if sec.Color != "" {
			a.opts.Colors[sec.ID] = sec.Color
		}
	}
	a.cursor.clamp(len(a.owners))
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return a, tea.Quit
		case "up", "k":
			a.cursor.move(-1, len(a.owners))
		case "down", "j":
			a.cursor.move(1, len(a.owners))
		case "c":
			a.conflictsOnly = !a.conflictsOnly
		}
	}
	return a, nil
}

func (a *App) selected() string {
	if len(a.owners) == 0 {
		return ""
	}
	return a.owners[a.cursor.pos]
}

func (a *App) View() string {
	opts := a.opts
	opts.Highlight = a.selected()

	blocks, hints, conflicts := a.report.Blocks, a.report.Hints, opts.Conflicts
	if a.conflictsOnly {
		blocks, hints, conflicts = nil, nil, nil
		for i, b := range a.report.Blocks {
			if a.opts.Conflicts[i] {
				blocks = append(blocks, b)
				hints = append(hints, a.report.Hints[i])
				conflicts = append(conflicts, true)
			}
		}
	}
	opts.Conflicts = conflicts

	grid := RenderWeek(blocks, hints, opts)
	side := a.sectionList()

	header := titleStyle.Render(fmt.Sprintf("%s — %.1f credits", a.schedule.Name, a.schedule.Credits()))
	mode := ""
	if a.conflictsOnly {
		mode = warningStyle.Render(" [conflicts only]")
	}
	help := helpStyle.Render("↑/↓: select section • c: toggle conflicts • q: quit")

	return header + mode + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", boxStyle.Render(side)) + "\n" +
		help
}

func (a *App) sectionList() string {
	conflicted := make(map[string]bool)
	for _, g := range a.report.Groups {
		for _, owner := range schedule.Owners(g) {
			conflicted[owner] = true
		}
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Sections"))
	sb.WriteString("\n")
	if len(a.schedule.Sections) == 0 {
		sb.WriteString(dimStyle.Render("No sections scheduled"))
		sb.WriteString("\n")
	}
	for i, sec := range a.schedule.Sections {
		prefix := "  "
		if i == a.cursor.pos {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-14s %s", prefix, sec.ID, dimStyle.Render(sec.TimeString()))
		if i == a.cursor.pos {
			line = highlightStyle.Render(fmt.Sprintf("%s%-14s ", prefix, sec.ID)) + dimStyle.Render(sec.TimeString())
		}
		if conflicted[sec.ID] {
			line += " " + errorStyle.Render("!")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if n := len(a.report.Groups); n > 0 {
		sb.WriteString("\n")
		sb.WriteString(warningStyle.Render(fmt.Sprintf("%d conflict(s)", n)))
	} else {
		sb.WriteString("\n")
		sb.WriteString(successStyle.Render("No conflicts"))
	}
	return sb.String()
}

// Summary prints the conflict groups of a report in plain text.
func Summary(r *schedule.Report) string {
	if len(r.Groups) == 0 {
		return successStyle.Render("No conflicts.")
	}
	var sb strings.Builder
	sb.WriteString(warningStyle.Render(fmt.Sprintf("%d conflict group(s):", len(r.Groups))))
	sb.WriteString("\n")
	for i, g := range r.Groups {
		fmt.Fprintf(&sb, "  %d. ", i+1)
		parts := make([]string, 0, g.Len())
		for pos, idx := range g.Indices {
			b := g.Blocks[pos]
			h := r.Hints[idx]
			parts = append(parts, fmt.Sprintf("%s %s %s-%s (%.0f%% @ %.0f%%)",
				b.Owner, b.Day, b.Start, b.End, h.WidthPercent, h.LeftOffsetPercent))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

var _ tea.Model = (*App)(nil)
