package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/plancal/internal/meeting"
	"github.com/christopherklint97/plancal/internal/schedule"
)

const cartPickerVisible = 15

// cartPickerModel lists cart sections with the ones that fit the schedule
// first. Selected sections are checked against each other as well.
type cartPickerModel struct {
	entries []schedule.CartStatus
	// rows are the entries on screen, fitting ones before conflicting ones.
	rows     []int
	selected map[int]bool
	cursor   listCursor
	filter   textinput.Model
	fitsOnly bool
	done     bool
	canceled bool
}

// CartPickerResult holds the cart sections the user chose to schedule, in
// cart order.
type CartPickerResult struct {
	SectionIDs []string
	Canceled   bool
}

// CartPickerApp wraps cartPickerModel for standalone use with tea.NewProgram.
type CartPickerApp struct {
	picker cartPickerModel
	result *CartPickerResult
}

func NewCartPickerApp(entries []schedule.CartStatus) *CartPickerApp {
	return &CartPickerApp{
		picker: newCartPicker(entries),
	}
}

func (a *CartPickerApp) Init() tea.Cmd {
	return a.picker.Init()
}

func (a *CartPickerApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.picker.Update(msg)
	a.picker = m.(cartPickerModel)

	if a.picker.done || a.picker.canceled {
		a.result = a.picker.Result()
		return a, tea.Quit
	}

	return a, cmd
}

func (a *CartPickerApp) View() string {
	return a.picker.View()
}

func (a *CartPickerApp) GetResult() *CartPickerResult {
	return a.result
}

func newCartPicker(entries []schedule.CartStatus) cartPickerModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by id, title or instructor..."
	ti.Focus()

	m := cartPickerModel{
		entries:  entries,
		selected: make(map[int]bool),
		cursor:   listCursor{visible: cartPickerVisible},
		filter:   ti,
	}
	m.applyFilter()
	return m
}

func (m cartPickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m cartPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, nil
		case "enter":
			m.done = len(m.selected) > 0
			return m, nil
		case " ":
			if idx, ok := m.current(); ok {
				if m.selected[idx] {
					delete(m.selected, idx)
				} else {
					m.selected[idx] = true
				}
			}
			return m, nil
		case "ctrl+a":
			for _, idx := range m.rows {
				if !m.entries[idx].Conflicts {
					m.selected[idx] = true
				}
			}
			return m, nil
		case "tab":
			m.fitsOnly = !m.fitsOnly
			m.applyFilter()
			return m, nil
		case "up":
			m.cursor.move(-1, len(m.rows))
			return m, nil
		case "down":
			m.cursor.move(1, len(m.rows))
			return m, nil
		}
	}

	var cmd tea.Cmd
	prevFilter := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != prevFilter {
		m.applyFilter()
	}

	return m, cmd
}

func (m cartPickerModel) current() (int, bool) {
	if len(m.rows) == 0 {
		return 0, false
	}
	return m.rows[m.cursor.pos], true
}

func (m cartPickerModel) matches(e schedule.CartStatus, query string) bool {
	if m.fitsOnly && e.Conflicts {
		return false
	}
	if query == "" {
		return true
	}
	for _, field := range []string{e.Section.ID, e.Section.Title, e.Section.Instructor} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (m *cartPickerModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	var fits, conflicts []int
	for i, e := range m.entries {
		if !m.matches(e, query) {
			continue
		}
		if e.Conflicts {
			conflicts = append(conflicts, i)
		} else {
			fits = append(fits, i)
		}
	}
	m.rows = append(fits, conflicts...)
	m.cursor.clamp(len(m.rows))
}

// clashes names pairs of selected sections that overlap each other.
func (m cartPickerModel) clashes() []string {
	var ids []int
	for i := range m.entries {
		if m.selected[i] {
			ids = append(ids, i)
		}
	}

	var out []string
	for x := 0; x < len(ids); x++ {
		a := m.entries[ids[x]].Section
		for y := x + 1; y < len(ids); y++ {
			b := m.entries[ids[y]].Section
			if meeting.SetsIntersect(a.Blocks(), b.Blocks()) {
				out = append(out, a.ID+" and "+b.ID)
			}
		}
	}
	return out
}

func (m cartPickerModel) View() string {
	var b strings.Builder

	fit := 0
	for _, e := range m.entries {
		if !e.Conflicts {
			fit++
		}
	}
	b.WriteString(titleStyle.Render("Schedule Cart Sections"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d of %d fit", fit, len(m.entries))))
	if m.fitsOnly {
		b.WriteString(warningStyle.Render(" [fitting only]"))
	}
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("  No sections match filter"))
		b.WriteString("\n")
	}

	start, end := m.cursor.window(len(m.rows))
	for vi := start; vi < end; vi++ {
		idx := m.rows[vi]
		e := m.entries[idx]

		if vi == start || m.entries[m.rows[vi-1]].Conflicts != e.Conflicts {
			if e.Conflicts {
				b.WriteString(errorStyle.Render("Conflicts"))
			} else {
				b.WriteString(successStyle.Render("Fits"))
			}
			b.WriteString("\n")
		}

		check := "[ ]"
		if m.selected[idx] {
			check = "[x]"
		}
		head := fmt.Sprintf("  %s %-16s", check, e.Section.ID)
		if vi == m.cursor.pos {
			head = highlightStyle.Render(fmt.Sprintf("> %s %-16s", check, e.Section.ID))
		}

		detail := e.Section.TimeString()
		if e.Section.Title != "" {
			detail += "  " + e.Section.Title
		}
		b.WriteString(head + " " + dimStyle.Render(detail))
		if e.Conflicts {
			b.WriteString(" " + errorStyle.Render("conflicts with "+strings.Join(e.With, ", ")))
		}
		b.WriteString("\n")
	}

	credits := 0.0
	for idx := range m.selected {
		credits += m.entries[idx].Section.Credits
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d selected, %.1f credits", len(m.selected), credits))
	for _, pair := range m.clashes() {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("! " + pair + " overlap each other"))
	}

	b.WriteString(helpStyle.Render(
		"\nSpace: toggle • Ctrl+A: select all that fit • Tab: fitting only • Enter: confirm • Esc: cancel"))

	return b.String()
}

func (m cartPickerModel) Result() *CartPickerResult {
	if m.canceled {
		return &CartPickerResult{Canceled: true}
	}
	var ids []string
	for i, e := range m.entries {
		if m.selected[i] {
			ids = append(ids, e.Section.ID)
		}
	}
	return &CartPickerResult{SectionIDs: ids}
}
