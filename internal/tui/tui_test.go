package tui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/plancal/internal/meeting"
	"github.com/christopherklint97/plancal/internal/schedule"
)

func weekOpts() WeekOptions {
	return WeekOptions{
		Days:        []meeting.Day{meeting.Monday, meeting.Tuesday},
		DayStart:    9,
		DayEnd:      12,
		ColumnWidth: 16,
	}
}

func lineAt(t *testing.T, grid, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(grid, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			return line
		}
	}
	t.Fatalf("no line starting with %q in:\n%s", prefix, grid)
	return ""
}

func TestRenderWeekSideBySide(t *testing.T) {
	blocks := []meeting.Block{
		{Day: meeting.Monday, Start: 10, End: 11, Owner: "CIS-1200-001"},
		{Day: meeting.Monday, Start: 10, End: 11.30, Owner: "MATH-1140-002"},
		{Day: meeting.Tuesday, Start: 9, End: 10, Owner: "ECON-0100"},
	}
	grid := RenderWeek(blocks, meeting.AssignLayout(blocks), weekOpts())

	header := strings.Split(grid, "\n")[0]
	if !strings.Contains(header, "Mon") || !strings.Contains(header, "Tue") {
		t.Errorf("header = %q", header)
	}

	ten := lineAt(t, grid, "10:00")
	if !strings.Contains(ten, "CIS-1200MATH-114") {
		t.Errorf("expected labels side by side at 10:00, got %q", ten)
	}

	nine := lineAt(t, grid, "9:00")
	if !strings.Contains(nine, "ECON-0100") {
		t.Errorf("expected ECON at 9:00, got %q", nine)
	}

	if rows := strings.Count(grid, "\n"); rows != 1+6 {
		t.Errorf("expected header and 6 half-hour rows, got %d lines", rows)
	}
}

func TestRenderWeekSkipsHiddenDays(t *testing.T) {
	blocks := []meeting.Block{{Day: meeting.Friday, Start: 9, End: 10, Owner: "HIDDEN"}}
	grid := RenderWeek(blocks, nil, weekOpts())
	if strings.Contains(grid, "HIDDEN") {
		t.Errorf("Friday block drawn on a Mon/Tue grid:\n%s", grid)
	}
}

func TestRenderWeekEmptyOptions(t *testing.T) {
	if got := RenderWeek(nil, nil, WeekOptions{}); got != "" {
		t.Errorf("expected empty grid, got %q", got)
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		hint        meeting.StyleHint
		left, right int
	}{
		{meeting.FullWidth, 0, 16},
		{meeting.StyleHint{WidthPercent: 50, LeftOffsetPercent: 50}, 8, 16},
		{meeting.StyleHint{WidthPercent: 100.0 / 3, LeftOffsetPercent: 200.0 / 3}, 11, 16},
		{meeting.StyleHint{WidthPercent: 1, LeftOffsetPercent: 99}, 15, 16},
	}
	for _, tt := range tests {
		l, r := span(tt.hint, 16)
		if l != tt.left || r != tt.right {
			t.Errorf("span(%+v) = %d,%d want %d,%d", tt.hint, l, r, tt.left, tt.right)
		}
	}
}

func TestParseDays(t *testing.T) {
	days, err := ParseDays("MWF")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(days, []meeting.Day{meeting.Monday, meeting.Wednesday, meeting.Friday}) {
		t.Errorf("days = %v", days)
	}
	if _, err := ParseDays("MX"); err == nil {
		t.Error("expected error for X")
	}
}

func conflicted() *schedule.Schedule {
	s := schedule.New("fall")
	s.Sections = []schedule.Section{
		{ID: "CIS-1200-001", Meetings: []schedule.Meeting{{Day: "M", Start: 10, End: 11}}},
		{ID: "MATH-1140-002", Meetings: []schedule.Meeting{{Day: "M", Start: 10.30, End: 11.30}}},
		{ID: "ECON-0100-001", Meetings: []schedule.Meeting{{Day: "T", Start: 9, End: 10}}},
	}
	s.Cart = []schedule.Section{
		{ID: "PHYS-0150-001", Meetings: []schedule.Meeting{{Day: "T", Start: 9.30, End: 10.30}}},
		{ID: "WRIT-0020-010", Title: "Writing Seminar", Meetings: []schedule.Meeting{{Day: "F", Start: 9, End: 10}}},
	}
	return s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppNavigation(t *testing.T) {
	app := NewApp(conflicted(), weekOpts())

	if app.selected() != "CIS-1200-001" {
		t.Errorf("selected = %q", app.selected())
	}
	app.Update(key("j"))
	app.Update(key("j"))
	app.Update(key("j"))
	if app.selected() != "ECON-0100-001" {
		t.Errorf("cursor should stop at last section, got %q", app.selected())
	}

	view := app.View()
	if !strings.Contains(view, "1 conflict(s)") {
		t.Errorf("expected conflict count in view:\n%s", view)
	}

	app.Update(key("c"))
	if !app.conflictsOnly {
		t.Fatal("expected conflicts-only mode")
	}
	view = app.View()
	if strings.Contains(lineAt(t, view, "9:00"), "ECON") {
		t.Errorf("conflict-free ECON block drawn in conflicts-only mode:\n%s", view)
	}

	_, cmd := app.Update(key("q"))
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestCartPickerSelect(t *testing.T) {
	r := conflicted().Conflicts()
	app := NewCartPickerApp(r.Cart)

	view := app.View()
	if !strings.Contains(view, "conflicts with ECON-0100-001") {
		t.Errorf("expected conflict badge:\n%s", view)
	}
	if !strings.Contains(view, "1 of 2 fit") {
		t.Errorf("expected fit count:\n%s", view)
	}
	if strings.Index(view, "WRIT-0020-010") > strings.Index(view, "PHYS-0150-001") {
		t.Errorf("expected the fitting section listed first:\n%s", view)
	}

	app.Update(key("enter"))
	if app.GetResult() != nil {
		t.Fatal("enter with nothing selected should not finish")
	}

	app.Update(key(" "))
	_, cmd := app.Update(key("enter"))
	if cmd == nil {
		t.Error("expected quit command")
	}

	res := app.GetResult()
	if res == nil || res.Canceled {
		t.Fatalf("result = %+v", res)
	}
	if !reflect.DeepEqual(res.SectionIDs, []string{"WRIT-0020-010"}) {
		t.Errorf("ids = %v", res.SectionIDs)
	}
}

func TestCartPickerFilterAndCancel(t *testing.T) {
	r := conflicted().Conflicts()
	app := NewCartPickerApp(r.Cart)

	app.Update(key("seminar"))
	if got := len(app.picker.rows); got != 1 {
		t.Fatalf("expected 1 match for title filter, got %d", got)
	}

	app.Update(key("esc"))
	if res := app.GetResult(); res == nil || !res.Canceled {
		t.Errorf("expected canceled result, got %+v", res)
	}
}

func TestCartPickerFitsOnly(t *testing.T) {
	r := conflicted().Conflicts()
	app := NewCartPickerApp(r.Cart)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := len(app.picker.rows); got != 1 || app.picker.entries[app.picker.rows[0]].Section.ID != "WRIT-0020-010" {
		t.Fatalf("rows = %v", app.picker.rows)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	app.Update(key("enter"))
	if res := app.GetResult(); res == nil || !reflect.DeepEqual(res.SectionIDs, []string{"WRIT-0020-010"}) {
		t.Errorf("select all that fit = %+v", res)
	}
}

func TestCartPickerWarnsOnOverlappingPicks(t *testing.T) {
	entries := []schedule.CartStatus{
		{Section: schedule.Section{ID: "BIOL-1010-001", Credits: 1, Meetings: []schedule.Meeting{{Day: "W", Start: 14, End: 15}}}},
		{Section: schedule.Section{ID: "CHEM-1010-001", Credits: 1.5, Meetings: []schedule.Meeting{{Day: "W", Start: 14.30, End: 16}}}},
	}
	app := NewCartPickerApp(entries)

	app.Update(key(" "))
	if strings.Contains(app.View(), "overlap each other") {
		t.Error("a single pick cannot overlap")
	}

	app.Update(key("down"))
	app.Update(key(" "))
	view := app.View()
	if !strings.Contains(view, "BIOL-1010-001 and CHEM-1010-001 overlap each other") {
		t.Errorf("expected overlap warning:\n%s", view)
	}
	if !strings.Contains(view, "2 selected, 2.5 credits") {
		t.Errorf("expected selection total:\n%s", view)
	}
}

func TestListCursorWindow(t *testing.T) {
	c := listCursor{visible: 3}
	for i := 0; i < 5; i++ {
		c.move(1, 10)
	}
	if start, end := c.window(10); start != 3 || end != 6 {
		t.Errorf("window = %d-%d, want 3-6", start, end)
	}
	c.move(20, 10)
	if c.pos != 9 {
		t.Errorf("pos = %d, want 9", c.pos)
	}
	c.clamp(2)
	if c.pos != 1 {
		t.Errorf("pos after clamp = %d, want 1", c.pos)
	}
	if start, end := c.window(2); start != 0 || end != 2 {
		t.Errorf("window = %d-%d, want 0-2", start, end)
	}
	c.clamp(0)
	if c.pos != 0 {
		t.Errorf("pos on empty list = %d", c.pos)
	}
}

func TestSummary(t *testing.T) {
	got := Summary(conflicted().Conflicts())
	if !strings.Contains(got, "CIS-1200-001 M 10:00-11:00 (50% @ 0%)") ||
		!strings.Contains(got, "MATH-1140-002 M 10:30-11:30 (50% @ 50%)") {
		t.Errorf("summary = %q", got)
	}

	empty := schedule.New("empty")
	if got := Summary(empty.Conflicts()); !strings.Contains(got, "No conflicts") {
		t.Errorf("summary = %q", got)
	}
}
