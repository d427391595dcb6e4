package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/christopherklint97/plancal/internal/schedule"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func plan(name string) *schedule.Schedule {
	s := schedule.New(name)
	s.Semester = "2026C"
	s.Sections = []schedule.Section{
		{ID: "CIS-1200-001", Meetings: []schedule.Meeting{{Day: "M", Start: 10, End: 11}}},
	}
	return s
}

func TestSaveAndGet(t *testing.T) {
	db := openTest(t)
	s := plan("fall")

	if err := db.SaveSchedule(s); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}

	byName, err := db.GetSchedule("fall")
	if err != nil {
		t.Fatalf("GetSchedule by name: %v", err)
	}
	byID, err := db.GetSchedule(s.ID)
	if err != nil {
		t.Fatalf("GetSchedule by id: %v", err)
	}
	if byName.ID != s.ID || byID.Name != "fall" {
		t.Errorf("got %+v / %+v", byName, byID)
	}
	if len(byID.Sections) != 1 || byID.Sections[0].Meetings[0].End != 11 {
		t.Errorf("body not preserved: %+v", byID.Sections)
	}

	s.Sections = append(s.Sections, schedule.Section{ID: "MATH-1140-002"})
	if err := db.SaveSchedule(s); err != nil {
		t.Fatalf("SaveSchedule update: %v", err)
	}
	list, err := db.ListSchedules()
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	if len(list) != 1 || list[0].Sections != 2 || list[0].Semester != "2026C" {
		t.Errorf("list = %+v", list)
	}
}

func TestGetMissing(t *testing.T) {
	db := openTest(t)
	if _, err := db.GetSchedule("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.ActiveSchedule(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestActiveAndDelete(t *testing.T) {
	db := openTest(t)
	fall, spring := plan("fall"), plan("spring")
	for _, s := range []*schedule.Schedule{fall, spring} {
		if err := db.SaveSchedule(s); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := db.SetActive("spring"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	active, err := db.ActiveSchedule()
	if err != nil {
		t.Fatalf("ActiveSchedule: %v", err)
	}
	if active.ID != spring.ID {
		t.Errorf("active = %s, want %s", active.Name, spring.Name)
	}

	if err := db.DeleteSchedule("fall"); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
	if _, err := db.ActiveSchedule(); err != nil {
		t.Errorf("deleting another schedule cleared the active one: %v", err)
	}

	if err := db.DeleteSchedule(spring.ID); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
	if _, err := db.ActiveSchedule(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected no active schedule, got %v", err)
	}
}

func TestResaveFileWithoutID(t *testing.T) {
	db := openTest(t)
	path := filepath.Join(t.TempDir(), "fall.toml")
	doc := `name = "Fall"

[[sections]]
id = "CIS-1200-001"
[[sections.meetings]]
day = "M"
start = 10.0
end = 11.0
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	var ids []string
	for i := 0; i < 2; i++ {
		s, err := schedule.Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if err := db.SaveSchedule(s); err != nil {
			t.Fatalf("save #%d: %v", i+1, err)
		}
		ids = append(ids, s.ID)
	}

	if ids[0] != ids[1] {
		t.Errorf("second save got id %s, want the stored %s", ids[1], ids[0])
	}
	list, err := db.ListSchedules()
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	if len(list) != 1 || list[0].ID != ids[0] {
		t.Errorf("list = %+v", list)
	}
}

func TestRenameOntoTakenName(t *testing.T) {
	db := openTest(t)
	fall, spring := plan("fall"), plan("spring")
	for _, s := range []*schedule.Schedule{fall, spring} {
		if err := db.SaveSchedule(s); err != nil {
			t.Fatal(err)
		}
	}

	id := spring.ID
	spring.Name = "fall"
	if err := db.SaveSchedule(spring); err == nil {
		t.Fatal("expected error renaming onto an existing name")
	}
	if spring.ID != id {
		t.Errorf("id changed to %s on a failed rename", spring.ID)
	}
}
