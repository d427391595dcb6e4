package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/christopherklint97/plancal/internal/config"
	"github.com/christopherklint97/plancal/internal/schedule"
	"github.com/spf13/cobra"
)

func testCommand(t *testing.T, setup func(c *cobra.Command), flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	if setup != nil {
		setup(c)
	}
	for name, value := range flags {
		if err := c.Flags().Set(name, value); err != nil {
			t.Fatalf("setting --%s: %v", name, err)
		}
	}
	c.SetContext(context.Background())
	return c
}

func writeSchedule(t *testing.T, dir, name string, s *schedule.Schedule) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := schedule.Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return path
}

func fallPlan() *schedule.Schedule {
	s := schedule.New("Fall")
	s.Sections = []schedule.Section{
		{ID: "CIS-1200-001", Meetings: []schedule.Meeting{
			{Day: "M", Start: 10, End: 11},
			{Day: "W", Start: 10, End: 11},
		}},
	}
	return s
}

func load(t *testing.T, path string) *schedule.Schedule {
	t.Helper()
	s, err := schedule.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestCartCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLANCAL_CONFIG_DIR", dir)
	path := writeSchedule(t, dir, "fall.toml", fallPlan())

	c := testCommand(t, sectionFlags, map[string]string{"meet": "MW 10:30-11:30", "title": "Calculus II"})
	if err := runCartAdd(c, []string{path, "MATH-1140-002"}); err != nil {
		t.Fatalf("cart add: %v", err)
	}
	s := load(t, path)
	sec, ok := s.CartSection("MATH-1140-002")
	if !ok || len(sec.Meetings) != 2 || sec.Title != "Calculus II" {
		t.Fatalf("cart = %+v", s.Cart)
	}

	if err := runCartAdd(testCommand(t, sectionFlags, nil), []string{path, "PHYS-0150-001"}); err == nil {
		t.Error("expected cart add without meetings to fail")
	}

	if err := runAdd(testCommand(t, sectionFlags, nil), []string{path, "MATH-1140-002"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	s = load(t, path)
	if len(s.Sections) != 2 || len(s.Cart) != 0 {
		t.Fatalf("after add: sections %d, cart %d", len(s.Sections), len(s.Cart))
	}
	if status, _ := s.FitScheduled("MATH-1140-002"); !status.Conflicts {
		t.Error("expected MATH to conflict with CIS")
	}

	dropFlags := func(c *cobra.Command) { c.Flags().Bool("to-cart", false, "") }
	if err := runDrop(testCommand(t, dropFlags, map[string]string{"to-cart": "true"}), []string{path, "MATH-1140-002"}); err != nil {
		t.Fatalf("drop --to-cart: %v", err)
	}
	s = load(t, path)
	if _, ok := s.CartSection("MATH-1140-002"); !ok || len(s.Sections) != 1 {
		t.Fatalf("after drop: sections %+v, cart %+v", s.Sections, s.Cart)
	}

	if err := runCartRemove(testCommand(t, nil, nil), []string{path, "MATH-1140-002"}); err != nil {
		t.Fatalf("cart remove: %v", err)
	}
	if err := runDrop(testCommand(t, dropFlags, nil), []string{path, "CIS-1200-001"}); err != nil {
		t.Fatalf("drop: %v", err)
	}
	s = load(t, path)
	if len(s.Sections) != 0 || len(s.Cart) != 0 {
		t.Errorf("expected an empty schedule, got %+v / %+v", s.Sections, s.Cart)
	}
}

func TestAddFromCatalog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLANCAL_CONFIG_DIR", dir)
	path := writeSchedule(t, dir, "fall.yaml", fallPlan())

	catalog := schedule.New("Catalog")
	catalog.Cart = []schedule.Section{
		{ID: "BIOL-1010-001", Title: "Intro Biology", Credits: 1, Meetings: []schedule.Meeting{
			{Day: "T", Start: 9, End: 10.3, Room: "LRSM 112"},
		}},
	}
	catalogPath := writeSchedule(t, dir, "catalog.json", catalog)

	c := testCommand(t, sectionFlags, map[string]string{"from": catalogPath})
	if err := runAdd(c, []string{path, "BIOL-1010-001"}); err != nil {
		t.Fatalf("add --from: %v", err)
	}
	sec, ok := load(t, path).Section("BIOL-1010-001")
	if !ok || sec.Title != "Intro Biology" || len(sec.Meetings) != 1 || sec.Meetings[0].Room != "LRSM 112" {
		t.Errorf("section = %+v", sec)
	}

	c = testCommand(t, sectionFlags, map[string]string{"from": catalogPath})
	if err := runAdd(c, []string{path, "CHEM-1010-001"}); err == nil {
		t.Error("expected a section missing from the catalog to fail")
	}
}

func TestUseFileThenLibrary(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLANCAL_CONFIG_DIR", dir)
	path := writeSchedule(t, dir, "fall.toml", fallPlan())

	if err := runUse(testCommand(t, nil, nil), []string{path}); err != nil {
		t.Fatalf("use file: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Schedule != path {
		t.Fatalf("storage.schedule = %q, want %q", cfg.Storage.Schedule, path)
	}

	saveFlags := func(c *cobra.Command) { c.Flags().Bool("use", false, "") }
	if err := runSave(testCommand(t, saveFlags, nil), []string{path}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := runUse(testCommand(t, nil, nil), []string{"Fall"}); err != nil {
		t.Fatalf("use library: %v", err)
	}
	cfg, err = config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Schedule != "" {
		t.Errorf("storage.schedule = %q, want it cleared", cfg.Storage.Schedule)
	}

	s, ref, err := resolveSchedule(context.Background(), cfg, "")
	if err != nil {
		t.Fatalf("resolveSchedule: %v", err)
	}
	if s.Name != "Fall" || !ref.library {
		t.Errorf("resolved %q (library %v)", s.Name, ref.library)
	}
}
