package watch

import (
	"bytes"
	"context"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/christopherklint97/plancal/internal/schedule"
)

func fixedSource(s **schedule.Schedule) Source {
	return func(ctx context.Context) (*schedule.Schedule, error) {
		return *s, nil
	}
}

func twoSections(mathStart float64) *schedule.Schedule {
	s := schedule.New("fall")
	s.Sections = []schedule.Section{
		{ID: "CIS-1200-001", Meetings: []schedule.Meeting{{Day: "M", Start: 10, End: 11}}},
		{ID: "MATH-1140-002", Meetings: []schedule.Meeting{{Day: "M", Start: mathStart, End: mathStart + 1}}},
	}
	return s
}

func TestCheckReportsChanges(t *testing.T) {
	current := twoSections(12)
	var out bytes.Buffer
	var notes []string

	w := New(fixedSource(&current), time.Second,
		WithOutput(&out),
		WithNotifier(func(title, msg string) error {
			notes = append(notes, msg)
			return nil
		}),
	)
	ctx := context.Background()

	change, err := w.Check(ctx)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !change.Empty() {
		t.Errorf("expected no change, got %+v", change)
	}

	current = twoSections(10.30)
	change, err = w.Check(ctx)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := []string{"M CIS-1200-001 / MATH-1140-002"}
	if !reflect.DeepEqual(change.Added, want) {
		t.Errorf("added = %v, want %v", change.Added, want)
	}
	if len(notes) != 1 {
		t.Errorf("expected 1 notification, got %d", len(notes))
	}

	change, _ = w.Check(ctx)
	if !change.Empty() {
		t.Errorf("expected steady state, got %+v", change)
	}

	current = twoSections(11)
	change, _ = w.Check(ctx)
	if !reflect.DeepEqual(change.Resolved, want) {
		t.Errorf("resolved = %v, want %v", change.Resolved, want)
	}
	if len(notes) != 1 {
		t.Errorf("resolution should not notify, got %d notifications", len(notes))
	}

	if !strings.Contains(out.String(), "New conflict: M CIS-1200-001") || !strings.Contains(out.String(), "Resolved:") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	current := twoSections(10.30)
	dir := t.TempDir()
	var out bytes.Buffer

	w := New(fixedSource(&current), 10*time.Millisecond, WithOutput(&out), WithPIDDir(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if pid, err := ReadPID(dir); err == nil {
			if pid != os.Getpid() {
				t.Errorf("pid = %d, want %d", pid, os.Getpid())
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("PID file never written")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if _, err := ReadPID(dir); err == nil {
		t.Error("expected PID file removed")
	}
}
