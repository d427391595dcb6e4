package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/christopherklint97/plancal/internal/schedule"
)

// Source yields the schedule to check on each tick.
type Source func(ctx context.Context) (*schedule.Schedule, error)

// FileSource reloads a schedule file on every call.
func FileSource(path string) Source {
	return func(ctx context.Context) (*schedule.Schedule, error) {
		return schedule.Load(path)
	}
}

// Notifier delivers a desktop alert.
type Notifier func(title, message string) error

// Watcher re-checks a schedule on an interval and reports conflicts that
// appear or go away between checks.
type Watcher struct {
	source   Source
	interval time.Duration
	notify   Notifier
	out      io.Writer
	logger   *slog.Logger
	pidDir   string

	known map[string]bool
}

type Option func(*Watcher)

func WithNotifier(n Notifier) Option {
	return func(w *Watcher) { w.notify = n }
}

func WithOutput(out io.Writer) Option {
	return func(w *Watcher) { w.out = out }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithPIDDir makes Run write a PID file there so ReadPID can find the process.
func WithPIDDir(dir string) Option {
	return func(w *Watcher) { w.pidDir = dir }
}

func New(source Source, interval time.Duration, opts ...Option) *Watcher {
	w := &Watcher{
		source:   source,
		interval: interval,
		out:      os.Stdout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		known:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.interval <= 0 {
		w.interval = time.Minute
	}
	return w
}

func (w *Watcher) Run(ctx context.Context) error {
	if w.pidDir != "" {
		if err := writePID(w.pidDir); err != nil {
			return fmt.Errorf("writing PID file: %w", err)
		}
		defer removePID(w.pidDir)
	}

	fmt.Fprintf(w.out, "Watching for conflicts (interval: %s)\n", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.Check(ctx); err != nil {
			fmt.Fprintf(w.out, "Error checking schedule: %v\n", err)
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(w.out, "\nWatcher stopped.")
			return nil
		case <-ticker.C:
		}
	}
}

// Change is the difference between two consecutive checks.
type Change struct {
	Added    []string
	Resolved []string
}

func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Resolved) == 0
}

// Check loads the schedule once and compares its conflicts to the last check.
func (w *Watcher) Check(ctx context.Context) (Change, error) {
	s, err := w.source(ctx)
	if err != nil {
		return Change{}, err
	}

	current := make(map[string]bool)
	for _, key := range conflictKeys(s) {
		current[key] = true
	}

	var change Change
	for key := range current {
		if !w.known[key] {
			change.Added = append(change.Added, key)
		}
	}
	for key := range w.known {
		if !current[key] {
			change.Resolved = append(change.Resolved, key)
		}
	}
	sort.Strings(change.Added)
	sort.Strings(change.Resolved)
	w.known = current

	w.logger.Debug("checked schedule", "schedule", s.Name, "conflicts", len(current),
		"added", len(change.Added), "resolved", len(change.Resolved))

	for _, key := range change.Added {
		fmt.Fprintf(w.out, "New conflict: %s\n", key)
	}
	for _, key := range change.Resolved {
		fmt.Fprintf(w.out, "Resolved: %s\n", key)
	}

	if len(change.Added) > 0 && w.notify != nil {
		msg := strings.Join(change.Added, "\n")
		if err := w.notify("plancal: schedule conflict", msg); err != nil {
			w.logger.Error("sending notification", "error", err)
		}
	}

	return change, nil
}

// conflictKeys names each conflict by its day and the owners involved, so a
// conflict keeps its identity while unrelated meetings move around.
func conflictKeys(s *schedule.Schedule) []string {
	r := s.Conflicts()
	keys := make([]string, 0, len(r.Groups))
	for _, g := range r.Groups {
		owners := schedule.Owners(g)
		sort.Strings(owners)
		keys = append(keys, fmt.Sprintf("%s %s", g.Blocks[0].Day, strings.Join(owners, " / ")))
	}
	return keys
}

func pidPath(dir string) string {
	return filepath.Join(dir, "plancal-watch.pid")
}

func writePID(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(pidPath(dir), []byte(strconv.Itoa(os.Getpid())), 0644)
}

func removePID(dir string) {
	os.Remove(pidPath(dir))
}

func ReadPID(dir string) (int, error) {
	data, err := os.ReadFile(pidPath(dir))
	if err != nil {
		return 0, fmt.Errorf("no running watcher found")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file")
	}

	return pid, nil
}
