package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/christopherklint97/plancal/internal/calendar"
	"github.com/christopherklint97/plancal/internal/config"
	"github.com/christopherklint97/plancal/internal/schedule"
	"github.com/christopherklint97/plancal/internal/store"
)

// feedCache spares remote calendars from refetching while watching.
var feedCache = calendar.NewFeedCache(5 * time.Minute)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.DB, error) {
	db, err := store.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// scheduleRef says where a schedule came from so edits can be written back.
type scheduleRef struct {
	path    string // set for schedule files
	library bool
}

func isCalendarSource(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasSuffix(lower, ".ics") ||
		strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isScheduleFile(ref string) bool {
	if ref == "" {
		return false
	}
	_, err := schedule.FormatFor(ref)
	return err == nil
}

// resolveSchedule loads a schedule named by a file path, an iCalendar source or
// a library entry. With no reference it falls back to storage.schedule and
// then to the library's active schedule.
func resolveSchedule(ctx context.Context, cfg *config.Config, ref string) (*schedule.Schedule, scheduleRef, error) {
	if ref == "" {
		ref = cfg.Storage.Schedule
	}

	if ref != "" && isCalendarSource(ref) {
		loc, err := cfg.Location()
		if err != nil {
			return nil, scheduleRef{}, err
		}
		im := calendar.NewImporter(loc, logger)
		im.Cache = feedCache
		s, err := im.Import(ctx, ref)
		if err != nil {
			return nil, scheduleRef{}, fmt.Errorf("importing %s: %w", ref, err)
		}
		return s, scheduleRef{}, nil
	}

	if isScheduleFile(ref) {
		s, err := schedule.Load(ref)
		if err != nil {
			return nil, scheduleRef{}, err
		}
		logger.Debug("loaded schedule file", "path", ref, "sections", len(s.Sections))
		return s, scheduleRef{path: ref}, nil
	}

	db, err := openStore(cfg)
	if err != nil {
		return nil, scheduleRef{}, err
	}
	defer db.Close()

	var s *schedule.Schedule
	if ref == "" {
		s, err = db.ActiveSchedule()
		if errors.Is(err, store.ErrNotFound) {
			return nil, scheduleRef{}, fmt.Errorf("no schedule given and none active — pass a file or run 'plancal use <name>'")
		}
	} else {
		s, err = db.GetSchedule(ref)
	}
	if err != nil {
		return nil, scheduleRef{}, err
	}
	logger.Debug("loaded schedule from library", "name", s.Name, "id", s.ID)
	return s, scheduleRef{library: true}, nil
}

// writeBack persists an edited schedule to wherever it was loaded from.
func writeBack(cfg *config.Config, s *schedule.Schedule, ref scheduleRef) error {
	switch {
	case ref.path != "":
		return schedule.Save(ref.path, s)
	case ref.library:
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.SaveSchedule(s)
	}
	return fmt.Errorf("schedule %q was imported from a calendar and cannot be edited in place", s.Name)
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
