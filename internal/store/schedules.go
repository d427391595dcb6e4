package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/christopherklint97/plancal/internal/schedule"
)

const activeKey = "active_schedule"

// Summary is a library row without the decoded body.
type Summary struct {
	ID        string
	Name      string
	Semester  string
	Sections  int
	UpdatedAt time.Time
}

// SaveSchedule inserts or replaces a schedule by id. Names are unique: a
// schedule whose id is not stored yet takes over the id of the row with its
// name, so s.ID may change.
func (db *DB) SaveSchedule(s *schedule.Schedule) error {
	if s.ID == "" {
		return fmt.Errorf("schedule %q has no id", s.Name)
	}
	if err := db.adoptID(s); err != nil {
		return err
	}
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO schedules (id, name, semester, body, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			semester = excluded.semester,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		s.ID, s.Name, s.Semester, string(body), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}
	return nil
}

func (db *DB) adoptID(s *schedule.Schedule) error {
	var existing string
	err := db.QueryRow("SELECT id FROM schedules WHERE name = ?", s.Name).Scan(&existing)
	if err == sql.ErrNoRows || existing == s.ID {
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up schedule %q: %w", s.Name, err)
	}

	var stored int
	if err := db.QueryRow("SELECT COUNT(*) FROM schedules WHERE id = ?", s.ID).Scan(&stored); err != nil {
		return fmt.Errorf("looking up schedule %s: %w", s.ID, err)
	}
	if stored > 0 {
		return fmt.Errorf("cannot rename schedule %s: name %q is taken", s.ID, s.Name)
	}
	s.ID = existing
	return nil
}

// GetSchedule looks a schedule up by id, then by name.
func (db *DB) GetSchedule(idOrName string) (*schedule.Schedule, error) {
	var body string
	err := db.QueryRow(
		"SELECT body FROM schedules WHERE id = ? OR name = ? ORDER BY id = ? DESC LIMIT 1",
		idOrName, idOrName, idOrName,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("schedule %q: %w", idOrName, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}

	var s schedule.Schedule
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		return nil, fmt.Errorf("decoding schedule %q: %w", idOrName, err)
	}
	return &s, nil
}

func (db *DB) ListSchedules() ([]Summary, error) {
	rows, err := db.Query(
		`SELECT id, name, semester, body, updated_at FROM schedules ORDER BY updated_at DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var body, updated string
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Semester, &body, &updated); err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}

		var s schedule.Schedule
		if err := json.Unmarshal([]byte(body), &s); err == nil {
			sum.Sections = len(s.Sections)
		}
		if t, err := time.Parse(time.RFC3339, updated); err == nil {
			sum.UpdatedAt = t
		}
		out = append(out, sum)
	}

	return out, rows.Err()
}

func (db *DB) DeleteSchedule(idOrName string) error {
	s, err := db.GetSchedule(idOrName)
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM schedules WHERE id = ?", s.ID); err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}

	active, err := db.ActiveID()
	if err != nil {
		return err
	}
	if active == s.ID {
		_, err = db.Exec("DELETE FROM state WHERE key = ?", activeKey)
	}
	return err
}

// SetActive marks a stored schedule as the one commands use by default.
func (db *DB) SetActive(idOrName string) (*schedule.Schedule, error) {
	s, err := db.GetSchedule(idOrName)
	if err != nil {
		return nil, err
	}
	if err := db.SetState(activeKey, s.ID); err != nil {
		return nil, fmt.Errorf("saving active schedule: %w", err)
	}
	return s, nil
}

// ActiveID returns the id of the active schedule, or "" when none is set.
func (db *DB) ActiveID() (string, error) {
	return db.GetState(activeKey)
}

// ActiveSchedule returns ErrNotFound when no schedule was selected.
func (db *DB) ActiveSchedule() (*schedule.Schedule, error) {
	id, err := db.ActiveID()
	if err != nil {
		return nil, fmt.Errorf("reading active schedule: %w", err)
	}
	if id == "" {
		return nil, fmt.Errorf("active schedule: %w", ErrNotFound)
	}
	return db.GetSchedule(id)
}
