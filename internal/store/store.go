package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/username/care-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// DayRecord holds the shift assignment and comments for one calendar
// day. The JSON field names match the persisted calendar file.
type DayRecord struct {
	Turno       string   `json:"turno,omitempty"`
	Comentarios []string `json:"comentarios,omitempty"`
}

// Empty reports whether the record carries no data. An empty record is
// equivalent to the day being absent from the store.
func (r DayRecord) Empty() bool {
	return r.Turno == "" && len(r.Comentarios) == 0
}

// Store is the single writable source of truth for day assignments and
// comments, persisted as one JSON file keyed by YYYY-MM-DD.
type Store struct {
	path   string
	logger *zap.Logger
	days   map[string]DayRecord
}

// NewStore creates a store bound to the given file path
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
		days:   make(map[string]DayRecord),
	}
}

// Load reads the calendar file. A missing, empty, or corrupt file
// yields an empty store: losing the file must never take the session
// down, so parse failures are logged and swallowed.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.days = make(map[string]DayRecord)
			return nil
		}
		return fmt.Errorf("failed to read calendar file: %w", err)
	}

	days := make(map[string]DayRecord)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &days); err != nil {
			s.logger.Warn("Calendar file is corrupt, starting empty",
				zap.String("file", s.path),
				zap.Error(err))
			days = make(map[string]DayRecord)
		}
	}

	s.days = days
	s.logger.Info("Calendar loaded",
		zap.String("file", s.path),
		zap.Int("days", len(s.days)))

	return nil
}

// Get returns the record for the given date. Dates not present in the
// store yield an empty record, never an error.
func (s *Store) Get(date time.Time) DayRecord {
	return s.days[dateutil.FormatDay(date)]
}

// SetAssignment overwrites the caregiver code for the given date,
// creating the record if needed. An empty code unassigns the day.
func (s *Store) SetAssignment(date time.Time, code string) {
	key := dateutil.FormatDay(date)
	rec := s.days[key]
	rec.Turno = code
	s.days[key] = rec
}

// AppendComment appends text to the date's comment list, creating the
// record if needed. Comments are append-only; empty text is kept as-is.
func (s *Store) AppendComment(date time.Time, text string) {
	key := dateutil.FormatDay(date)
	rec := s.days[key]
	rec.Comentarios = append(rec.Comentarios, text)
	s.days[key] = rec
}

// Clear removes every entry from the store
func (s *Store) Clear() {
	s.days = make(map[string]DayRecord)
}

// Len returns the number of days carrying data
func (s *Store) Len() int {
	n := 0
	for _, rec := range s.days {
		if !rec.Empty() {
			n++
		}
	}
	return n
}

// Save writes the full calendar to disk. The write goes to a temp file
// first and is renamed over the target, so a failed write never leaves
// a torn file behind. Fully empty records are pruned so they round-trip
// as absent days.
func (s *Store) Save() error {
	out := make(map[string]DayRecord, len(s.days))
	for key, rec := range s.days {
		if !rec.Empty() {
			out[key] = rec
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal calendar: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace calendar file: %w", err)
	}

	s.logger.Info("Calendar saved",
		zap.String("file", s.path),
		zap.Int("days", len(out)))

	return nil
}

// Path returns the path of the persisted calendar file
func (s *Store) Path() string {
	return s.path
}
