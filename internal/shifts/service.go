package shifts

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/care-calendar/internal/roster"
	"github.com/username/care-calendar/internal/store"
	"github.com/username/care-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrInvalidCaregiver is returned when an assignment uses a code that
// is neither empty nor part of the roster
var ErrInvalidCaregiver = errors.New("unknown caregiver code")

// Service applies assignment and comment mutations to the store and
// persists after every change, so the file on disk always holds the
// latest consistent snapshot.
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService creates a shift service over the given store
func NewService(st *store.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
	}
}

// Assign sets the caregiver for the given date. The code must be empty
// (unassign) or one of the roster codes. Re-assigning the current code
// succeeds without touching the file.
func (s *Service) Assign(date time.Time, code string) error {
	if !roster.ValidCode(code) {
		return fmt.Errorf("%w: %q", ErrInvalidCaregiver, code)
	}

	current := s.store.Get(date).Turno
	if current == code {
		s.logger.Debug("Assignment unchanged",
			zap.String("date", dateutil.FormatDay(date)),
			zap.String("code", code))
		return nil
	}

	s.store.SetAssignment(date, code)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to persist assignment: %w", err)
	}

	s.logger.Info("Assignment updated",
		zap.String("date", dateutil.FormatDay(date)),
		zap.String("previous", current),
		zap.String("code", code))

	return nil
}

// Comment appends free text to the given date. Text is not validated
// and may be empty.
func (s *Service) Comment(date time.Time, text string) error {
	s.store.AppendComment(date, text)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to persist comment: %w", err)
	}

	s.logger.Info("Comment added",
		zap.String("date", dateutil.FormatDay(date)),
		zap.Int("length", len(text)))

	return nil
}

// Reset wipes the whole calendar and persists the empty store. There
// is no undo; the caller is responsible for confirming first.
func (s *Service) Reset() error {
	s.store.Clear()
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to persist reset: %w", err)
	}

	s.logger.Info("Calendar reset", zap.String("file", s.store.Path()))

	return nil
}
