// Package venue covers venue session administration: publishing bookable
// time-slots and browsing a venue's calendar. Claiming sessions for a
// reservation lives in the reservation service.
package venue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sessionRepo "pitchbook/database/repository/session"
	"pitchbook/models"
	"pitchbook/utils"
)

// minutesPerDay bounds session start/end values.
const minutesPerDay = 24 * 60

// CreateSessionInput carries a new time-slot definition.
type CreateSessionInput struct {
	Date  string  `json:"date"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Price float64 `json:"price"`
}

// VenueService manages a venue's bookable sessions.
type VenueService interface {
	ListSessions(ctx context.Context, venueID, fromDate, toDate, status string) ([]models.Session, error)
	CreateSession(ctx context.Context, venueID string, input CreateSessionInput) (*models.Session, error)
	CancelSession(ctx context.Context, id string) error
}

// DefaultVenueService implements VenueService.
type DefaultVenueService struct {
	Sessions sessionRepo.SessionRepository
	Logger   *zap.Logger
}

// ListSessions lists a venue's sessions, defaulting to available ones.
func (s *DefaultVenueService) ListSessions(ctx context.Context, venueID, fromDate, toDate, status string) ([]models.Session, error) {
	if venueID == "" {
		return nil, utils.ValidationError{Message: "venueId is required"}
	}
	if status != "" {
		switch status {
		case models.SessionAvailable, models.SessionBooked, models.SessionCanceled:
		default:
			return nil, utils.ValidationError{Message: fmt.Sprintf("invalid status %q", status)}
		}
	}
	return s.Sessions.FindAvailable(venueID, fromDate, toDate, status)
}

// CreateSession publishes a new time-slot. The repository rejects windows
// overlapping an existing session on the same venue and date.
func (s *DefaultVenueService) CreateSession(ctx context.Context, venueID string, input CreateSessionInput) (*models.Session, error) {
	if venueID == "" {
		return nil, utils.ValidationError{Message: "venueId is required"}
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, utils.ValidationError{Message: "date must be formatted YYYY-MM-DD"}
	}
	if input.Start < 0 || input.End > minutesPerDay || input.Start >= input.End {
		return nil, utils.ValidationError{Message: "start and end must form a valid window in minutes from midnight"}
	}
	if input.Price <= 0 {
		return nil, utils.ValidationError{Message: "price must be positive"}
	}

	session := &models.Session{
		ID:      uuid.New().String(),
		VenueID: venueID,
		Date:    input.Date,
		Start:   input.Start,
		End:     input.End,
		Price:   input.Price,
		Status:  models.SessionAvailable,
	}
	if err := s.Sessions.Create(session); err != nil {
		if errors.Is(err, sessionRepo.ErrConflict) {
			return nil, utils.ConflictError{Message: "session overlaps an existing time-slot"}
		}
		return nil, err
	}

	s.Logger.Info("session published",
		zap.String("sessionId", session.ID),
		zap.String("venueId", venueID),
		zap.String("date", input.Date))
	return session, nil
}

// CancelSession marks a session canceled. Canceled sessions can never be
// claimed; existing reservations referencing them are untouched.
func (s *DefaultVenueService) CancelSession(ctx context.Context, id string) error {
	if err := s.Sessions.SetStatus(id, models.SessionCanceled); err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return utils.NotFoundError{Message: fmt.Sprintf("session %s not found", id)}
		}
		return err
	}
	s.Logger.Info("session canceled", zap.String("sessionId", id))
	return nil
}
