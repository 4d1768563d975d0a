package sessionRepo

import (
	"context"
	"errors"

	"pitchbook/models"
)

// Sentinel errors surfaced by claim and lookup operations. Services translate
// these into their own error types.
var (
	ErrNotFound = errors.New("session not found")
	ErrConflict = errors.New("session not available")
)

// SessionRepository defines methods for venue session data access.
type SessionRepository interface {
	// GetByID retrieves a session by its unique ID.
	GetByID(id string) (*models.Session, error)
	// GetByIDs retrieves all sessions for the given ids.
	GetByIDs(ids []string) ([]models.Session, error)
	// FindAvailable lists sessions for a venue, optionally bounded by an
	// inclusive date range and filtered by status. Empty slice on no match.
	FindAvailable(venueID, fromDate, toDate, status string) ([]models.Session, error)
	// Create inserts a new session. Fails with ErrConflict when the window
	// overlaps an existing session for the same venue and date.
	Create(session *models.Session) error
	// Claim atomically flips every referenced session from "available" to
	// "booked". If any id is missing it fails with ErrNotFound; if any
	// session is not available it fails with ErrConflict. Either way no
	// session is mutated.
	Claim(ctx context.Context, ids []string) error
	// Release flips booked sessions back to "available".
	Release(ctx context.Context, ids []string) error
	// SetStatus overrides a single session's status.
	SetStatus(id, status string) error
	// Delete removes a session record by its ID.
	Delete(id string) error
}
