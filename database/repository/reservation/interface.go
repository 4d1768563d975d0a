package reservationRepo

import (
	"errors"

	"pitchbook/models"
)

// Sentinel errors surfaced by reservation persistence.
var (
	ErrNotFound     = errors.New("reservation not found")
	ErrDuplicateRef = errors.New("booking reference already in use")
)

// ReservationRepository defines methods for reservation data access.
type ReservationRepository interface {
	// GetByID retrieves a reservation by its unique ID.
	GetByID(id string) (*models.Reservation, error)
	// GetByReference retrieves a reservation by its booking reference.
	GetByReference(ref string) (*models.Reservation, error)
	// GetAll retrieves all reservations.
	GetAll() ([]models.Reservation, error)
	// GetByUser retrieves reservations where the user is organizer or participant.
	GetByUser(userID string) ([]models.Reservation, error)
	// GetByParticipantEmail retrieves reservations holding a pending
	// placeholder for the given email.
	GetByParticipantEmail(email string) ([]models.Reservation, error)
	// Create inserts a new reservation record. Fails with ErrDuplicateRef on
	// a booking reference collision.
	Create(reservation *models.Reservation) error
	// UpdateFields applies a partial update to a reservation document.
	UpdateFields(id string, fields map[string]interface{}) error
	// SetStatus overrides the reservation status unconditionally.
	SetStatus(id, status string) error
	// Delete removes a reservation record by its ID.
	Delete(id string) error

	// AddPaidParticipant adds the payer to the paid set if absent. Reports
	// whether the payer was newly added.
	AddPaidParticipant(id, payerID string) (bool, error)
	// ConfirmIfFullyPaid flips a pending reservation to "confirmed" iff its
	// paid set covers every id in requiredPayerIDs. Reports whether this call
	// performed the flip; at most one concurrent caller observes true.
	ConfirmIfFullyPaid(id string, requiredPayerIDs []string) (bool, error)
	// ResolveParticipantEmail rewrites pending placeholders for the email to
	// the given user id across all reservations. Idempotent.
	ResolveParticipantEmail(email, userID string) (int64, error)
}
