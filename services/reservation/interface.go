package reservation

import (
	"context"

	reservationRepo "pitchbook/database/repository/reservation"
	sessionRepo "pitchbook/database/repository/session"
	userRepo "pitchbook/database/repository/user"
	"pitchbook/models"
	"pitchbook/services/notification"
	"pitchbook/services/pricing"

	"go.uber.org/zap"
)

// RecordPaymentResult reports the outcome of one payment confirmation.
// Confirmed is true only when this call flipped the reservation to
// "confirmed"; repeat confirmations for an already-paid payer see false.
type RecordPaymentResult struct {
	Confirmed    bool `json:"confirmed"`
	PendingCount int  `json:"pendingCount"`
}

// ReservationService owns the booking lifecycle: session claim, participant
// resolution, payment tracking and the pending→confirmed transition.
type ReservationService interface {
	// Create claims the requested sessions and opens a pending reservation.
	Create(ctx context.Context, input models.CreateReservationInput) (*models.Reservation, error)
	// RecordPayment idempotently marks the payer as paid and confirms the
	// reservation once every required payer has paid.
	RecordPayment(ctx context.Context, reservationID, payerID string) (*RecordPaymentResult, error)
	// ResolveParticipant upgrades pending email placeholders to the given
	// user id across all reservations. Called by the registration flow.
	ResolveParticipant(ctx context.Context, email, userID string) error

	Get(ctx context.Context, id string) (*models.Reservation, error)
	// GetByReference looks a reservation up by its shareable booking code.
	GetByReference(ctx context.Context, ref string) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	ListAll(ctx context.Context) ([]models.Reservation, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Reservation, error)
	SetStatus(ctx context.Context, id, status string) (*models.Reservation, error)
	Delete(ctx context.Context, id string) error
}

// DefaultReservationService implements ReservationService.
type DefaultReservationService struct {
	Repo     reservationRepo.ReservationRepository
	Sessions sessionRepo.SessionRepository
	Users    userRepo.UserRepository
	Pricing  pricing.Calculator
	Notifier notification.Dispatcher
	Logger   *zap.Logger

	// ReleaseSessionsOnDelete controls whether deleting a reservation frees
	// its claimed sessions. Off by default: booked sessions stay booked as a
	// permanent record.
	ReleaseSessionsOnDelete bool
}
