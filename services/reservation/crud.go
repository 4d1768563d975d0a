package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	reservationRepo "pitchbook/database/repository/reservation"
	"pitchbook/models"
	"pitchbook/utils"
)

// Fields that can never be patched through UpdateFields. total_price is
// immutable after create; the paid set and status move only through
// RecordPayment and SetStatus. participants and is_split_payment are frozen
// too: editing them after charges exist could orphan entries in the paid set
// or flip the billing mode mid-flight.
var immutableFields = map[string]bool{
	"id":                   true,
	"organizer_id":         true,
	"venue_id":             true,
	"total_price":          true,
	"participants":         true,
	"is_split_payment":     true,
	"paid_participant_ids": true,
	"booking_reference":    true,
	"status":               true,
	"session_ids":          true,
}

// Get retrieves a reservation by id.
func (s *DefaultReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, utils.NotFoundError{Message: fmt.Sprintf("reservation %s not found", id)}
		}
		return nil, err
	}
	return res, nil
}

// GetByReference retrieves a reservation by its booking reference. The code
// is shared over the phone, so lookup is case-insensitive.
func (s *DefaultReservationService) GetByReference(ctx context.Context, ref string) (*models.Reservation, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return nil, utils.ValidationError{Message: "booking reference is required"}
	}

	res, err := s.Repo.GetByReference(ref)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, utils.NotFoundError{Message: fmt.Sprintf("no reservation with reference %s", ref)}
		}
		return nil, err
	}
	return res, nil
}

// ListByUser returns reservations the user organizes or participates in.
func (s *DefaultReservationService) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	if userID == "" {
		return nil, utils.ValidationError{Message: "userId is required"}
	}
	return s.Repo.GetByUser(userID)
}

// ListAll returns every reservation. Privileged; access control sits in the
// auth layer.
func (s *DefaultReservationService) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return s.Repo.GetAll()
}

// UpdateFields applies a partial update, rejecting immutable fields.
func (s *DefaultReservationService) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Reservation, error) {
	if len(fields) == 0 {
		return nil, utils.ValidationError{Message: "no fields to update"}
	}
	for k := range fields {
		if immutableFields[k] {
			return nil, utils.ValidationError{Message: fmt.Sprintf("field %s cannot be updated", k)}
		}
	}

	if err := s.Repo.UpdateFields(id, fields); err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, utils.NotFoundError{Message: fmt.Sprintf("reservation %s not found", id)}
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetStatus overrides the reservation status. No state-machine guard: this
// is the administrative escape hatch and may set any status from any status.
func (s *DefaultReservationService) SetStatus(ctx context.Context, id, status string) (*models.Reservation, error) {
	switch status {
	case models.ReservationPending, models.ReservationConfirmed, models.ReservationCancelled:
	default:
		return nil, utils.ValidationError{Message: fmt.Sprintf("invalid status %q", status)}
	}

	if err := s.Repo.SetStatus(id, status); err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, utils.NotFoundError{Message: fmt.Sprintf("reservation %s not found", id)}
		}
		return nil, err
	}
	s.Logger.Info("reservation status overridden", zap.String("reservationId", id), zap.String("status", status))
	return s.Get(ctx, id)
}

// Delete removes a reservation. When ReleaseSessionsOnDelete is set, its
// claimed sessions go back to "available"; otherwise they stay booked.
func (s *DefaultReservationService) Delete(ctx context.Context, id string) error {
	res, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return utils.NotFoundError{Message: fmt.Sprintf("reservation %s not found", id)}
		}
		return err
	}

	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return utils.NotFoundError{Message: fmt.Sprintf("reservation %s not found", id)}
		}
		return err
	}

	if s.ReleaseSessionsOnDelete {
		if err := s.Sessions.Release(ctx, res.SessionIDs); err != nil {
			s.Logger.Error("failed to release sessions for deleted reservation",
				zap.String("reservationId", id), zap.Error(err))
		}
	}
	return nil
}
