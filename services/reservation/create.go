package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reservationRepo "pitchbook/database/repository/reservation"
	sessionRepo "pitchbook/database/repository/session"
	"pitchbook/models"
	"pitchbook/utils"
)

// createMaxAttempts bounds booking-reference regeneration on unique-index
// collisions.
const createMaxAttempts = 3

// Create validates the request, claims the sessions, prices the reservation
// and persists it in "pending" state. Notifications go out after the record
// is committed and never affect the outcome.
func (s *DefaultReservationService) Create(ctx context.Context, input models.CreateReservationInput) (*models.Reservation, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	sessions, err := s.Sessions.GetByIDs(input.SessionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	if len(sessions) != len(input.SessionIDs) {
		return nil, utils.NotFoundError{Message: "one or more sessions do not exist"}
	}
	for _, sess := range sessions {
		if sess.VenueID != input.VenueID {
			return nil, utils.ValidationError{Message: fmt.Sprintf("session %s does not belong to venue %s", sess.ID, input.VenueID)}
		}
	}

	totalPrice, err := s.Pricing.Total(sessions)
	if err != nil {
		return nil, utils.ValidationError{Message: err.Error()}
	}

	participants, err := s.resolveParticipants(input)
	if err != nil {
		return nil, err
	}

	if err := s.Sessions.Claim(ctx, input.SessionIDs); err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrNotFound):
			return nil, utils.NotFoundError{Message: "one or more sessions do not exist"}
		case errors.Is(err, sessionRepo.ErrConflict):
			return nil, utils.ConflictError{Message: "one or more sessions are no longer available"}
		default:
			return nil, fmt.Errorf("session claim failed: %w", err)
		}
	}

	res := &models.Reservation{
		ID:                 uuid.New().String(),
		OrganizerID:        input.OrganizerID,
		VenueID:            input.VenueID,
		SessionIDs:         input.SessionIDs,
		Participants:       participants,
		TotalPrice:         totalPrice,
		IsSplitPayment:     input.IsSplitPayment,
		PaidParticipantIDs: []string{},
		Status:             models.ReservationPending,
	}

	if err := s.persistWithReference(res); err != nil {
		// The sessions were already claimed; free them so a failed create
		// leaves the system exactly as it was.
		if relErr := s.Sessions.Release(ctx, input.SessionIDs); relErr != nil {
			s.Logger.Error("failed to release sessions after create failure",
				zap.Strings("sessionIds", input.SessionIDs), zap.Error(relErr))
		}
		return nil, err
	}

	s.Notifier.ReservationCreated(res)
	for _, p := range res.Participants {
		s.Notifier.InviteeInvited(res, p, res.IsSplitPayment)
	}

	s.Logger.Info("reservation created",
		zap.String("reservationId", res.ID),
		zap.String("reference", res.BookingReference),
		zap.Int("sessions", len(res.SessionIDs)),
		zap.Bool("split", res.IsSplitPayment))
	return res, nil
}

func (s *DefaultReservationService) persistWithReference(res *models.Reservation) error {
	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		ref, err := newBookingReference()
		if err != nil {
			return err
		}
		res.BookingReference = ref

		err = s.Repo.Create(res)
		if err == nil {
			return nil
		}
		if !errors.Is(err, reservationRepo.ErrDuplicateRef) {
			return err
		}
		s.Logger.Warn("booking reference collision, regenerating", zap.String("reference", ref))
	}
	return fmt.Errorf("could not allocate a unique booking reference after %d attempts", createMaxAttempts)
}

// resolveParticipants builds the participant list: explicit user ids first,
// then invitee emails matched against existing accounts. Unknown emails stay
// as pending placeholders. The organizer is tracked separately and is never
// duplicated into the list.
func (s *DefaultReservationService) resolveParticipants(input models.CreateReservationInput) ([]models.Participant, error) {
	participants := []models.Participant{}
	seenIDs := map[string]bool{input.OrganizerID: true}
	seenEmails := map[string]bool{}

	for _, id := range input.ExplicitParticipantIDs {
		if id == "" || seenIDs[id] {
			continue
		}
		seenIDs[id] = true
		participants = append(participants, models.Participant{UserID: id})
	}

	for _, email := range input.InviteeEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seenEmails[email] {
			continue
		}
		seenEmails[email] = true

		u, err := s.Users.GetByEmail(email)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve invitee %s: %w", email, err)
		}
		if u != nil {
			if seenIDs[u.ID] {
				continue
			}
			seenIDs[u.ID] = true
			participants = append(participants, models.Participant{UserID: u.ID})
			continue
		}
		participants = append(participants, models.Participant{Email: email})
	}

	return participants, nil
}

func validateCreateInput(input models.CreateReservationInput) error {
	if input.OrganizerID == "" {
		return utils.ValidationError{Message: "organizerId is required"}
	}
	if input.VenueID == "" {
		return utils.ValidationError{Message: "venueId is required"}
	}
	if len(input.SessionIDs) == 0 {
		return utils.ValidationError{Message: "sessionIds must not be empty"}
	}
	seen := map[string]bool{}
	for _, id := range input.SessionIDs {
		if id == "" {
			return utils.ValidationError{Message: "sessionIds must not contain empty ids"}
		}
		if seen[id] {
			return utils.ValidationError{Message: fmt.Sprintf("duplicate session id %s", id)}
		}
		seen[id] = true
	}
	return nil
}
