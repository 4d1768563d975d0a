package reservation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	reservationRepo "pitchbook/database/repository/reservation"
	"pitchbook/models"
	"pitchbook/utils"
)

// RecordPayment idempotently adds the payer to the paid set and re-evaluates
// completion. The paid-set write uses $addToSet and the pending→confirmed
// flip is a guarded conditional update, so concurrent confirmations for
// different payers cannot lose updates and at most one call reports the flip.
func (s *DefaultReservationService) RecordPayment(ctx context.Context, reservationID, payerID string) (*RecordPaymentResult, error) {
	if payerID == "" {
		return nil, utils.ValidationError{Message: "payerId is required"}
	}

	res, err := s.Repo.GetByID(reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, utils.NotFoundError{Message: fmt.Sprintf("reservation %s not found", reservationID)}
		}
		return nil, err
	}

	required := res.RequiredPayerIDs()
	if !contains(required, payerID) {
		return nil, utils.ValidationError{Message: fmt.Sprintf("payer %s is not a billable participant of reservation %s", payerID, reservationID)}
	}

	added, err := s.Repo.AddPaidParticipant(reservationID, payerID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, utils.NotFoundError{Message: fmt.Sprintf("reservation %s not found", reservationID)}
		}
		return nil, err
	}

	confirmed, err := s.Repo.ConfirmIfFullyPaid(reservationID, required)
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetByID(reservationID)
	if err != nil {
		return nil, err
	}
	pendingCount := updated.PendingPayerCount()

	s.Notifier.PaymentRecorded(updated, payerID, confirmed, pendingCount)
	if confirmed {
		s.Notifier.AllConfirmed(updated)
	}

	s.Logger.Info("payment recorded",
		zap.String("reservationId", reservationID),
		zap.String("payerId", payerID),
		zap.Bool("newlyPaid", added),
		zap.Bool("confirmed", confirmed),
		zap.Int("pending", pendingCount))

	return &RecordPaymentResult{Confirmed: confirmed, PendingCount: pendingCount}, nil
}

// ResolveParticipant upgrades every pending placeholder for the email to the
// given user id and tells the new account holder about each booking they were
// invited to. Idempotent: once rewritten there is nothing left to match.
func (s *DefaultReservationService) ResolveParticipant(ctx context.Context, email, userID string) error {
	if email == "" || userID == "" {
		return utils.ValidationError{Message: "email and userId are required"}
	}

	pending, err := s.Repo.GetByParticipantEmail(email)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	count, err := s.Repo.ResolveParticipantEmail(email, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	for i := range pending {
		s.Notifier.InviteeInvited(&pending[i], models.Participant{UserID: userID}, pending[i].IsSplitPayment)
	}
	s.Logger.Info("resolved pending participant",
		zap.String("email", email),
		zap.String("userId", userID),
		zap.Int64("reservations", count))
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
