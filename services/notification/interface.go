package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	userRepo "pitchbook/database/repository/user"
	"pitchbook/models"
	"pitchbook/utils"
)

// NotificationService delivers booking notifications to users. The booking
// and payment paths never call this directly; events reach it through the
// async dispatch queue, so delivery latency and failures cannot affect
// booking or payment outcomes.
type NotificationService interface {
	HandleEvent(ctx context.Context, event models.NotificationEvent) error
}

// DefaultNotificationService is the FCM-backed implementation.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

func NewDefaultNotificationService(users userRepo.UserRepository) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{Users: users}, nil
}

// HandleEvent formats and sends the push for one queued notification event.
// Events addressed to pending email invitees have no account to push to and
// are dropped silently.
func (s *DefaultNotificationService) HandleEvent(ctx context.Context, event models.NotificationEvent) error {
	if event.RecipientID == "" {
		return nil
	}

	title, body := composeMessage(event)
	data := map[string]string{
		"type":             event.Type,
		"reservationId":    event.ReservationID,
		"bookingReference": event.BookingReference,
	}
	return s.sendPush(ctx, event.RecipientID, title, body, data)
}

// sendPush looks up the recipient's FCM token and sends a push.
func (s *DefaultNotificationService) sendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("sendPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("sendPush: user %s has no FCM token", userID)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("sendPush: failed to send FCM message: %w", err)
	}
	return nil
}

func composeMessage(event models.NotificationEvent) (string, string) {
	switch event.Type {
	case models.NotifyReservationCreated:
		return "Reservation created ⚽",
			fmt.Sprintf("Your booking %s is in! We'll confirm once everyone has paid.", event.BookingReference)
	case models.NotifyInvitee:
		if event.PaymentRequired {
			return "You're invited to play ⚽",
				fmt.Sprintf("You've been added to booking %s. Pay your share to lock in your spot.", event.BookingReference)
		}
		return "You're invited to play ⚽",
			fmt.Sprintf("You've been added to booking %s. Your spot is fully covered — just show up!", event.BookingReference)
	case models.NotifyPaymentRecorded:
		if event.FullyConfirmed {
			return "Payment received ✅",
				fmt.Sprintf("That was the last payment — booking %s is confirmed!", event.BookingReference)
		}
		return "Payment received ✅",
			fmt.Sprintf("Payment recorded for booking %s. Waiting on %d more player%s.",
				event.BookingReference, event.PendingCount, plural(event.PendingCount))
	case models.NotifyAllConfirmed:
		return "Booking confirmed 🎉",
			fmt.Sprintf("Everyone has paid — booking %s is confirmed. See you on the pitch!", event.BookingReference)
	default:
		return "Pitchbook", fmt.Sprintf("Update on booking %s.", event.BookingReference)
	}
}

// plural returns "s" if n is not 1, otherwise returns an empty string.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
