package notification

import (
	"go.uber.org/zap"

	"github.com/hibiken/asynq"

	"pitchbook/models"
	"pitchbook/services/tasks"
)

// Dispatcher is the fire-and-forget notification surface the booking and
// payment services depend on. Implementations must never block the caller on
// delivery; failures are absorbed and logged, never returned to the booking
// or payment path.
type Dispatcher interface {
	ReservationCreated(reservation *models.Reservation)
	InviteeInvited(reservation *models.Reservation, participant models.Participant, paymentRequired bool)
	PaymentRecorded(reservation *models.Reservation, payerID string, fullyConfirmed bool, pendingCount int)
	AllConfirmed(reservation *models.Reservation)
}

// AsynqDispatcher queues notification events on Redis for the worker to
// deliver. Enqueueing is a local Redis write; if even that fails the event is
// dropped with a log line, keeping the booking/payment outcome authoritative.
type AsynqDispatcher struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewAsynqDispatcher(client *asynq.Client, logger *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client, Logger: logger}
}

func (d *AsynqDispatcher) ReservationCreated(reservation *models.Reservation) {
	d.enqueue(models.NotificationEvent{
		Type:             models.NotifyReservationCreated,
		ReservationID:    reservation.ID,
		BookingReference: reservation.BookingReference,
		RecipientID:      reservation.OrganizerID,
	})
}

func (d *AsynqDispatcher) InviteeInvited(reservation *models.Reservation, participant models.Participant, paymentRequired bool) {
	d.enqueue(models.NotificationEvent{
		Type:             models.NotifyInvitee,
		ReservationID:    reservation.ID,
		BookingReference: reservation.BookingReference,
		RecipientID:      participant.UserID,
		RecipientEmail:   participant.Email,
		PaymentRequired:  paymentRequired,
	})
}

func (d *AsynqDispatcher) PaymentRecorded(reservation *models.Reservation, payerID string, fullyConfirmed bool, pendingCount int) {
	d.enqueue(models.NotificationEvent{
		Type:             models.NotifyPaymentRecorded,
		ReservationID:    reservation.ID,
		BookingReference: reservation.BookingReference,
		RecipientID:      payerID,
		FullyConfirmed:   fullyConfirmed,
		PendingCount:     pendingCount,
	})
}

func (d *AsynqDispatcher) AllConfirmed(reservation *models.Reservation) {
	for _, recipientID := range reservation.RequiredPayerIDs() {
		d.enqueue(models.NotificationEvent{
			Type:             models.NotifyAllConfirmed,
			ReservationID:    reservation.ID,
			BookingReference: reservation.BookingReference,
			RecipientID:      recipientID,
		})
	}
}

func (d *AsynqDispatcher) enqueue(event models.NotificationEvent) {
	task, err := tasks.NewNotificationTask(event)
	if err != nil {
		d.Logger.Error("failed to build notification task",
			zap.String("type", event.Type),
			zap.String("reservationId", event.ReservationID),
			zap.Error(err))
		return
	}
	if _, err := d.Client.Enqueue(task, asynq.MaxRetry(5)); err != nil {
		d.Logger.Error("failed to enqueue notification",
			zap.String("type", event.Type),
			zap.String("reservationId", event.ReservationID),
			zap.Error(err))
	}
}
