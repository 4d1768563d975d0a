package models

// Notification event types carried on the async dispatch queue.
const (
	NotifyReservationCreated = "reservation:created"
	NotifyInvitee            = "reservation:invited"
	NotifyPaymentRecorded    = "payment:recorded"
	NotifyAllConfirmed       = "reservation:confirmed"
)

// NotificationEvent is the queued payload for one push notification. A single
// flat struct covers all four event types; unused fields stay zero.
type NotificationEvent struct {
	Type             string `json:"type"`
	ReservationID    string `json:"reservationId"`
	BookingReference string `json:"bookingReference"`
	RecipientID      string `json:"recipientId,omitempty"` // empty for pending email invitees
	RecipientEmail   string `json:"recipientEmail,omitempty"`
	PaymentRequired  bool   `json:"paymentRequired,omitempty"`
	FullyConfirmed   bool   `json:"fullyConfirmed,omitempty"`
	PendingCount     int    `json:"pendingCount,omitempty"`
}
