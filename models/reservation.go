package models

import "time"

// Reservation status values. "cancelled" is the persisted double-l spelling;
// session status uses "canceled". Kept asymmetric for wire compatibility.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Participant is either a registered user (UserID set) or a pending invitee
// known only by email. Exactly one of the two fields is populated; a pending
// participant is upgraded in place once the email registers an account.
type Participant struct {
	UserID string `bson:"user_id,omitempty" json:"userId,omitempty"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
}

// Registered reports whether the participant resolves to a real user account.
func (p Participant) Registered() bool {
	return p.UserID != ""
}

// Reservation is the booking record tying organizer, venue, sessions,
// participants and payment state together.
type Reservation struct {
	ID                 string        `bson:"id" json:"id"`
	OrganizerID        string        `bson:"organizer_id" json:"organizerId"`
	VenueID            string        `bson:"venue_id" json:"venueId"`
	SessionIDs         []string      `bson:"session_ids" json:"sessionIds"`
	Participants       []Participant `bson:"participants" json:"participants"`
	TotalPrice         float64       `bson:"total_price" json:"totalPrice"` // immutable after create
	IsSplitPayment     bool          `bson:"is_split_payment" json:"isSplitPayment"`
	PaidParticipantIDs []string      `bson:"paid_participant_ids" json:"paidParticipantIds"`
	Status             string        `bson:"status" json:"status"`
	BookingReference   string        `bson:"booking_reference" json:"bookingReference"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updatedAt"`
}

// RequiredPayerIDs returns the user ids that must appear in
// PaidParticipantIDs before the reservation can confirm: the organizer plus
// every registered participant. Pending email placeholders cannot be billed
// and are excluded.
func (r Reservation) RequiredPayerIDs() []string {
	ids := []string{r.OrganizerID}
	seen := map[string]bool{r.OrganizerID: true}
	for _, p := range r.Participants {
		if !p.Registered() || seen[p.UserID] {
			continue
		}
		seen[p.UserID] = true
		ids = append(ids, p.UserID)
	}
	return ids
}

// HasPaid reports whether the given payer is already in the paid set.
func (r Reservation) HasPaid(payerID string) bool {
	for _, id := range r.PaidParticipantIDs {
		if id == payerID {
			return true
		}
	}
	return false
}

// PendingPayerCount returns how many required payers have not paid yet.
func (r Reservation) PendingPayerCount() int {
	pending := 0
	for _, id := range r.RequiredPayerIDs() {
		if !r.HasPaid(id) {
			pending++
		}
	}
	return pending
}

// FullyPaid reports whether every required payer is in the paid set.
func (r Reservation) FullyPaid() bool {
	return r.PendingPayerCount() == 0
}
