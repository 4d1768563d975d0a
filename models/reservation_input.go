package models

// CreateReservationInput carries everything needed to open a reservation.
// InviteeEmails are resolved against the user store at create time; emails
// without an account stay as pending placeholders. ExplicitParticipantIDs
// invite already-known users directly.
type CreateReservationInput struct {
	OrganizerID            string   `json:"organizerId"`
	VenueID                string   `json:"venueId"`
	SessionIDs             []string `json:"sessionIds"`
	InviteeEmails          []string `json:"inviteeEmails,omitempty"`
	ExplicitParticipantIDs []string `json:"explicitParticipantIds,omitempty"`
	IsSplitPayment         bool     `json:"isSplitPayment"`
}
