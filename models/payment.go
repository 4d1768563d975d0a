package models

// PaymentRequest is one charge to be collected from one payer. Requests are
// ephemeral: they live in the payment-plan cache, never in Mongo.
type PaymentRequest struct {
	ReservationID     string `json:"reservationId"`
	PayerID           string `json:"payerId"`
	AmountMinorUnits  int64  `json:"amountMinorUnits"`
	Currency          string `json:"currency"`
	ExternalReference string `json:"externalReference"` // charge id at the payment provider
}

// PaymentPlan is the full set of charges for a reservation: a single
// organizer charge under full payment, or one charge per registered
// participant under split payment.
type PaymentPlan struct {
	ReservationID string           `json:"reservationId"`
	Split         bool             `json:"split"`
	Requests      []PaymentRequest `json:"requests"`
}
