package models

// Session status values. Note the single-l "canceled" spelling; reservation
// statuses use "cancelled". Both are persisted and must not be renamed.
const (
	SessionAvailable = "available"
	SessionBooked    = "booked"
	SessionCanceled  = "canceled"
)

// Session represents a bookable time-slot at a venue.
type Session struct {
	ID      string  `bson:"id" json:"id"`
	VenueID string  `bson:"venue_id" json:"venueId"`
	Date    string  `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start   int     `bson:"start" json:"start"` // minutes from midnight (e.g., 1080 for 6:00 PM)
	End     int     `bson:"end" json:"end"`     // minutes from midnight, exclusive
	Price   float64 `bson:"price" json:"price"`
	Status  string  `bson:"status" json:"status"` // "available", "booked" or "canceled"
}
