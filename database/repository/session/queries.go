package sessionRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pitchbook/models"
)

// FindAvailable lists a venue's sessions, optionally bounded by an inclusive
// date range and filtered by status. Defaults to "available" when no status
// is given. Returns an empty slice on no match, never an error.
func (r *MongoSessionRepo) FindAvailable(venueID, fromDate, toDate, status string) ([]models.Session, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"venue_id": venueID}
	if status != "" {
		filter["status"] = status
	} else {
		filter["status"] = models.SessionAvailable
	}
	if fromDate != "" || toDate != "" {
		dateRange := bson.M{}
		if fromDate != "" {
			dateRange["$gte"] = fromDate
		}
		if toDate != "" {
			dateRange["$lte"] = toDate
		}
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions for venue %s: %w", venueID, err)
	}
	defer cursor.Close(ctx)

	sessions := []models.Session{}
	for cursor.Next(ctx) {
		var s models.Session
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
