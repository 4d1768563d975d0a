package reservationRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pitchbook/models"
)

// GetByID retrieves a reservation document by its unique ID.
func (r *MongoReservationRepo) GetByID(id string) (*models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch reservation with id %s: %w", id, err)
	}
	return &res, nil
}

// GetByReference retrieves a reservation document by its booking reference.
func (r *MongoReservationRepo) GetByReference(ref string) (*models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"booking_reference": ref}).Decode(&res); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch reservation with reference %s: %w", ref, err)
	}
	return &res, nil
}

// GetAll retrieves all reservation documents.
func (r *MongoReservationRepo) GetAll() ([]models.Reservation, error) {
	return r.find(bson.M{})
}

// GetByUser retrieves reservations where the user is the organizer or a
// registered participant.
func (r *MongoReservationRepo) GetByUser(userID string) ([]models.Reservation, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"organizer_id": userID},
		bson.M{"participants.user_id": userID},
	}}
	return r.find(filter)
}

// GetByParticipantEmail retrieves reservations holding a pending placeholder
// for the given email.
func (r *MongoReservationRepo) GetByParticipantEmail(email string) ([]models.Reservation, error) {
	return r.find(bson.M{"participants.email": email})
}

func (r *MongoReservationRepo) find(filter bson.M) ([]models.Reservation, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []models.Reservation{}
	for cursor.Next(ctx) {
		var res models.Reservation
		if err := cursor.Decode(&res); err != nil {
			return nil, fmt.Errorf("failed to decode reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}
