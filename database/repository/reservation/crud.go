package reservationRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pitchbook/models"
)

// Create inserts a new reservation document.
func (r *MongoReservationRepo) Create(reservation *models.Reservation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, reservation); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateRef
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to a reservation document. The
// total_price and paid set are never patched through this path.
func (r *MongoReservationRepo) UpdateFields(id string, fields map[string]interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	setDoc := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		setDoc[k] = v
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": setDoc})
	if err != nil {
		return fmt.Errorf("failed to update reservation with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus overrides the reservation status unconditionally. This is the
// administrative escape hatch; no state-machine guard applies here.
func (r *MongoReservationRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set status for reservation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a reservation document by its ID.
func (r *MongoReservationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reservation with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
