package reservationRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pitchbook/models"
)

func arrayFiltersOption(filters bson.A) *options.UpdateOptions {
	return options.Update().SetArrayFilters(options.ArrayFilters{Filters: filters})
}

// AddPaidParticipant adds the payer to the paid set via $addToSet, so calling
// it twice for the same payer is a no-op. Reports whether the payer was newly
// added.
func (r *MongoReservationRepo) AddPaidParticipant(id, payerID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"paid_participant_ids": payerID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return false, fmt.Errorf("failed to record payment for reservation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return result.ModifiedCount > 0, nil
}

// ConfirmIfFullyPaid flips a pending reservation to "confirmed" iff its paid
// set already contains every required payer. The filter carries both the
// status guard and the completeness check, so the flip is a single guarded
// write: with two concurrent last-payer confirmations, exactly one observes
// ModifiedCount == 1 and the status never regresses.
func (r *MongoReservationRepo) ConfirmIfFullyPaid(id string, requiredPayerIDs []string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":                   id,
		"status":               models.ReservationPending,
		"paid_participant_ids": bson.M{"$all": requiredPayerIDs},
	}
	update := bson.M{"$set": bson.M{
		"status":     models.ReservationConfirmed,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to confirm reservation %s: %w", id, err)
	}
	return result.ModifiedCount > 0, nil
}

// ResolveParticipantEmail rewrites every pending placeholder for the email to
// the given user id. Placeholders match on email with no user_id set, so the
// rewrite is idempotent: a second call finds nothing left to match.
func (r *MongoReservationRepo) ResolveParticipantEmail(email, userID string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"participants": bson.M{
			"$elemMatch": bson.M{
				"email":   email,
				"user_id": bson.M{"$in": bson.A{nil, ""}},
			},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"participants.$[p].user_id": userID,
			"updated_at":                time.Now(),
		},
		"$unset": bson.M{
			"participants.$[p].email": "",
		},
	}
	arrayFilters := bson.A{
		bson.M{"p.email": email, "p.user_id": bson.M{"$in": bson.A{nil, ""}}},
	}

	result, err := r.coll.UpdateMany(ctx, filter, update, arrayFiltersOption(arrayFilters))
	if err != nil {
		return 0, fmt.Errorf("failed to resolve participant %s: %w", email, err)
	}
	return result.ModifiedCount, nil
}
