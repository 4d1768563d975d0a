package sessionRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pitchbook/models"
)

// Claim atomically flips every referenced session from "available" to
// "booked" inside a multi-document transaction. If any id is missing or any
// session is not available, the transaction aborts and no session is
// mutated. This is the only mutual-exclusion point in the booking path: two
// concurrent claims racing for overlapping id sets cannot both commit.
func (r *MongoSessionRepo) Claim(ctx context.Context, ids []string) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, bson.M{"id": bson.M{"$in": ids}})
		if err != nil {
			return fmt.Errorf("session existence check failed: %w", err)
		}
		if int(count) != len(ids) {
			return ErrNotFound
		}

		filter := bson.M{
			"id":     bson.M{"$in": ids},
			"status": models.SessionAvailable,
		}
		update := bson.M{"$set": bson.M{"status": models.SessionBooked}}

		res, err := r.coll.UpdateMany(sc, filter, update)
		if err != nil {
			return fmt.Errorf("session claim update failed: %w", err)
		}
		if int(res.ModifiedCount) != len(ids) {
			return ErrConflict
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}

// Release flips booked sessions back to "available". Used by the optional
// delete policy; canceled sessions are left untouched.
func (r *MongoSessionRepo) Release(ctx context.Context, ids []string) error {
	filter := bson.M{
		"id":     bson.M{"$in": ids},
		"status": models.SessionBooked,
	}
	update := bson.M{"$set": bson.M{"status": models.SessionAvailable}}

	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release sessions: %w", err)
	}
	return nil
}
