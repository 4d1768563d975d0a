package sessionRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pitchbook/models"
)

// GetByID retrieves a session document by its unique ID.
func (r *MongoSessionRepo) GetByID(id string) (*models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var session models.Session
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch session with id %s: %w", id, err)
	}
	return &session, nil
}

// GetByIDs retrieves all session documents for the given ids.
func (r *MongoSessionRepo) GetByIDs(ids []string) ([]models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	for cursor.Next(ctx) {
		var s models.Session
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// Create inserts a new session after checking the venue's calendar for an
// overlapping window on the same date.
func (r *MongoSessionRepo) Create(session *models.Session) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	overlapFilter := bson.M{
		"venue_id": session.VenueID,
		"date":     session.Date,
		"status":   bson.M{"$ne": models.SessionCanceled},
		"start":    bson.M{"$lt": session.End},
		"end":      bson.M{"$gt": session.Start},
	}
	count, err := r.coll.CountDocuments(ctx, overlapFilter)
	if err != nil {
		return fmt.Errorf("failed to check session overlap: %w", err)
	}
	if count > 0 {
		return ErrConflict
	}

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// SetStatus overrides a single session's status.
func (r *MongoSessionRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to set status for session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session document by its ID.
func (r *MongoSessionRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete session with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
