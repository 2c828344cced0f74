package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khm1546/melon-streaming-ranking/models"
	"github.com/khm1546/melon-streaming-ranking/verifications"
)

// MongoVerificationStore implements verifications.Store. The upsert is a
// single FindOneAndUpdate keyed on (user_id, song_id), so two concurrent
// submissions for the same pair serialize at the storage layer and the
// last writer wins whole, never field by field.
type MongoVerificationStore struct {
	collection *mongo.Collection
	client     *mongo.Client
}

func NewMongoVerificationStore(client *mongo.Client) *MongoVerificationStore {
	return &MongoVerificationStore{
		collection: OpenCollection(client, "verifications"),
		client:     client,
	}
}

func (s *MongoVerificationStore) Upsert(ctx context.Context, v *models.Verification) (*models.Verification, error) {
	id, err := NextSequence(ctx, s.client, "verifications")
	if err != nil {
		return nil, err
	}

	filter := bson.M{"user_id": v.UserID, "song_id": v.SongID}
	update := bson.M{
		"$set": bson.M{
			"username":     v.Username,
			"song_title":   v.SongTitle,
			"stream_count": v.StreamCount,
			"proof_image":  v.ProofImage,
			"status":       v.Status,
			"verified_at":  v.VerifiedAt,
			"updated_at":   v.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"verification_id": id,
			"user_id":         v.UserID,
			"song_id":         v.SongID,
			"created_at":      v.CreatedAt,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var updated models.Verification
	err = s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if mongo.IsDuplicateKeyError(err) {
		// two first-time submissions raced the upsert; the unique index
		// rejected the loser's insert. The winner's document exists now,
		// so one retry matches it and degrades to last-writer-wins.
		err = s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MongoVerificationStore) GetByID(ctx context.Context, verificationID int64) (*models.Verification, error) {
	var v models.Verification
	err := s.collection.FindOne(ctx, bson.M{"verification_id": verificationID}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, verifications.ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *MongoVerificationStore) GetByUserAndSong(ctx context.Context, userID, songID int64) (*models.Verification, error) {
	var v models.Verification
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID, "song_id": songID}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, verifications.ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *MongoVerificationStore) ListByUserID(ctx context.Context, userID int64) ([]models.Verification, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "verification_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.Verification{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoVerificationStore) ListApproved(ctx context.Context, songID int64) ([]models.Verification, error) {
	filter := bson.M{"status": models.StatusApproved}
	if songID > 0 {
		filter["song_id"] = songID
	}
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []models.Verification{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoVerificationStore) SetStatus(ctx context.Context, verificationID int64, status string, verifiedAt *time.Time) (*models.Verification, error) {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if verifiedAt != nil {
		set["verified_at"] = verifiedAt
	}

	var updated models.Verification
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"verification_id": verificationID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, verifications.ErrVerificationNotFound
		}
		return nil, err
	}
	return &updated, nil
}
