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

// MongoSongStore implements verifications.SongStore on the songs
// collection.
type MongoSongStore struct {
	songs         *mongo.Collection
	verifications *mongo.Collection
}

func NewMongoSongStore(client *mongo.Client) *MongoSongStore {
	return &MongoSongStore{
		songs:         OpenCollection(client, "songs"),
		verifications: OpenCollection(client, "verifications"),
	}
}

func (s *MongoSongStore) GetByID(ctx context.Context, songID int64) (*models.Song, error) {
	var song models.Song
	err := s.songs.FindOne(ctx, bson.M{"song_id": songID}).Decode(&song)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, verifications.ErrSongNotFound
		}
		return nil, err
	}
	return &song, nil
}

// ListAll returns the catalog ordered by the cached stream count, the
// way the song grid displays it.
func (s *MongoSongStore) ListAll(ctx context.Context) ([]models.Song, error) {
	cursor, err := s.songs.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "total_stream_count", Value: -1}}))
	if err != nil {
		return nil, err
	}
	songs := []models.Song{}
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

func (s *MongoSongStore) Count(ctx context.Context) (int64, error) {
	return s.songs.CountDocuments(ctx, bson.M{})
}

// RecomputeStreamCount rewrites the song's cached total from a $group
// sum over its approved verifications. The cache is never incremented.
func (s *MongoSongStore) RecomputeStreamCount(ctx context.Context, songID int64) error {
	pipeline := []bson.M{
		{"$match": bson.M{
			"song_id": songID,
			"status":  models.StatusApproved,
		}},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$stream_count"},
		}},
	}

	cursor, err := s.verifications.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	var result []bson.M
	if err := cursor.All(ctx, &result); err != nil {
		return err
	}

	var total int64
	if len(result) > 0 {
		switch v := result[0]["total"].(type) {
		case int32:
			total = int64(v)
		case int64:
			total = v
		}
	}

	_, err = s.songs.UpdateOne(ctx,
		bson.M{"song_id": songID},
		bson.M{"$set": bson.M{
			"total_stream_count": total,
			"updated_at":         time.Now(),
		}},
	)
	return err
}
