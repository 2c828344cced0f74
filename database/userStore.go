package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/khm1546/melon-streaming-ranking/identity"
	"github.com/khm1546/melon-streaming-ranking/models"
)

// MongoUserStore implements identity.UserStore on the users collection.
type MongoUserStore struct {
	collection *mongo.Collection
	client     *mongo.Client
}

func NewMongoUserStore(client *mongo.Client) *MongoUserStore {
	return &MongoUserStore{
		collection: OpenCollection(client, "users"),
		client:     client,
	}
}

func (s *MongoUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id, err := NextSequence(ctx, s.client, "users")
	if err != nil {
		return nil, err
	}
	user.UserID = id

	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		// the unique username index decides registration races
		if mongo.IsDuplicateKeyError(err) {
			return nil, identity.ErrUserExists
		}
		return nil, err
	}
	return user, nil
}
