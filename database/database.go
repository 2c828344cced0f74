package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DatabaseName = "melon_streaming"

var Client *mongo.Client

func InitDB() {
	mongoURI := os.Getenv("MONGODB_URL")
	if mongoURI == "" {
		log.Fatal("❌ MONGODB_URL not found in environment variables")
	}

	log.Println("🔍 [InitDB] MongoDB URI found in env")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetServerSelectionTimeout(60 * time.Second).
		SetConnectTimeout(60 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("❌ [InitDB] Error connecting to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ [InitDB] MongoDB ping failed: %v", err)
	}
	log.Println("✅ [InitDB] MongoDB ping successful")

	fmt.Println("🚀 MongoDB connected successfully")
	Client = client

	if err := EnsureIndexes(ctx, client); err != nil {
		log.Fatalf("❌ [InitDB] Index creation failed: %v", err)
	}
	log.Println("✅ [InitDB] Indexes ensured")
}

// Shortcut always using the melon_streaming DB
func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ [OpenCollection] MongoDB Client is not initialized. Call InitDB() first.")
	}
	return client.Database(DatabaseName).Collection(collectionName)
}

// EnsureIndexes creates the unique indexes the invariants rely on: one
// username per user, one verification per (user, song), and unique
// numeric ids for songs and verifications.
func EnsureIndexes(ctx context.Context, client *mongo.Client) error {
	users := OpenCollection(client, "users")
	if _, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	songs := OpenCollection(client, "songs")
	if _, err := songs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "song_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("songs index: %w", err)
	}

	verifications := OpenCollection(client, "verifications")
	if _, err := verifications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "song_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "verification_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "song_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("verifications indexes: %w", err)
	}
	return nil
}
