package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/khm1546/melon-streaming-ranking/models"
)

type seedSong struct {
	title      string
	album      string
	released   string
	coverImage string
}

// The client never creates songs, so the catalog is seeded here on an
// empty collection.
var catalog = []seedSong{
	{"O.O", "AD MARE", "2022-02-22", "/images/covers/oo.jpg"},
	{"TANK", "AD MARE", "2022-02-22", "/images/covers/tank.jpg"},
	{"DICE", "ENTWURF", "2022-09-19", "/images/covers/dice.jpg"},
	{"COOL (Your rainbow)", "ENTWURF", "2022-09-19", "/images/covers/cool.jpg"},
	{"Love Me Like This", "expérgo", "2023-03-20", "/images/covers/lmlt.jpg"},
	{"Party O'Clock", "A Midsummer NMIXX's Dream", "2023-07-11", "/images/covers/party.jpg"},
	{"Roller Coaster", "A Midsummer NMIXX's Dream", "2023-07-11", "/images/covers/rollercoaster.jpg"},
	{"Soñar (Breaker)", "Fe3O4: BREAK", "2024-01-15", "/images/covers/sonar.jpg"},
	{"DASH", "Fe3O4: BREAK", "2024-01-15", "/images/covers/dash.jpg"},
	{"See that?", "Fe3O4: STICK OUT", "2024-08-19", "/images/covers/seethat.jpg"},
	{"KNOW ABOUT ME", "Fe3O4: FORWARD", "2025-03-17", "/images/covers/knowaboutme.jpg"},
}

// SeedSongs inserts the catalog when the songs collection is empty.
// Reruns are no-ops, so boot stays idempotent.
func SeedSongs(ctx context.Context, client *mongo.Client) error {
	songs := OpenCollection(client, "songs")

	count, err := songs.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("🔍 [SeedSongs] Songs collection already has %d documents, skipping seed\n", count)
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(catalog))
	for _, s := range catalog {
		released, err := time.Parse("2006-01-02", s.released)
		if err != nil {
			return err
		}
		id, err := NextSequence(ctx, client, "songs")
		if err != nil {
			return err
		}
		docs = append(docs, models.Song{
			SongID:      id,
			Title:       s.title,
			Album:       s.album,
			ReleaseDate: released,
			CoverImage:  s.coverImage,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if _, err := songs.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Printf("✅ [SeedSongs] Seeded %d songs\n", len(docs))
	return nil
}
