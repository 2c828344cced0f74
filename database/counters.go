package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NextSequence atomically allocates the next numeric id for the named
// counter ("users", "songs", "verifications"). The client contract uses
// small numeric ids, not ObjectIDs, so each collection carries its own
// sequence document here.
func NextSequence(ctx context.Context, client *mongo.Client, name string) (int64, error) {
	counters := OpenCollection(client, "counters")

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}
