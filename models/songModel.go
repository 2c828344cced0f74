package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Song struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SongID int64              `bson:"song_id" json:"id"`
	Title  string             `bson:"title" json:"title" validate:"required,min=1,max=100"`
	Album  string             `bson:"album" json:"album" validate:"required,min=1,max=100"`

	ReleaseDate time.Time `bson:"release_date" json:"releaseDate"`
	CoverImage  string    `bson:"cover_image" json:"coverImage"`

	// Denormalized sum of approved stream counts. Recomputed after every
	// verification upsert, never incremented in place.
	TotalStreamCount int64 `bson:"total_stream_count" json:"streamCount"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
