package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verification statuses. New submissions go straight to approved; the
// reject/approve endpoints exist for moderation.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Verification is one user's self-reported stream count for one song.
// At most one document exists per (user_id, song_id); a resubmission
// replaces the fields of the existing document.
type Verification struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	VerificationID int64              `bson:"verification_id" json:"id"`

	UserID   int64  `bson:"user_id" json:"userId"`
	Username string `bson:"username" json:"username"`

	SongID    int64  `bson:"song_id" json:"songId"`
	SongTitle string `bson:"song_title" json:"songTitle"`

	StreamCount int64  `bson:"stream_count" json:"streamCount"`
	ProofImage  string `bson:"proof_image" json:"proofImage"`
	Status      string `bson:"status" json:"status"`

	VerifiedAt *time.Time `bson:"verified_at" json:"verifiedAt"`
	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updatedAt"`
}

// RankedAt is the timestamp the ranking tie-break uses. Approved records
// always carry a verified timestamp; fall back to created_at defensively.
func (v *Verification) RankedAt() time.Time {
	if v.VerifiedAt != nil {
		return *v.VerifiedAt
	}
	return v.CreatedAt
}
