package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID   int64              `bson:"user_id" json:"id"`
	Username string             `bson:"username" json:"username" validate:"required,min=1,max=50"`
	PinHash  string             `bson:"pin_hash" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
