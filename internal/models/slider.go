package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Slider struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	URL string `bson:"url" json:"url"`
}
