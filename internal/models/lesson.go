package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Lesson struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Order     int     `bson:"order" json:"order"`
	Title     string  `bson:"title" json:"title"`
	Video     string  `bson:"video" json:"video"`
	Poster    string  `bson:"poster" json:"poster"`
	URL       string  `bson:"url" json:"url"`
	Price     float64 `bson:"price" json:"price"`
	PriceText string  `bson:"price_text" json:"priceText"`
	Category  string  `bson:"category" json:"category"`
}

// LessonFilter selects a page of lessons ordered by Order.
type LessonFilter struct {
	Category string // empty matches every category
	Offset   int64
	Limit    int64  // zero returns every matching lesson
}
