package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue entry. The category reference must resolve to an
// existing Category whenever a product is created or updated.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	RichDescription string             `bson:"richDescription,omitempty" json:"richDescription"`
	Image           string             `bson:"image,omitempty" json:"image"`
	Images          []string           `bson:"images,omitempty" json:"images"`
	Brand           string             `bson:"brand,omitempty" json:"brand"`
	Price           float64            `bson:"price" json:"price"`
	CategoryID      primitive.ObjectID `bson:"category" json:"category"`
	CountInStock    int                `bson:"countInStock" json:"countInStock"`
	Rating          float64            `bson:"rating,omitempty" json:"rating"`
	NumReviews      int                `bson:"numReviews,omitempty" json:"numReviews"`
	IsFeatured      bool               `bson:"isFeatured" json:"isFeatured"`
	DateCreated     time.Time          `bson:"dateCreated" json:"dateCreated"`
}

// ProductDetail is the read shape with the category reference resolved.
// The outer Category field shadows the embedded reference id in JSON, so the
// rendered "category" key carries the full document.
type ProductDetail struct {
	Product
	Category *Category `json:"category,omitempty"`
}
