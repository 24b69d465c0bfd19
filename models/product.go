package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Price             float64            `bson:"price" json:"price"`
	Category          string             `bson:"category" json:"category"`
	Rating            float64            `bson:"rating" json:"rating"`
	Colors            []string           `bson:"colors,omitempty" json:"colors,omitempty"`
	AvailableQuantity int                `bson:"availableQuantity" json:"availableQuantity"`
	Stock             int                `bson:"stock" json:"stock"`
	Sold              int                `bson:"sold" json:"sold"`
	Description       string             `bson:"description" json:"description"`
	ImageID           primitive.ObjectID `bson:"imageId,omitempty" json:"imageId,omitempty"`
	ImageURL          string             `bson:"-" json:"imageUrl,omitempty"`
	OfferEnds         *time.Time         `bson:"offerEnds,omitempty" json:"offerEnds,omitempty"`
	DateAdded         time.Time          `bson:"dateAdded" json:"dateAdded"`
}

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	ImageID   primitive.ObjectID `bson:"imageId,omitempty" json:"imageId,omitempty"`
	ImageURL  string             `bson:"-" json:"imageUrl,omitempty"`
	DateAdded time.Time          `bson:"dateAdded" json:"dateAdded"`
}

type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	ProductID  primitive.ObjectID `bson:"productId" json:"productId"`
	ReviewText string             `bson:"reviewText" json:"reviewText"`
	Rating     int                `bson:"rating" json:"rating"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
