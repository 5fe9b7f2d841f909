package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the persisted catalog document. DisplayOrder is optional: a
// product without one sorts by creation time instead.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Price        float64            `bson:"price" json:"price"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	InStock      bool               `bson:"inStock" json:"inStock"`
	Featured     bool               `bson:"featured" json:"featured"`
	DisplayOrder *int               `bson:"displayOrder,omitempty" json:"displayOrder,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
