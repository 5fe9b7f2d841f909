package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a product snapshot taken at add-to-cart time; it is not
// live-synced to later catalog changes.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Order is immutable once created; admins may only delete it.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StoreName string             `bson:"storeName" json:"storeName"`
	OwnerName string             `bson:"ownerName" json:"ownerName"`
	Phone     string             `bson:"phone" json:"phone"`
	Address   string             `bson:"address" json:"address"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
