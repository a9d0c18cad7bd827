package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is one product+quantity line within an order. Items are only
// ever created as part of an order submission and are deleted when their
// owning order is deleted.
type OrderItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	ProductID primitive.ObjectID `bson:"product" json:"product"`
}

// Order owns an ordered sequence of OrderItem references. TotalPrice is
// computed once at submission time from the referenced products' prices and
// is not recomputed on later reads.
type Order struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderItemIDs     []primitive.ObjectID `bson:"orderItems" json:"orderItems"`
	ShippingAddress1 string               `bson:"shippingAddress1" json:"shippingAddress1"`
	ShippingAddress2 string               `bson:"shippingAddress2,omitempty" json:"shippingAddress2"`
	City             string               `bson:"city" json:"city"`
	Zip              string               `bson:"zip" json:"zip"`
	Country          string               `bson:"country" json:"country"`
	Phone            string               `bson:"phone" json:"phone"`
	Status           string               `bson:"status" json:"status"`
	TotalPrice       float64              `bson:"totalPrice" json:"totalPrice"`
	UserID           primitive.ObjectID   `bson:"user" json:"user"`
	DateOrdered      time.Time            `bson:"dateOrdered" json:"dateOrdered"`
}

// OrderSummary is the listing shape: the user reference resolved to just the
// display name and the order date rendered human-readable
// ("2023 March 3rd").
type OrderSummary struct {
	Order
	User        UserName `json:"user"`
	DateOrdered string   `json:"dateOrdered"`
}

// UserName carries only a user's display name for populated order reads.
type UserName struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// OrderItemDetail is an order line with its product resolved, and the
// product's category resolved inside it.
type OrderItemDetail struct {
	OrderItem
	Product *ProductDetail `json:"product,omitempty"`
}

// OrderDetail is the single-order read shape with two levels of reference
// resolution: items → products → categories.
type OrderDetail struct {
	Order
	User       UserName          `json:"user"`
	OrderItems []OrderItemDetail `json:"orderItems"`
}
