package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is one user's score for a product. A product keeps at most one
// rating per user; re-rating replaces the previous entry.
type Rating struct {
	User  string  `json:"user" bson:"user"`
	Value float64 `json:"value" bson:"value"`
}

// Product representa un producto publicado en el marketplace
type Product struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	Image     string             `json:"image" bson:"image"`
	Artisan   string             `json:"artisan" bson:"artisan"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Category  string             `json:"category" bson:"category"`
	Approved  bool               `json:"approved" bson:"approved"`
	Ratings   []Rating           `json:"ratings" bson:"ratings"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductUpdate representa los campos actualizables de un producto
type ProductUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Category *string  `json:"category,omitempty"`
	Image    *string  `json:"image,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u *ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.Quantity == nil &&
		u.Category == nil && u.Image == nil
}

// CartItem is one purchase line item as sent by the storefront checkout.
type CartItem struct {
	ProductID string `json:"_id"`
	Quantity  int    `json:"quantity"`
}
