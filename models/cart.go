package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	ImageURL  string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
}

// Cart is one-per-user. TotalQuantity and TotalPrice are derived and must be
// recomputed after every mutation. Version backs the compare-and-swap save:
// concurrent mutations of the same cart never lose an update.
type Cart struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Items         []CartItem         `bson:"items" json:"items"`
	TotalQuantity int                `bson:"totalQuantity" json:"totalQuantity"`
	TotalPrice    float64            `bson:"totalPrice" json:"totalPrice"`
	Version       int64              `bson:"version" json:"-"`
}

// RecomputeTotals restores the invariant
// totalQuantity == Σ quantity, totalPrice == Σ quantity*price.
func (c *Cart) RecomputeTotals() {
	c.TotalQuantity = 0
	c.TotalPrice = 0
	for _, item := range c.Items {
		c.TotalQuantity += item.Quantity
		c.TotalPrice += float64(item.Quantity) * item.Price
	}
}

// AddItem merges the quantity into an existing (productId, color) line if one
// exists, otherwise appends a new line, then recomputes totals.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID && c.Items[i].Color == item.Color {
			c.Items[i].Quantity += item.Quantity
			c.RecomputeTotals()
			return
		}
	}
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	c.Items = append(c.Items, item)
	c.RecomputeTotals()
}

// SetQuantity sets the quantity of the line with the given id. Returns false
// when no such line exists.
func (c *Cart) SetQuantity(itemID primitive.ObjectID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.RecomputeTotals()
			return true
		}
	}
	return false
}

// RemoveItem deletes the line with the given id. Returns false when no such
// line exists.
func (c *Cart) RemoveItem(itemID primitive.ObjectID) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.RecomputeTotals()
			return true
		}
	}
	return false
}

// Clear empties the cart and zeroes the totals.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.RecomputeTotals()
}
