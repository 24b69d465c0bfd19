package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
)

const (
	PaymentMethodCOD      = "COD"
	PaymentMethodRazorpay = "Razorpay"
)

// statusTransitions is the order lifecycle:
// Pending -> Processing -> Shipped -> Delivered, with cancellation possible
// until the order ships. Payment confirmation moves Pending to Processing.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s names a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId,omitempty" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	ImageURL  string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ImageID   primitive.ObjectID `bson:"imageId,omitempty" json:"imageId,omitempty"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
}

type ShippingInfo struct {
	Address string `bson:"address" json:"address" binding:"required"`
	Contact string `bson:"contact" json:"contact" binding:"required"`
}

type GiftOptions struct {
	Wrapping bool   `bson:"wrapping" json:"wrapping"`
	Message  string `bson:"message" json:"message"`
}

// Order snapshots item names and prices at purchase time; it never re-reads
// Product after creation.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	GatewayOrderID string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Items          []OrderItem        `bson:"items" json:"items"`
	ShippingInfo   ShippingInfo       `bson:"shippingInfo" json:"shippingInfo"`
	DeliveryType   string             `bson:"deliveryType" json:"deliveryType"`
	GiftOptions    GiftOptions        `bson:"giftOptions" json:"giftOptions"`
	OrderNotes     string             `bson:"orderNotes,omitempty" json:"orderNotes,omitempty"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	Status         OrderStatus        `bson:"status" json:"status"`
	PaymentStatus  string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentID      string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PaymentMethod  string             `bson:"paymentMethod" json:"paymentMethod"`
	OrderDate      time.Time          `bson:"orderDate" json:"orderDate"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
