package orderControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	cartControllers "fancystore-backend/controllers/cart"
	"fancystore-backend/middleware"
	"fancystore-backend/models"
)

// OrderInput is shared by the cash-on-delivery and paid flows; items are a
// price snapshot taken at purchase time.
type OrderInput struct {
	Items        []models.OrderItem  `json:"items" binding:"required,min=1"`
	ShippingInfo models.ShippingInfo `json:"shippingInfo" binding:"required"`
	DeliveryType string              `json:"deliveryType"`
	GiftOptions  models.GiftOptions  `json:"giftOptions"`
	OrderNotes   string              `json:"orderNotes"`
	TotalAmount  float64             `json:"totalAmount" binding:"required,gt=0"`
}

// PaymentDetails is what distinguishes a paid order from a COD one.
type PaymentDetails struct {
	GatewayOrderID string
	PaymentID      string
	Method         string
}

// Create is the single order-creation path: it snapshots the items, inserts
// the order, and clears the caller's cart. COD orders start Pending; paid
// orders have already passed signature verification and start Processing.
func Create(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, input OrderInput, payment PaymentDetails) (models.Order, error) {
	now := time.Now()
	order := models.Order{
		UserID:         userID,
		GatewayOrderID: payment.GatewayOrderID,
		Items:          input.Items,
		ShippingInfo:   input.ShippingInfo,
		DeliveryType:   input.DeliveryType,
		GiftOptions:    input.GiftOptions,
		OrderNotes:     input.OrderNotes,
		TotalAmount:    input.TotalAmount,
		Status:         models.StatusPending,
		PaymentStatus:  models.PaymentPending,
		PaymentMethod:  models.PaymentMethodCOD,
		OrderDate:      now,
		CreatedAt:      now,
	}
	if order.DeliveryType == "" {
		order.DeliveryType = "normal"
	}
	for i := range order.Items {
		if order.Items[i].Quantity <= 0 {
			order.Items[i].Quantity = 1
		}
	}
	if payment.PaymentID != "" {
		// Payment already confirmed: the guarded Pending -> Processing
		// transition happens at creation.
		order.Status = models.StatusProcessing
		order.PaymentStatus = models.PaymentCompleted
		order.PaymentID = payment.PaymentID
		order.PaymentMethod = payment.Method
	}

	res, err := db.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)

	if err := cartControllers.ClearForUser(ctx, db, userID); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// POST /api/orders — cash-on-delivery placement.
func Place(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		var input OrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Order must contain at least one item and complete shipping information"})
			return
		}

		order, err := Create(c.Request.Context(), db, userID, input, PaymentDetails{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order created successfully",
			"order":   order,
		})
	}
}

// GET /api/orders
func List(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		ctx := c.Request.Context()
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cur, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}
		orders := []models.Order{}
		if err := cur.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:orderId — scoped to the caller.
func Get(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}
		var order models.Order
		err = db.Collection("orders").FindOne(c.Request.Context(),
			bson.M{"_id": orderID, "userId": userID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type StatusInput struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// PUT /api/admin/orders/:orderId/status — admin transition guarded by the
// order state machine.
func UpdateStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}
		var input StatusInput
		if err := c.ShouldBindJSON(&input); err != nil || !models.ValidStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A valid status is required"})
			return
		}
		ctx := c.Request.Context()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
			return
		}
		if !models.CanTransition(order.Status, input.Status) {
			c.JSON(http.StatusConflict, gin.H{
				"message": "Invalid status transition",
				"from":    order.Status,
				"to":      input.Status,
			})
			return
		}
		// The matched status guards against a concurrent transition.
		res, err := db.Collection("orders").UpdateOne(ctx,
			bson.M{"_id": orderID, "status": order.Status},
			bson.M{"$set": bson.M{"status": input.Status}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "Order status changed concurrently"})
			return
		}
		order.Status = input.Status
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
