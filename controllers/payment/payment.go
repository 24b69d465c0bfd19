package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"

	"fancystore-backend/config"
	orderControllers "fancystore-backend/controllers/order"
	"fancystore-backend/middleware"
	"fancystore-backend/models"
)

// VerifySignature checks the gateway callback signature: HMAC-SHA256 over
// "orderID|paymentID" keyed with the shared secret, compared in constant
// time.
func VerifySignature(orderID, paymentID, secret, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// RupeesToPaise converts a rupee amount to the gateway's minor currency unit.
func RupeesToPaise(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type CreateOrderInput struct {
	Amount decimal.Decimal   `json:"amount" binding:"required"`
	Notes  map[string]string `json:"notes"`
}

// POST /api/orders/create — reserves the amount with the payment gateway.
func CreateGatewayOrder(cfg config.RazorpayConfig) gin.HandlerFunc {
	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	return func(c *gin.Context) {
		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Amount.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A positive amount is required"})
			return
		}

		notes := map[string]interface{}{"userId": c.GetString("userId")}
		for k, v := range input.Notes {
			notes[k] = v
		}
		data := map[string]interface{}{
			"amount":          RupeesToPaise(input.Amount),
			"currency":        "INR",
			"receipt":         "order_" + strconv.FormatInt(time.Now().UnixMilli(), 10),
			"notes":           notes,
			"payment_capture": 1,
		}
		order, err := client.Order.Create(data, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
			return
		}
		order["key"] = cfg.KeyID
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

type VerifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// POST /api/orders/verify
func Verify(cfg config.RazorpayConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order id, payment id, and signature are required"})
			return
		}
		if VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, cfg.KeySecret, input.RazorpaySignature) {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified successfully"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment verification failed"})
	}
}

type CompleteInput struct {
	orderControllers.OrderInput
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// POST /api/orders/complete — the paid half of order placement. Signature
// verification guards the transition into Processing; the record itself goes
// through the same creation path as a COD order.
func Complete(db *mongo.Database, cfg config.RazorpayConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		var input CompleteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order details, payment ids, and signature are required"})
			return
		}
		if !VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, cfg.KeySecret, input.RazorpaySignature) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment verification failed"})
			return
		}

		order, err := orderControllers.Create(c.Request.Context(), db, userID, input.OrderInput, orderControllers.PaymentDetails{
			GatewayOrderID: input.RazorpayOrderID,
			PaymentID:      input.RazorpayPaymentID,
			Method:         models.PaymentMethodRazorpay,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to complete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order":   order,
			"message": "Order placed successfully and cart cleared",
		})
	}
}
