package cartControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fancystore-backend/middleware"
	"fancystore-backend/models"
)

var errConflict = errors.New("cart modified concurrently")

const maxRetries = 3

// loadCart fetches the user's cart, returning a fresh unsaved one when none
// exists yet.
func loadCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// saveCart persists the cart with an optimistic version check: the update only
// matches the version that was read, so a concurrent writer forces a retry
// instead of silently losing an update.
func saveCart(ctx context.Context, db *mongo.Database, cart *models.Cart) error {
	carts := db.Collection("carts")
	if cart.ID.IsZero() {
		cart.Version = 1
		res, err := carts.InsertOne(ctx, cart)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return errConflict // another request created the cart first
			}
			return err
		}
		cart.ID = res.InsertedID.(primitive.ObjectID)
		return nil
	}
	res, err := carts.UpdateOne(ctx,
		bson.M{"_id": cart.ID, "version": cart.Version},
		bson.M{
			"$set": bson.M{
				"items":         cart.Items,
				"totalQuantity": cart.TotalQuantity,
				"totalPrice":    cart.TotalPrice,
			},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errConflict
	}
	cart.Version++
	return nil
}

// mutate runs apply on the caller's cart inside a read-modify-write loop,
// retrying on version conflicts.
func mutate(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, apply func(*models.Cart) error) (models.Cart, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		cart, err := loadCart(ctx, db, userID)
		if err != nil {
			return models.Cart{}, err
		}
		if err := apply(&cart); err != nil {
			return models.Cart{}, err
		}
		err = saveCart(ctx, db, &cart)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, errConflict) {
			return models.Cart{}, err
		}
		lastErr = err
	}
	return models.Cart{}, lastErr
}

func cartResponse(cart models.Cart) gin.H {
	return gin.H{
		"items":         cart.Items,
		"totalQuantity": cart.TotalQuantity,
		"totalPrice":    cart.TotalPrice,
	}
}

// GET /api/cart
func Get(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		cart, err := loadCart(c.Request.Context(), db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(cart))
	}
}

type AddItemInput struct {
	ProductID primitive.ObjectID `json:"productId" binding:"required"`
	Quantity  int                `json:"quantity"`
	Color     string             `json:"color"`
	Price     float64            `json:"price"`
	Name      string             `json:"name"`
	ImageURL  string             `json:"imageUrl"`
}

// POST /api/cart
func AddItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}
		if input.Quantity <= 0 {
			input.Quantity = 1
		}

		cart, err := mutate(c.Request.Context(), db, userID, func(cart *models.Cart) error {
			cart.AddItem(models.CartItem{
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
				Price:     input.Price,
				Name:      input.Name,
				ImageURL:  input.ImageURL,
				Color:     input.Color,
			})
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding item to cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart": cartResponse(cart)})
	}
}

type UpdateItemInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

var errItemNotFound = errors.New("item not found in cart")

// PUT /api/cart/:itemId
func UpdateItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
			return
		}
		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be greater than 0"})
			return
		}

		cart, err := mutate(c.Request.Context(), db, userID, func(cart *models.Cart) error {
			if !cart.SetQuantity(itemID, input.Quantity) {
				return errItemNotFound
			}
			return nil
		})
		if errors.Is(err, errItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found in cart"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated", "cart": cartResponse(cart)})
	}
}

// DELETE /api/cart/:itemId
func RemoveItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
			return
		}

		cart, err := mutate(c.Request.Context(), db, userID, func(cart *models.Cart) error {
			if !cart.RemoveItem(itemID) {
				return errItemNotFound
			}
			return nil
		})
		if errors.Is(err, errItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found in cart"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error removing item from cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "cart": cartResponse(cart)})
	}
}

// DELETE /api/cart
func Clear(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		cart, err := mutate(c.Request.Context(), db, userID, func(cart *models.Cart) error {
			cart.Clear()
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "cart": cartResponse(cart)})
	}
}

// ClearForUser empties a user's cart after order placement.
func ClearForUser(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) error {
	_, err := mutate(ctx, db, userID, func(cart *models.Cart) error {
		cart.Clear()
		return nil
	})
	return err
}
