package wishlistControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fancystore-backend/middleware"
	"fancystore-backend/models"
	"fancystore-backend/storage"
)

func loadWishlist(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (models.Wishlist, error) {
	var wishlist models.Wishlist
	err := db.Collection("wishlists").FindOne(ctx, bson.M{"userId": userID}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		return models.Wishlist{UserID: userID, Items: []models.WishlistItem{}}, nil
	}
	if err != nil {
		return models.Wishlist{}, err
	}
	return wishlist, nil
}

// GET /api/wishlist
func Get(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		wishlist, err := loadWishlist(c.Request.Context(), db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": wishlist.Items})
	}
}

type AddInput struct {
	ProductID primitive.ObjectID `json:"productId" binding:"required"`
}

// POST /api/wishlist/add
//
// Snapshots the product's name, price and image URL into the wishlist line.
func Add(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		var input AddInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
			return
		}
		ctx := c.Request.Context()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"_id": input.ProductID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to wishlist"})
			return
		}

		wishlist, err := loadWishlist(ctx, db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to wishlist"})
			return
		}
		if wishlist.Contains(input.ProductID) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product already in wishlist"})
			return
		}
		item := models.WishlistItem{
			ID:        primitive.NewObjectID(),
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  storage.ImageURL(product.ImageID),
		}
		_, err = db.Collection("wishlists").UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{"$push": bson.M{"items": item}},
			options.Update().SetUpsert(true))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Item added to wishlist",
			"productId": input.ProductID,
		})
	}
}

// DELETE /api/wishlist/remove/:productId
func Remove(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
			return
		}
		ctx := c.Request.Context()

		res, err := db.Collection("wishlists").UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{"$pull": bson.M{"items": bson.M{"productId": productID}}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove from wishlist"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Wishlist not found"})
			return
		}
		if res.ModifiedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found in wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Item removed from wishlist",
			"productId": productID,
		})
	}
}
