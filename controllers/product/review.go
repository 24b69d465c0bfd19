package productControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fancystore-backend/middleware"
	"fancystore-backend/models"
)

// GET /api/products/:id/reviews
func ListReviews(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID."})
			return
		}
		ctx := c.Request.Context()
		cur, err := db.Collection("reviews").Find(ctx, bson.M{"productId": productID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reviews."})
			return
		}
		reviews := []models.Review{}
		if err := cur.All(ctx, &reviews); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reviews."})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

type ReviewInput struct {
	ReviewText string `json:"reviewText" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
}

// POST /api/products/:id/reviews
func CreateReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID."})
			return
		}
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Review text and a valid rating (1-5) are required."})
			return
		}
		ctx := c.Request.Context()

		count, err := db.Collection("products").CountDocuments(ctx, bson.M{"_id": productID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit review."})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
			return
		}

		review := models.Review{
			UserID:     userID,
			ProductID:  productID,
			ReviewText: input.ReviewText,
			Rating:     input.Rating,
			CreatedAt:  time.Now(),
		}
		res, err := db.Collection("reviews").InsertOne(ctx, review)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit review."})
			return
		}
		review.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, gin.H{"message": "Review submitted successfully.", "review": review})
	}
}
