package categoryControllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fancystore-backend/models"
	"fancystore-backend/storage"
)

var seedCategories = []string{
	"Lipstick", "Nail Polish", "Soap", "Shampoo", "Perfumes", "Bag Items", "Necklace", "Bangles",
	"Steads", "Hip Band", "Bands", "Cosmetics Makeup Accessories", "Slippers", "Shoes", "Watches",
	"Bindi", "Key Chains", "Gift Items", "Rental Jewelry", "Skin Care Products", "Bottles",
	"featuredProducts", "trendingProducts", "dealOfTheDay", "shop",
}

// Seed inserts the fixed category list when the collection is empty.
func Seed(ctx context.Context, db *mongo.Database) {
	count, err := db.Collection("categories").CountDocuments(ctx, bson.M{})
	if err != nil || count > 0 {
		return
	}
	docs := make([]interface{}, 0, len(seedCategories))
	now := time.Now()
	for _, name := range seedCategories {
		docs = append(docs, models.Category{Name: name, DateAdded: now})
	}
	if _, err := db.Collection("categories").InsertMany(ctx, docs); err != nil {
		log.Printf("seed categories: %v", err)
		return
	}
	log.Printf("seeded %d categories", len(docs))
}

func withImageURL(cat models.Category) models.Category {
	cat.ImageURL = storage.ImageURL(cat.ImageID)
	return cat
}

// GET /api/categories
func List(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		opts := options.Find().SetSort(bson.D{{Key: "dateAdded", Value: -1}})
		cur, err := db.Collection("categories").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories."})
			return
		}
		var categories []models.Category
		if err := cur.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories."})
			return
		}
		out := make([]models.Category, 0, len(categories))
		for _, cat := range categories {
			out = append(out, withImageURL(cat))
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/categories/:id
func Get(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category ID"})
			return
		}
		var category models.Category
		err = db.Collection("categories").FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&category)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch category"})
			return
		}
		c.JSON(http.StatusOK, withImageURL(category))
	}
}

func uploadFormImage(c *gin.Context, store *storage.ImageStore) (primitive.ObjectID, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		return primitive.NilObjectID, true
	}
	id, err := store.Upload(fh)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrInvalidType) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store image"})
		}
		return primitive.NilObjectID, false
	}
	return id, true
}

// POST /api/categories  (admin)
func Create(db *mongo.Database, store *storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category name is required."})
			return
		}
		imageID, ok := uploadFormImage(c, store)
		if !ok {
			return
		}
		category := models.Category{Name: name, ImageID: imageID, DateAdded: time.Now()}
		res, err := db.Collection("categories").InsertOne(c.Request.Context(), category)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Category name already exists."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save category"})
			return
		}
		category.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Category added successfully!",
			"category": withImageURL(category),
		})
	}
}

// PUT /api/categories/:id  (admin)
func Update(db *mongo.Database, store *storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category ID"})
			return
		}
		ctx := c.Request.Context()

		var existing models.Category
		err = db.Collection("categories").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
			return
		}

		imageID := existing.ImageID
		if _, err := c.FormFile("image"); err == nil {
			if err := store.Delete(existing.ImageID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
				return
			}
			newID, ok := uploadFormImage(c, store)
			if !ok {
				return
			}
			imageID = newID
		}

		name := existing.Name
		if trimmed := strings.TrimSpace(c.PostForm("name")); trimmed != "" {
			name = trimmed
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var updated models.Category
		err = db.Collection("categories").FindOneAndUpdate(ctx, bson.M{"_id": id},
			bson.M{"$set": bson.M{"name": name, "imageId": imageID}}, opts).Decode(&updated)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Category name already exists."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "Category updated successfully!",
			"category": withImageURL(updated),
		})
	}
}

// DELETE /api/categories/:id  (admin)
func Delete(db *mongo.Database, store *storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category ID"})
			return
		}
		var deleted models.Category
		err = db.Collection("categories").FindOneAndDelete(c.Request.Context(), bson.M{"_id": id}).Decode(&deleted)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category"})
			return
		}
		if err := store.Delete(deleted.ImageID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category image"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully!"})
	}
}
