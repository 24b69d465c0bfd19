package productControllers

import (
	"errors"
	"net/http"
	"strconv"
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

func withImageURL(p models.Product) models.Product {
	p.ImageURL = storage.ImageURL(p.ImageID)
	return p
}

// GET /api/products
func List(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		opts := options.Find().SetSort(bson.D{{Key: "dateAdded", Value: -1}})
		cur, err := db.Collection("products").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}
		var products []models.Product
		if err := cur.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}
		out := make([]models.Product, 0, len(products))
		for _, p := range products {
			out = append(out, withImageURL(p))
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/products/:id
func Get(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}
		var product models.Product
		err = db.Collection("products").FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, withImageURL(product))
	}
}

// productForm reads the multipart fields shared by create and update.
type productForm struct {
	Name              string
	Price             float64
	Category          string
	Rating            float64
	Colors            []string
	AvailableQuantity int
	Stock             int
	Sold              int
	Description       string
	OfferEnds         *time.Time
}

func parseProductForm(c *gin.Context) productForm {
	form := productForm{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Category:    c.PostForm("category"),
		Description: strings.TrimSpace(c.PostForm("description")),
	}
	form.Price, _ = strconv.ParseFloat(c.PostForm("price"), 64)
	form.Rating, _ = strconv.ParseFloat(c.PostForm("rating"), 64)
	form.AvailableQuantity, _ = strconv.Atoi(c.PostForm("availableQuantity"))
	form.Stock, _ = strconv.Atoi(c.PostForm("stock"))
	form.Sold, _ = strconv.Atoi(c.PostForm("sold"))
	// Either stock field stands in for the other when only one is sent.
	if form.AvailableQuantity == 0 {
		form.AvailableQuantity = form.Stock
	}
	if form.Stock == 0 {
		form.Stock = form.AvailableQuantity
	}
	if colors := c.PostForm("colors"); colors != "" {
		for _, color := range strings.Split(colors, ",") {
			form.Colors = append(form.Colors, strings.TrimSpace(color))
		}
	}
	if raw := c.PostForm("offerEnds"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			form.OfferEnds = &t
		}
	}
	return form
}

func uploadFormImage(c *gin.Context, store *storage.ImageStore) (primitive.ObjectID, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		return primitive.NilObjectID, true // no image attached
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

// POST /api/products  (admin)
func Create(db *mongo.Database, store *storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := parseProductForm(c)
		if form.Name == "" || form.Price <= 0 || form.Category == "" || form.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, price, category, and description are required."})
			return
		}
		imageID, ok := uploadFormImage(c, store)
		if !ok {
			return
		}
		product := models.Product{
			Name:              form.Name,
			Price:             form.Price,
			Category:          form.Category,
			Rating:            form.Rating,
			Colors:            form.Colors,
			AvailableQuantity: form.AvailableQuantity,
			Stock:             form.Stock,
			Sold:              form.Sold,
			Description:       form.Description,
			ImageID:           imageID,
			OfferEnds:         form.OfferEnds,
			DateAdded:         time.Now(),
		}
		res, err := db.Collection("products").InsertOne(c.Request.Context(), product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save product"})
			return
		}
		product.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Product added successfully!",
			"product": withImageURL(product),
		})
	}
}

// PUT /api/products/:id  (admin)
func Update(db *mongo.Database, store *storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}
		ctx := c.Request.Context()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
			return
		}

		imageID := existing.ImageID
		if _, err := c.FormFile("image"); err == nil {
			// Replacement image: drop the old blob first.
			if err := store.Delete(existing.ImageID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
				return
			}
			newID, ok := uploadFormImage(c, store)
			if !ok {
				return
			}
			imageID = newID
		}

		form := parseProductForm(c)
		updated := existing
		updated.ImageID = imageID
		if form.Name != "" {
			updated.Name = form.Name
		}
		if form.Price > 0 {
			updated.Price = form.Price
		}
		if form.Category != "" {
			updated.Category = form.Category
		}
		if form.Rating > 0 {
			updated.Rating = form.Rating
		}
		if len(form.Colors) > 0 {
			updated.Colors = form.Colors
		}
		if form.AvailableQuantity > 0 {
			updated.AvailableQuantity = form.AvailableQuantity
		}
		if form.Stock > 0 {
			updated.Stock = form.Stock
		}
		if form.Sold > 0 {
			updated.Sold = form.Sold
		}
		if form.Description != "" {
			updated.Description = form.Description
		}
		if form.OfferEnds != nil {
			updated.OfferEnds = form.OfferEnds
		}

		_, err = db.Collection("products").ReplaceOne(ctx, bson.M{"_id": id}, updated)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Product updated successfully!",
			"product": withImageURL(updated),
		})
	}
}

// DELETE /api/products/:id  (admin)
//
// Existing cart and order lines keep their product snapshots; only the
// product record and its image blob go away.
func Delete(db *mongo.Database, store *storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}
		var deleted models.Product
		err = db.Collection("products").FindOneAndDelete(c.Request.Context(), bson.M{"_id": id}).Decode(&deleted)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
			return
		}
		if err := store.Delete(deleted.ImageID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product image"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully!"})
	}
}
