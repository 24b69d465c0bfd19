package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"fancystore-backend/middleware"
	"fancystore-backend/models"
	"fancystore-backend/storage"
)

// GET /api/users/me
func Me(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		var user models.User
		err := db.Collection("users").FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
			return
		}
		user.Password = ""
		c.JSON(http.StatusOK, user)
	}
}

// POST /api/users/me/profile-picture
func UploadProfilePicture(db *mongo.Database, store *storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		ctx := c.Request.Context()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload profile picture"})
			return
		}

		fh, err := c.FormFile("profilePicture")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
			return
		}
		imageID, err := store.Upload(fh)
		if err != nil {
			if errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrInvalidType) {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload profile picture"})
			return
		}

		// Drop the previous picture when it lived in the object store.
		if oldID, err := primitive.ObjectIDFromHex(user.ProfileImage); err == nil {
			store.Delete(oldID)
		}

		_, err = db.Collection("users").UpdateOne(ctx, bson.M{"_id": userID},
			bson.M{"$set": bson.M{"profileImage": imageID.Hex()}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload profile picture"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Profile picture updated",
			"profileImage": storage.ImageURL(imageID),
		})
	}
}

type SettingsInput struct {
	Email string `json:"email" binding:"omitempty,email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PUT /api/user/settings
func UpdateSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		var input SettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
			return
		}

		set := bson.M{"phone": input.Phone}
		if input.Email != "" {
			set["email"] = input.Email
		}
		if input.Name != "" {
			set["name"] = input.Name
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var user models.User
		err := db.Collection("users").FindOneAndUpdate(c.Request.Context(),
			bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"phone": user.Phone,
			},
		})
	}
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// PUT /api/user/change-password
func ChangePassword(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		var input ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Current and new passwords are required"})
			return
		}
		ctx := c.Request.Context()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to change password"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Current password is incorrect"})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to change password"})
			return
		}
		_, err = db.Collection("users").UpdateOne(ctx, bson.M{"_id": userID},
			bson.M{"$set": bson.M{"password": string(hashed)}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to change password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}

// DELETE /api/users/me
//
// Deleting the account cascades to everything the user owns: orders, reviews,
// cart, and wishlist.
func DeleteAccount(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}
		ctx := c.Request.Context()

		res, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": userID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete account"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		owned := bson.M{"userId": userID}
		db.Collection("orders").DeleteMany(ctx, owned)
		db.Collection("reviews").DeleteMany(ctx, owned)
		db.Collection("carts").DeleteOne(ctx, owned)
		db.Collection("wishlists").DeleteOne(ctx, owned)

		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
