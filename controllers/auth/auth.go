package authControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"fancystore-backend/auth"
	"fancystore-backend/config"
	"fancystore-backend/models"
)

type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/signup
func Signup(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and password are required."})
			return
		}
		ctx := c.Request.Context()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": input.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error occurred during signup."})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already registered."})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error occurred during signup."})
			return
		}
		user := models.User{
			Name:          input.Name,
			Email:         input.Email,
			Password:      string(hashed),
			Role:          models.RoleClient,
			Notifications: models.DefaultNotificationPrefs(),
		}
		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already registered."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error occurred during signup."})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully.", "userId": res.InsertedID})
	}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(db *mongo.Database, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		}
		ctx := c.Request.Context()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		if user.IsGoogle {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please use Google Sign-In for this account"})
			return
		}
		if input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required for non-Google accounts"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		now := time.Now()
		db.Collection("users").UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
			"$set":  bson.M{"lastLogin": now},
			"$push": bson.M{"loginHistory": now},
		})

		token, err := auth.IssueToken([]byte(jwtCfg.Secret), user, jwtCfg.Expiration)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    publicUser(user),
			"token":   token,
		})
	}
}

type GoogleLoginInput struct {
	IDToken  string `json:"idToken" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	GoogleID string `json:"googleId" binding:"required"`
}

// POST /api/auth/google-login
func GoogleLogin(db *mongo.Database, jwtCfg config.JWTConfig, googleCfg config.GoogleConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input GoogleLoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Google ID token is required"})
			return
		}
		ctx := c.Request.Context()

		identity, err := auth.VerifyGoogleToken(ctx, input.IDToken, googleCfg.ClientID, input.Email, input.GoogleID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Google token"})
			return
		}

		user, err := upsertGoogleUser(ctx, db, identity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
			return
		}

		token, err := auth.IssueToken([]byte(jwtCfg.Secret), user, jwtCfg.Expiration)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Google login successful",
			"user":    publicUser(user),
			"token":   token,
		})
	}
}

// upsertGoogleUser finds the account keyed by email-or-googleId, creating it
// on first login and refreshing the profile otherwise.
func upsertGoogleUser(ctx context.Context, db *mongo.Database, identity *auth.GoogleIdentity) (models.User, error) {
	users := db.Collection("users")
	now := time.Now()

	var user models.User
	filter := bson.M{"$or": bson.A{
		bson.M{"email": identity.Email},
		bson.M{"googleId": identity.GoogleID},
	}}
	err := users.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		user = models.User{
			Name:          identity.Name,
			Email:         identity.Email,
			GoogleID:      identity.GoogleID,
			ProfileImage:  identity.Picture,
			IsGoogle:      true,
			Role:          models.RoleClient,
			LastLogin:     &now,
			LoginHistory:  []time.Time{now},
			Notifications: models.DefaultNotificationPrefs(),
		}
		res, err := users.InsertOne(ctx, user)
		if err != nil {
			return models.User{}, err
		}
		user.ID = res.InsertedID.(primitive.ObjectID)
		return user, nil
	}
	if err != nil {
		return models.User{}, err
	}

	set := bson.M{
		"lastLogin": now,
		"googleId":  identity.GoogleID,
		"name":      identity.Name,
		"isGoogle":  true,
	}
	if identity.Picture != "" && user.ProfileImage == "" {
		set["profileImage"] = identity.Picture
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = users.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":  set,
		"$push": bson.M{"loginHistory": now},
	}, opts).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// publicUser is the login response shape: id, name, email, role and a derived
// profile image URL, never the password hash.
func publicUser(user models.User) gin.H {
	var profileImage interface{}
	if user.ProfileImage != "" {
		profileImage = profileImageURL(user.ProfileImage)
	}
	return gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"role":         user.Role,
		"profileImage": profileImage,
	}
}

// profileImageURL maps a stored image id to its serving URL; external URLs
// (Google profile pictures) pass through untouched.
func profileImageURL(ref string) string {
	if len(ref) > 4 && ref[:4] == "http" {
		return ref
	}
	return "/api/images/" + ref
}
