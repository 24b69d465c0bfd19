package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fancystore-backend/config"
	categoryControllers "fancystore-backend/controllers/category"
	"fancystore-backend/routes"
	"fancystore-backend/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// Connect to MongoDB
	client, err := mongo.NewClient(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.Mongo.Database)
	log.Println("connected to MongoDB")

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatalf("create indexes: %v", err)
	}
	categoryControllers.Seed(ctx, db)

	store, err := storage.NewImageStore(db, cfg.Upload)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	r.MaxMultipartMemory = cfg.Upload.MaxBytes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, store, cfg)

	log.Printf("server running on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}

// ensureIndexes backs the uniqueness rules the handlers rely on: one account
// per email, one cart per user, unique category names.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	collections := []struct {
		name  string
		model mongo.IndexModel
	}{
		{"users", mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{"categories", mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{"carts", mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{"wishlists", mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)}},
	}
	for _, c := range collections {
		if _, err := db.Collection(c.name).Indexes().CreateOne(ctx, c.model); err != nil {
			return err
		}
	}
	return nil
}
