package adminControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fancystore-backend/models"
	"fancystore-backend/storage"
)

const lowStockThreshold = 10

func findUsers(ctx context.Context, db *mongo.Database, opts ...*options.FindOptions) ([]models.User, error) {
	opts = append(opts, options.Find().SetProjection(bson.M{"password": 0}))
	cur, err := db.Collection("users").Find(ctx, bson.M{}, opts...)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func findOrders(ctx context.Context, db *mongo.Database, filter bson.M, opts ...*options.FindOptions) ([]models.Order, error) {
	cur, err := db.Collection("orders").Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func findProducts(ctx context.Context, db *mongo.Database, filter bson.M, opts ...*options.FindOptions) ([]models.Product, error) {
	cur, err := db.Collection("products").Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GET /api/admin/users
func Users(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := findUsers(c.Request.Context(), db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
	}
}

// GET /api/admin/users/all — per-user rollup of orders, cart, and wishlist.
func UsersAll(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		users, err := findUsers(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users"})
			return
		}

		details := make([]gin.H, 0, len(users))
		for _, user := range users {
			orders, err := findOrders(ctx, db, bson.M{"userId": user.ID},
				options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users"})
				return
			}
			var totalSpent float64
			for _, order := range orders {
				totalSpent += order.TotalAmount
			}
			var lastOrder interface{}
			if len(orders) > 0 {
				lastOrder = orders[0]
			}

			var cart models.Cart
			db.Collection("carts").FindOne(ctx, bson.M{"userId": user.ID}).Decode(&cart)
			var wishlist models.Wishlist
			db.Collection("wishlists").FindOne(ctx, bson.M{"userId": user.ID}).Decode(&wishlist)

			verification := "Unverified"
			if user.Verified {
				verification = "Verified"
			}
			details = append(details, gin.H{
				"id":           user.ID,
				"name":         user.Name,
				"email":        user.Email,
				"phone":        user.Phone,
				"profileImage": user.ProfileImage,
				"isGoogle":     user.IsGoogle,
				"lastLogin":    user.LastLogin,
				"addresses":    user.Addresses,
				"orderHistory": gin.H{
					"total":      len(orders),
					"totalSpent": totalSpent,
					"lastOrder":  lastOrder,
				},
				"cartItems":           len(cart.Items),
				"wishlistItems":       len(wishlist.Items),
				"role":                user.Role,
				"verificationStatus":  verification,
				"loginHistory":        user.LoginHistory,
				"preferredCategories": user.PreferredCategories,
				"notifications":       user.Notifications,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"data":      details,
			"total":     len(users),
			"timestamp": time.Now(),
		})
	}
}

// GET /api/admin/orders
func Orders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := findOrders(c.Request.Context(), db, bson.M{},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// GET /api/admin/products
func Products(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := findProducts(c.Request.Context(), db, bson.M{},
			options.Find().SetSort(bson.D{{Key: "dateAdded", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
			return
		}
		for i := range products {
			products[i].ImageURL = storage.ImageURL(products[i].ImageID)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
	}
}

func sumRevenue(orders []models.Order) float64 {
	var total float64
	for _, order := range orders {
		total += order.TotalAmount
	}
	return total
}

func countByStatus(orders []models.Order) map[models.OrderStatus]int {
	counts := make(map[models.OrderStatus]int)
	for _, order := range orders {
		counts[order.Status]++
	}
	return counts
}

// GET /api/admin/data — full dashboard payload derived in-process.
func Data(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		users, err := findUsers(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch dashboard data"})
			return
		}
		orders, err := findOrders(ctx, db, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch dashboard data"})
			return
		}
		products, err := findProducts(ctx, db, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch dashboard data"})
			return
		}
		categoriesCount, err := db.Collection("categories").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch dashboard data"})
			return
		}

		lowStock := 0
		for i := range products {
			products[i].ImageURL = storage.ImageURL(products[i].ImageID)
			if products[i].Stock < lowStockThreshold {
				lowStock++
			}
		}
		dayAgo := time.Now().Add(-24 * time.Hour)
		activeUsers := 0
		for _, user := range users {
			if user.LastLogin != nil && user.LastLogin.After(dayAgo) {
				activeUsers++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"counts": gin.H{
					"users":      len(users),
					"orders":     len(orders),
					"products":   len(products),
					"categories": categoriesCount,
					"revenue":    sumRevenue(orders),
				},
				"recent": gin.H{
					"orders":   head(orders, 5),
					"users":    head(users, 5),
					"products": head(products, 5),
				},
				"stats": gin.H{
					"ordersByStatus": countByStatus(orders),
					"lowStock":       lowStock,
					"activeUsers":    activeUsers,
				},
			},
		})
	}
}

func head[T any](items []T, n int) []T {
	if len(items) < n {
		return items
	}
	return items[:n]
}

// GET /api/admin/overview — aggregate stats with revenue computed in the
// database.
func Overview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCount, err := db.Collection("users").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch overview data"})
			return
		}
		ordersCount, err := db.Collection("orders").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch overview data"})
			return
		}
		productsCount, err := db.Collection("products").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch overview data"})
			return
		}

		var revenue float64
		pipeline := mongo.Pipeline{
			{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalAmount"}}}},
		}
		cur, err := db.Collection("orders").Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch overview data"})
			return
		}
		var revenueRows []struct {
			Total float64 `bson:"total"`
		}
		if err := cur.All(ctx, &revenueRows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch overview data"})
			return
		}
		if len(revenueRows) > 0 {
			revenue = revenueRows[0].Total
		}

		recentOrders, err := findOrders(ctx, db, bson.M{},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch overview data"})
			return
		}
		recentUsers, err := findUsers(ctx, db,
			options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(5))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch overview data"})
			return
		}
		lowStock, err := findProducts(ctx, db,
			bson.M{"stock": bson.M{"$lt": lowStockThreshold}},
			options.Find().SetLimit(5))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch overview data"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"stats": gin.H{
					"users":    usersCount,
					"orders":   ordersCount,
					"products": productsCount,
					"revenue":  revenue,
				},
				"recent": gin.H{
					"orders":   recentOrders,
					"users":    recentUsers,
					"lowStock": lowStock,
				},
			},
		})
	}
}

// GET /api/admin/orders-stats
func OrdersStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := findOrders(c.Request.Context(), db, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders stats"})
			return
		}
		byStatus := countByStatus(orders)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"total":        len(orders),
				"pending":      byStatus[models.StatusPending],
				"delivered":    byStatus[models.StatusDelivered],
				"totalRevenue": sumRevenue(orders),
			},
		})
	}
}

// GET /api/admin/products-stats
func ProductsStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		products, err := findProducts(ctx, db, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products stats"})
			return
		}
		cur, err := db.Collection("categories").Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products stats"})
			return
		}
		var categories []models.Category
		if err := cur.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products stats"})
			return
		}

		perCategory := make(map[string]int, len(products))
		lowStock := 0
		for _, p := range products {
			perCategory[p.Category]++
			if p.Stock < lowStockThreshold {
				lowStock++
			}
		}
		categoryCounts := make([]gin.H, 0, len(categories))
		for _, cat := range categories {
			categoryCounts = append(categoryCounts, gin.H{
				"name":  cat.Name,
				"count": perCategory[cat.Name],
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"total":      len(products),
				"lowStock":   lowStock,
				"categories": categoryCounts,
			},
		})
	}
}
