package adminControllers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fancystore-backend/models"
)

// GET /api/admin/users-orders — per-user purchase analytics plus an
// orders-over-time aggregation.
func UsersOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		users, err := findUsers(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users and orders"})
			return
		}
		orders, err := findOrders(ctx, db, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users and orders"})
			return
		}
		cur, err := db.Collection("wishlists").Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users and orders"})
			return
		}
		var wishlists []models.Wishlist
		if err := cur.All(ctx, &wishlists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users and orders"})
			return
		}
		wishlistByUser := make(map[string]models.Wishlist, len(wishlists))
		for _, w := range wishlists {
			wishlistByUser[w.UserID.Hex()] = w
		}

		type userAnalytics struct {
			User     gin.H                 `json:"user"`
			Orders   []models.Order        `json:"orders"`
			Wishlist []models.WishlistItem `json:"wishlist"`
		}
		analytics := make([]userAnalytics, 0, len(users))
		totalWishlistItems := 0
		ordersByStatus := make(map[models.OrderStatus]int)
		for _, user := range users {
			userOrders := []models.Order{}
			for _, order := range orders {
				if order.UserID == user.ID {
					userOrders = append(userOrders, order)
					ordersByStatus[order.Status]++
				}
			}
			wishlistItems := wishlistByUser[user.ID.Hex()].Items
			if wishlistItems == nil {
				wishlistItems = []models.WishlistItem{}
			}
			totalWishlistItems += len(wishlistItems)
			analytics = append(analytics, userAnalytics{
				User: gin.H{
					"id":             user.ID,
					"name":           user.Name,
					"email":          user.Email,
					"profilePicture": user.ProfileImage,
				},
				Orders:   userOrders,
				Wishlist: wishlistItems,
			})
		}

		ordersOverTime, err := ordersByMonth(c, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users and orders"})
			return
		}

		top := make([]userAnalytics, len(analytics))
		copy(top, analytics)
		sort.SliceStable(top, func(i, j int) bool {
			return len(top[i].Orders) > len(top[j].Orders)
		})
		topUsers := make([]gin.H, 0, 5)
		for _, data := range head(top, 5) {
			topUsers = append(topUsers, gin.H{
				"name":       data.User["name"],
				"orderCount": len(data.Orders),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"analyticsData": analytics,
			"summary": gin.H{
				"totalUsers":         len(users),
				"totalOrders":        len(orders),
				"totalWishlistItems": totalWishlistItems,
				"ordersByStatus":     ordersByStatus,
				"topUsersByOrders":   topUsers,
				"ordersOverTime":     ordersOverTime,
			},
		})
	}
}

// ordersByMonth groups order counts per calendar month in the database.
func ordersByMonth(c *gin.Context, db *mongo.Database) ([]gin.H, error) {
	ctx := c.Request.Context()
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: 1},
			{Key: "_id.month", Value: 1},
		}}},
	}
	cur, err := db.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		Count int `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"label": fmt.Sprintf("%d/%d", row.ID.Month, row.ID.Year),
			"count": row.Count,
		})
	}
	return out, nil
}
