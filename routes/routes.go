package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"fancystore-backend/config"
	adminControllers "fancystore-backend/controllers/admin"
	authControllers "fancystore-backend/controllers/auth"
	cartControllers "fancystore-backend/controllers/cart"
	categoryControllers "fancystore-backend/controllers/category"
	imageControllers "fancystore-backend/controllers/image"
	orderControllers "fancystore-backend/controllers/order"
	paymentControllers "fancystore-backend/controllers/payment"
	productControllers "fancystore-backend/controllers/product"
	userControllers "fancystore-backend/controllers/user"
	wishlistControllers "fancystore-backend/controllers/wishlist"
	"fancystore-backend/middleware"
	"fancystore-backend/storage"
)

// SetupRoutes wires every endpoint. Admin routes and all catalog mutations
// sit behind the role check, not just some of them.
func SetupRoutes(r *gin.Engine, db *mongo.Database, store *storage.ImageStore, cfg *config.Config) {
	secret := []byte(cfg.JWT.Secret)
	authRequired := middleware.RequireAuth(secret)
	adminOnly := middleware.RequireAdmin()

	api := r.Group("/api")

	// Public
	api.POST("/auth/signup", authControllers.Signup(db))
	api.POST("/auth/login", authControllers.Login(db, cfg.JWT))
	api.POST("/auth/google-login", authControllers.GoogleLogin(db, cfg.JWT, cfg.Google))

	api.GET("/products", productControllers.List(db))
	api.GET("/products/:id", productControllers.Get(db))
	api.GET("/products/:id/reviews", productControllers.ListReviews(db))
	api.GET("/categories", categoryControllers.List(db))
	api.GET("/categories/:id", categoryControllers.Get(db))
	api.GET("/images/:id", imageControllers.Serve(store))

	// Authenticated
	user := api.Group("", authRequired)
	{
		user.GET("/users/me", userControllers.Me(db))
		user.POST("/users/me/profile-picture", userControllers.UploadProfilePicture(db, store))
		user.DELETE("/users/me", userControllers.DeleteAccount(db))
		user.PUT("/user/settings", userControllers.UpdateSettings(db))
		user.PUT("/user/change-password", userControllers.ChangePassword(db))

		user.POST("/products/:id/reviews", productControllers.CreateReview(db))

		user.GET("/cart", cartControllers.Get(db))
		user.POST("/cart", cartControllers.AddItem(db))
		user.PUT("/cart/:itemId", cartControllers.UpdateItem(db))
		user.DELETE("/cart/:itemId", cartControllers.RemoveItem(db))
		user.DELETE("/cart", cartControllers.Clear(db))

		user.GET("/wishlist", wishlistControllers.Get(db))
		user.POST("/wishlist/add", wishlistControllers.Add(db))
		user.DELETE("/wishlist/remove/:productId", wishlistControllers.Remove(db))

		user.POST("/orders", orderControllers.Place(db))
		user.GET("/orders", orderControllers.List(db))
		user.GET("/orders/:orderId", orderControllers.Get(db))
		user.POST("/orders/create", paymentControllers.CreateGatewayOrder(cfg.Razorpay))
		user.POST("/orders/verify", paymentControllers.Verify(cfg.Razorpay))
		user.POST("/orders/complete", paymentControllers.Complete(db, cfg.Razorpay))
	}

	// Catalog mutations are admin-only.
	catalog := api.Group("", authRequired, adminOnly)
	{
		catalog.POST("/products", productControllers.Create(db, store))
		catalog.PUT("/products/:id", productControllers.Update(db, store))
		catalog.DELETE("/products/:id", productControllers.Delete(db, store))

		catalog.POST("/categories", categoryControllers.Create(db, store))
		catalog.PUT("/categories/:id", categoryControllers.Update(db, store))
		catalog.DELETE("/categories/:id", categoryControllers.Delete(db, store))
	}

	admin := api.Group("/admin", authRequired, adminOnly)
	{
		admin.GET("/users", adminControllers.Users(db))
		admin.GET("/users/all", adminControllers.UsersAll(db))
		admin.GET("/orders", adminControllers.Orders(db))
		admin.GET("/products", adminControllers.Products(db))
		admin.GET("/data", adminControllers.Data(db))
		admin.GET("/overview", adminControllers.Overview(db))
		admin.GET("/users-orders", adminControllers.UsersOrders(db))
		admin.GET("/orders-stats", adminControllers.OrdersStats(db))
		admin.GET("/products-stats", adminControllers.ProductsStats(db))
		admin.PUT("/orders/:orderId/status", orderControllers.UpdateStatus(db))
		admin.GET("/orders/:orderId/invoice", adminControllers.Invoice(db))
	}
}
