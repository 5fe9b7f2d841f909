package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/notify"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	if err := handlers.EnsureBootstrapAdmin(db, config.AppEnv.AdminEmail, config.AppEnv.AdminPassword); err != nil {
		log.Printf("bootstrap admin warning: %v", err)
	}

	var cartStore cart.Store
	if config.AppEnv.RedisURL != "" {
		redisStore, err := cart.NewRedisStore(config.AppEnv.RedisURL, config.AppEnv.CartTTL)
		if err != nil {
			log.Fatal("redis connect failed: ", err)
		}
		cartStore = redisStore
		log.Println("cart sessions stored in Redis")
	} else {
		cartStore = cart.NewMemoryStore()
		log.Println("REDIS_URL not set, cart sessions stored in memory")
	}

	notifier := notify.NewClient(
		config.AppEnv.NotifyURL,
		config.AppEnv.NotifyServiceID,
		config.AppEnv.NotifyUserID,
	)

	r := gin.Default()
	r.Static("/public", config.AppEnv.PublicDir)

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/categories", handlers.GetCategories(db))

	r.GET("/cart", handlers.GetCart(cartStore, config.AppEnv.CartTTL))
	r.POST("/cart/items", handlers.AddCartItem(db, cartStore, config.AppEnv.CartTTL))
	r.PUT("/cart/items/:id", handlers.SetCartItemQuantity(cartStore, config.AppEnv.CartTTL))
	r.DELETE("/cart/items/:id", handlers.RemoveCartItem(cartStore, config.AppEnv.CartTTL))

	r.POST("/checkout", handlers.Checkout(
		db,
		cartStore,
		notifier,
		config.AppEnv.NotifyTemplateID,
		config.AppEnv.CartTTL,
	))

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.POST("/products/reorder", handlers.ReorderProducts(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.GET("/orders", handlers.GetOrders(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
