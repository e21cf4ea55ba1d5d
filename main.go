package main

import (
	"log"

	"storefront/config"
	"storefront/controllers"
	"storefront/database"
	"storefront/models"
	"storefront/repository"
	"storefront/routes"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[Storefront] No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[Storefront] ❌ Failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("[Storefront] ❌ Failed to initialize logger:", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("[Storefront] ❌ Failed to connect to DB:", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		log.Fatal("[Storefront] ❌ Failed to migrate models:", err)
	}

	rdb, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("[Storefront] ❌ Failed to connect to Redis:", err)
	}

	orderRepo := repository.NewGormOrderRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey)
	reconciler := services.NewReconciler(orderRepo, productRepo, userRepo, logger)
	checkout := services.NewCheckoutService(stripeSvc, productRepo, cfg.Currency, logger)

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, []byte(cfg.JWTSecret), routes.Controllers{
		Products: &controllers.ProductController{Products: productRepo, Cache: rdb, Logger: logger},
		Auth:     &controllers.AuthController{Users: userRepo, JWTSecret: []byte(cfg.JWTSecret), Logger: logger},
		Checkout: &controllers.CheckoutController{Checkout: checkout, Logger: logger},
		Webhook:  &controllers.WebhookController{Gateway: stripeSvc, Reconciler: reconciler, Logger: logger},
		Success:  &controllers.SuccessController{Gateway: stripeSvc, Reconciler: reconciler, FrontendURL: cfg.FrontendURL, Logger: logger},
		Orders:   &controllers.OrderController{Orders: orderRepo, Logger: logger},
	})

	log.Println("[Storefront] ✅ Running on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[Storefront] ❌ Server failed:", err)
	}
}
