package routes

import (
	"storefront/controllers"
	"storefront/middleware"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Products *controllers.ProductController
	Auth     *controllers.AuthController
	Checkout *controllers.CheckoutController
	Webhook  *controllers.WebhookController
	Success  *controllers.SuccessController
	Orders   *controllers.OrderController
}

func RegisterRoutes(r *gin.Engine, jwtSecret []byte, c Controllers) {
	r.GET("/products", c.Products.GetProducts)

	auth := r.Group("/auth")
	auth.POST("/register", c.Auth.Register)
	auth.POST("/login", c.Auth.Login)

	r.POST("/api/create-payment-intent", c.Checkout.CreatePaymentIntent)

	// Stripe webhook (no auth; signature-verified)
	r.POST("/stripe/webhook", c.Webhook.StripeWebhook)

	// Client success-page fallback
	r.GET("/success", c.Success.Success)

	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware(jwtSecret))
	orders.GET("/", c.Orders.GetOrders)
	orders.GET("/:id/receipt", c.Orders.GetReceipt)
}
