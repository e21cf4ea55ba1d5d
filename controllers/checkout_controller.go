package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
	Logger   *zap.Logger
}

type createPaymentIntentRequest struct {
	Cart  map[string]int `json:"cart" binding:"required"`
	Email string         `json:"email" binding:"required,email"`
}

// CreatePaymentIntent prices the submitted cart and returns the gateway
// client secret the frontend needs to collect payment.
func (cc *CheckoutController) CreatePaymentIntent(c *gin.Context) {
	var req createPaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cart := make(models.CartSnapshot, len(req.Cart))
	for key, qty := range req.Cart {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || qty <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart"})
			return
		}
		cart[id] = qty
	}

	result, err := cc.Checkout.CreatePaymentIntent(c.Request.Context(), cart, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrMalformedCart) ||
			errors.Is(err, services.ErrCartTooLarge) ||
			errors.Is(err, services.ErrProductsNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cc.Logger.Error("Failed to create payment intent", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": result.ClientSecret,
		"amount":       float64(result.AmountCents) / 100,
	})
}
