package controllers

import (
	"fmt"
	"net/http"

	"storefront/middleware"
	"storefront/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recentOrdersLimit = 5

type OrderController struct {
	Orders repository.OrderRepository
	Logger *zap.Logger
}

// GetOrders returns the caller's most recent orders with items preloaded.
func (oc *OrderController) GetOrders(c *gin.Context) {
	email := middleware.GetUserEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := oc.Orders.FindByEmail(c.Request.Context(), email, recentOrdersLimit)
	if err != nil {
		oc.Logger.Error("Failed to fetch orders", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetReceipt renders a printable HTML receipt for an order the caller owns.
func (oc *OrderController) GetReceipt(c *gin.Context) {
	email := middleware.GetUserEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := oc.Orders.FindByIDAndEmail(c.Request.Context(), orderID, email)
	if err != nil {
		oc.Logger.Error("Failed to fetch order for receipt", zap.String("order_id", orderID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "receipt-"+order.ID.String()+".html"))
	if err := receiptTmpl.Execute(c.Writer, newReceiptData(order)); err != nil {
		oc.Logger.Error("Failed to render receipt", zap.String("order_id", orderID.String()), zap.Error(err))
	}
}
