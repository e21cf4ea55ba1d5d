package controllers

import (
	"net/http"

	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// SuccessController is the synchronous reconcile trigger: the returning
// client lands here before the webhook may have been delivered. Client input
// is only the payment reference; success is confirmed against the gateway.
type SuccessController struct {
	Gateway     services.PaymentGateway
	Reconciler  services.ReconcilerAPI
	FrontendURL string
	Logger      *zap.Logger
}

// Success confirms the payment with the gateway and returns the reconciled
// order. Any failure redirects to the storefront rather than exposing raw
// errors to the customer.
func (sc *SuccessController) Success(c *gin.Context) {
	ref := c.Query("payment_intent")
	if ref == "" {
		c.Redirect(http.StatusSeeOther, sc.FrontendURL)
		return
	}

	pi, err := sc.Gateway.RetrievePaymentIntent(ref)
	if err != nil {
		sc.Logger.Error("Failed to retrieve payment intent", zap.String("payment_intent_id", ref), zap.Error(err))
		c.Redirect(http.StatusSeeOther, sc.FrontendURL)
		return
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		sc.Logger.Warn("Success page hit for non-succeeded payment",
			zap.String("payment_intent_id", ref),
			zap.String("status", string(pi.Status)),
		)
		c.Redirect(http.StatusSeeOther, sc.FrontendURL)
		return
	}

	order, err := sc.Reconciler.Reconcile(c.Request.Context(), services.PaymentConfirmation{
		PaymentReference: pi.ID,
		AmountCents:      pi.Amount,
		Currency:         string(pi.Currency),
		Metadata:         pi.Metadata,
		ReceiptEmail:     pi.ReceiptEmail,
	})
	if err != nil {
		sc.Logger.Error("Success page reconciliation failed",
			zap.String("payment_intent_id", ref),
			zap.Error(err),
		)
		c.Redirect(http.StatusSeeOther, sc.FrontendURL)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"order":  orderView(order),
	})
}

func orderView(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gin.H{
			"name":     item.Product.Name,
			"quantity": item.Quantity,
			"price":    float64(item.PriceCents) / 100,
		})
	}
	return gin.H{
		"id":           order.ID,
		"email":        order.Email,
		"total_amount": float64(order.TotalCents) / 100,
		"status":       order.Status,
		"created_at":   order.CreatedAt,
		"items":        items,
	}
}
