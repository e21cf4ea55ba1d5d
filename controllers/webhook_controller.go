package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// WebhookController is the asynchronous reconcile trigger: the gateway
// delivers payment events here, racing the client's success-page load.
type WebhookController struct {
	Gateway    services.PaymentGateway
	Reconciler services.ReconcilerAPI
	Logger     *zap.Logger
}

// StripeWebhook verifies and dispatches gateway webhook events. A non-2xx
// response makes the gateway redeliver per its own retry policy, so only
// retryable failures return one.
func (wc *WebhookController) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	event, err := wc.Gateway.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		wc.Logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	if event.Type != "payment_intent.succeeded" {
		wc.Logger.Info("Ignoring webhook event", zap.String("event_type", string(event.Type)))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		wc.Logger.Error("Failed to unmarshal payment intent", zap.String("event_id", event.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
		return
	}

	order, err := wc.Reconciler.Reconcile(c.Request.Context(), services.PaymentConfirmation{
		PaymentReference: pi.ID,
		AmountCents:      pi.Amount,
		Currency:         string(pi.Currency),
		Metadata:         pi.Metadata,
		ReceiptEmail:     pi.ReceiptEmail,
	})
	if err != nil {
		if errors.Is(err, services.ErrMalformedCart) || errors.Is(err, services.ErrProductsNotFound) {
			// Retrying will not fix bad metadata or a stale catalog.
			wc.Logger.Error("Webhook reconciliation rejected",
				zap.String("payment_intent_id", pi.ID),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		wc.Logger.Error("Webhook reconciliation failed",
			zap.String("payment_intent_id", pi.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "order_id": order.ID})
}
