package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

const frontendURL = "http://localhost:3000"

func getSuccess(sc *SuccessController, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/success", sc.Success)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func succeededIntent() *stripe.PaymentIntent {
	return &stripe.PaymentIntent{
		ID:     "pi_test_123",
		Amount: 1300,
		Status: stripe.PaymentIntentStatusSucceeded,
		Metadata: map[string]string{
			"cart":  `{"7":2,"9":1}`,
			"email": "buyer@example.com",
		},
		ReceiptEmail: "buyer@example.com",
	}
}

func TestSuccessRedirectsWithoutPaymentReference(t *testing.T) {
	sc := &SuccessController{
		Gateway:     &fakeGateway{},
		Reconciler:  &fakeReconciler{},
		FrontendURL: frontendURL,
		Logger:      zap.NewNop(),
	}

	w := getSuccess(sc, "/success")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, frontendURL, w.Header().Get("Location"))
}

func TestSuccessNeverTrustsClientSuppliedState(t *testing.T) {
	// The client claims success, but the gateway says the payment is still
	// processing: no reconcile, redirect away.
	rec := &fakeReconciler{}
	sc := &SuccessController{
		Gateway: &fakeGateway{retrieved: &stripe.PaymentIntent{
			ID:     "pi_test_123",
			Status: stripe.PaymentIntentStatusProcessing,
		}},
		Reconciler:  rec,
		FrontendURL: frontendURL,
		Logger:      zap.NewNop(),
	}

	w := getSuccess(sc, "/success?payment_intent=pi_test_123")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Zero(t, rec.calls)
}

func TestSuccessRedirectsWhenGatewayLookupFails(t *testing.T) {
	sc := &SuccessController{
		Gateway:     &fakeGateway{retrieveErr: errors.New("stripe unavailable")},
		Reconciler:  &fakeReconciler{},
		FrontendURL: frontendURL,
		Logger:      zap.NewNop(),
	}

	w := getSuccess(sc, "/success?payment_intent=pi_test_123")

	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestSuccessReturnsReconciledOrder(t *testing.T) {
	orderID := uuid.New()
	rec := &fakeReconciler{order: &models.Order{
		ID:         orderID,
		Email:      "buyer@example.com",
		TotalCents: 1300,
		Status:     models.OrderStatusCompleted,
		Items: []models.OrderItem{
			{ProductID: 7, Quantity: 2, PriceCents: 500, Product: models.Product{ID: 7, Name: "Espresso Beans"}},
			{ProductID: 9, Quantity: 1, PriceCents: 300, Product: models.Product{ID: 9, Name: "Cat Mug"}},
		},
	}}
	sc := &SuccessController{
		Gateway:     &fakeGateway{retrieved: succeededIntent()},
		Reconciler:  rec,
		FrontendURL: frontendURL,
		Logger:      zap.NewNop(),
	}

	w := getSuccess(sc, "/success?payment_intent=pi_test_123")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "pi_test_123", rec.last.PaymentReference)
	assert.Contains(t, w.Body.String(), `"total_amount":13`)
	assert.Contains(t, w.Body.String(), "Espresso Beans")
	assert.Contains(t, w.Body.String(), orderID.String())
}

func TestSuccessRedirectsOnReconcileFailure(t *testing.T) {
	rec := &fakeReconciler{err: services.ErrReconciliationFailed}
	sc := &SuccessController{
		Gateway:     &fakeGateway{retrieved: succeededIntent()},
		Reconciler:  rec,
		FrontendURL: frontendURL,
		Logger:      zap.NewNop(),
	}

	w := getSuccess(sc, "/success?payment_intent=pi_test_123")

	assert.Equal(t, http.StatusSeeOther, w.Code)
}
