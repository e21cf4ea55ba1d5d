package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	orders []models.Order
}

func (f *fakeOrderRepo) FindByPaymentReference(ctx context.Context, ref string) (*models.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) CreateWithItems(ctx context.Context, order *models.Order) error {
	return nil
}

func (f *fakeOrderRepo) FindByEmail(ctx context.Context, email string, limit int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.Email == email && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindByIDAndEmail(ctx context.Context, id uuid.UUID, email string) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id && f.orders[i].Email == email {
			return &f.orders[i], nil
		}
	}
	return nil, nil
}

func newOrderRouter(repo *fakeOrderRepo, secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	oc := &OrderController{Orders: repo, Logger: zap.NewNop()}
	router := gin.New()
	group := router.Group("/orders")
	group.Use(middleware.AuthMiddleware(secret))
	group.GET("/", oc.GetOrders)
	group.GET("/:id/receipt", oc.GetReceipt)
	return router
}

func sessionCookie(t *testing.T, secret []byte, userID, email string) *http.Cookie {
	t.Helper()
	token, err := services.GenerateJWT(secret, userID, email)
	assert.NoError(t, err)
	return &http.Cookie{Name: "token", Value: token}
}

func TestGetOrdersRequiresSession(t *testing.T) {
	router := newOrderRouter(&fakeOrderRepo{}, []byte("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/orders/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetOrdersReturnsOwnOrdersOnly(t *testing.T) {
	secret := []byte("test-secret")
	mine := models.Order{ID: uuid.New(), Email: "me@example.com", TotalCents: 1300, Status: models.OrderStatusCompleted}
	theirs := models.Order{ID: uuid.New(), Email: "other@example.com", TotalCents: 900, Status: models.OrderStatusCompleted}
	router := newOrderRouter(&fakeOrderRepo{orders: []models.Order{mine, theirs}}, secret)

	req := httptest.NewRequest(http.MethodGet, "/orders/", nil)
	req.AddCookie(sessionCookie(t, secret, uuid.NewString(), "me@example.com"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), mine.ID.String())
	assert.NotContains(t, w.Body.String(), theirs.ID.String())
}

func TestReceiptRendersHTMLForOwnedOrder(t *testing.T) {
	secret := []byte("test-secret")
	order := models.Order{
		ID:         uuid.New(),
		Email:      "me@example.com",
		TotalCents: 1300,
		Status:     models.OrderStatusCompleted,
		CreatedAt:  time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductID: 7, Quantity: 2, PriceCents: 500, Product: models.Product{ID: 7, Name: "Espresso Beans"}},
			{ProductID: 9, Quantity: 1, PriceCents: 300, Product: models.Product{ID: 9, Name: "Cat Mug"}},
		},
	}
	router := newOrderRouter(&fakeOrderRepo{orders: []models.Order{order}}, secret)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID.String()+"/receipt", nil)
	req.AddCookie(sessionCookie(t, secret, uuid.NewString(), "me@example.com"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "Espresso Beans")
	assert.Contains(t, body, "$5.00")
	assert.Contains(t, body, "$10.00")
	assert.Contains(t, body, "$13.00")
	assert.Contains(t, body, "March 14, 2026")
}

func TestReceiptHidesOtherUsersOrders(t *testing.T) {
	secret := []byte("test-secret")
	order := models.Order{ID: uuid.New(), Email: "owner@example.com", TotalCents: 1300}
	router := newOrderRouter(&fakeOrderRepo{orders: []models.Order{order}}, secret)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID.String()+"/receipt", nil)
	req.AddCookie(sessionCookie(t, secret, uuid.NewString(), "snoop@example.com"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
