package services

import (
	"context"
	"fmt"

	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
)

// PaymentIntentResult is the client-facing authorization handle.
type PaymentIntentResult struct {
	ClientSecret string
	AmountCents  int64
}

// CheckoutService issues payment intents for a cart. The cart and email are
// embedded as gateway metadata so the reconciler can rebuild the order later
// without any local checkout state.
type CheckoutService struct {
	gateway  PaymentGateway
	products repository.ProductRepository
	currency string
	logger   *zap.Logger
}

func NewCheckoutService(gateway PaymentGateway, products repository.ProductRepository, currency string, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		gateway:  gateway,
		products: products,
		currency: currency,
		logger:   logger,
	}
}

// CreatePaymentIntent prices the cart from the catalog and requests a payment
// intent for the total in minor units.
func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, cart models.CartSnapshot, email string) (*PaymentIntentResult, error) {
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: empty cart", ErrMalformedCart)
	}

	encoded, err := EncodeCart(cart)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}
	if len(products) != len(cart) {
		return nil, fmt.Errorf("%w: %d of %d cart products missing", ErrProductsNotFound, len(cart)-len(products), len(cart))
	}

	var totalCents int64
	for _, p := range products {
		totalCents += p.PriceCents * int64(cart[p.ID])
	}

	pi, err := s.gateway.CreatePaymentIntent(totalCents, s.currency, encoded, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.logger.Info("Payment intent created",
		zap.String("payment_intent_id", pi.ID),
		zap.Int64("amount_cents", totalCents),
		zap.Int("cart_lines", len(cart)),
	)

	return &PaymentIntentResult{
		ClientSecret: pi.ClientSecret,
		AmountCents:  totalCents,
	}, nil
}
