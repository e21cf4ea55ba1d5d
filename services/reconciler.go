package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrProductsNotFound means the cart references products the catalog no
	// longer has. Not retryable.
	ErrProductsNotFound = errors.New("cart products not found in catalog")

	// ErrReconciliationFailed is a transient store or gateway failure. Safe
	// to retry: reconciliation never partially commits.
	ErrReconciliationFailed = errors.New("order reconciliation failed")
)

// PaymentConfirmation carries the gateway-reported facts about a succeeded
// payment. AmountCents is in the currency's minor units, exactly as charged.
type PaymentConfirmation struct {
	PaymentReference string
	AmountCents      int64
	Currency         string
	Metadata         map[string]string
	ReceiptEmail     string
}

// ReconcilerAPI is what entry points (webhook, success page) depend on.
type ReconcilerAPI interface {
	Reconcile(ctx context.Context, pc PaymentConfirmation) (*models.Order, error)
}

type Reconciler struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	logger   *zap.Logger
}

func NewReconciler(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		orders:   orders,
		products: products,
		users:    users,
		logger:   logger,
	}
}

// Reconcile converts a confirmed payment into exactly one durable order.
//
// It is safe to call any number of times, concurrently, from independent
// processes, for the same payment reference: the order store's unique
// constraint on the reference is the only synchronization point, and every
// caller converges on the same order. The webhook delivery and the client's
// success-page load both funnel through here.
func (r *Reconciler) Reconcile(ctx context.Context, pc PaymentConfirmation) (*models.Order, error) {
	// Idempotency fast path.
	existing, err := r.orders.FindByPaymentReference(ctx, pc.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup: %v", ErrReconciliationFailed, err)
	}
	if existing != nil {
		r.logger.Info("Order already reconciled",
			zap.String("payment_reference", pc.PaymentReference),
			zap.String("order_id", existing.ID.String()),
		)
		return existing, nil
	}

	cart, err := DecodeCart(pc.Metadata["cart"])
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: empty cart", ErrMalformedCart)
	}

	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	products, err := r.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: product lookup: %v", ErrReconciliationFailed, err)
	}
	// Every cart line must resolve; a partial order is never substituted for
	// what the customer paid for.
	if len(products) != len(cart) {
		return nil, fmt.Errorf("%w: %d of %d cart products missing", ErrProductsNotFound, len(cart)-len(products), len(cart))
	}

	email := pc.Metadata["email"]
	if email == "" {
		email = pc.ReceiptEmail
	}

	// Guest checkout: no matching user leaves the order keyed by email only.
	var userID *uuid.UUID
	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: user lookup: %v", ErrReconciliationFailed, err)
	}
	if user != nil {
		userID = &user.ID
	}

	order := &models.Order{
		PaymentReference: pc.PaymentReference,
		Email:            email,
		UserID:           userID,
		// The gateway amount is authoritative: it is what was actually
		// charged, not a recomputation from the live catalog.
		TotalCents: pc.AmountCents,
		Status:     models.OrderStatusCompleted,
		Items:      make([]models.OrderItem, 0, len(products)),
	}
	for _, p := range products {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:  p.ID,
			Quantity:   cart[p.ID],
			PriceCents: p.PriceCents, // price at time of sale
		})
	}

	err = r.orders.CreateWithItems(ctx, order)
	if err == nil {
		r.logger.Info("Order created",
			zap.String("payment_reference", pc.PaymentReference),
			zap.String("order_id", order.ID.String()),
			zap.Int64("total_cents", order.TotalCents),
		)
		// Re-read so every caller sees the same fully-loaded row.
		if stored, rerr := r.orders.FindByPaymentReference(ctx, pc.PaymentReference); rerr == nil && stored != nil {
			return stored, nil
		}
		return order, nil
	}

	if !errors.Is(err, repository.ErrDuplicatePaymentReference) {
		return nil, fmt.Errorf("%w: create: %v", ErrReconciliationFailed, err)
	}

	// A concurrent caller won the insert race between the lookup and the
	// create. That is the expected outcome of healthy concurrency, not an
	// error: return the winner's order.
	winner, err := r.orders.FindByPaymentReference(ctx, pc.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("%w: re-read after duplicate: %v", ErrReconciliationFailed, err)
	}
	if winner == nil {
		return nil, fmt.Errorf("%w: duplicate reported but no order found for %s", ErrReconciliationFailed, pc.PaymentReference)
	}
	r.logger.Info("Lost order creation race, returning existing order",
		zap.String("payment_reference", pc.PaymentReference),
		zap.String("order_id", winner.ID.String()),
	)
	return winner, nil
}
