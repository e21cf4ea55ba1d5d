package services

import (
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"
)

// PaymentGateway is the slice of the payment provider the storefront uses:
// issue an intent, look one up, verify an inbound webhook.
type PaymentGateway interface {
	CreatePaymentIntent(amountCents int64, currency, encodedCart, email string) (*stripe.PaymentIntent, error)
	RetrievePaymentIntent(id string) (*stripe.PaymentIntent, error)
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

type StripeService struct {
	webhookSecret string
}

func NewStripeService(secretKey, webhookSecret string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{webhookSecret: webhookSecret}
}

// CreatePaymentIntent creates an intent carrying the encoded cart and the
// customer email as metadata, so reconciliation can rebuild the order from
// the gateway's copy alone.
func (s *StripeService) CreatePaymentIntent(amountCents int64, currency, encodedCart, email string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		ReceiptEmail: stripe.String(email),
	}
	params.AddMetadata("cart", encodedCart)
	params.AddMetadata("email", email)
	return paymentintent.New(params)
}

func (s *StripeService) RetrievePaymentIntent(id string) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, nil)
}

// VerifyWebhook checks the Stripe-Signature header against the shared secret
// and decodes the event. Verification failure fails closed.
func (s *StripeService) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, s.webhookSecret)
}
