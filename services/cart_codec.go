package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"storefront/models"
)

// Stripe caps individual metadata values at 500 characters, which bounds the
// cart at roughly 40 distinct lines.
const MaxEncodedCartLen = 500

var (
	ErrMalformedCart = errors.New("malformed cart metadata")
	ErrCartTooLarge  = errors.New("encoded cart exceeds gateway metadata limit")
)

// EncodeCart serializes a cart into the JSON object stored as payment-intent
// metadata: decimal product id keys mapped to quantities. json.Marshal sorts
// map keys, so the encoding is deterministic.
func EncodeCart(cart models.CartSnapshot) (string, error) {
	m := make(map[string]int, len(cart))
	for id, qty := range cart {
		m[strconv.FormatInt(id, 10)] = qty
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	if len(b) > MaxEncodedCartLen {
		return "", ErrCartTooLarge
	}
	return string(b), nil
}

// DecodeCart parses the metadata text back into a cart. It rejects non-JSON
// input, non-numeric product ids and non-positive quantities.
func DecodeCart(raw string) (models.CartSnapshot, error) {
	var m map[string]int
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}

	cart := make(models.CartSnapshot, len(m))
	for key, qty := range m {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: product id %q is not numeric", ErrMalformedCart, key)
		}
		if qty <= 0 {
			return nil, fmt.Errorf("%w: non-positive quantity %d for product %d", ErrMalformedCart, qty, id)
		}
		cart[id] = qty
	}
	return cart, nil
}
