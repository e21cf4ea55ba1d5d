package models

// CartSnapshot maps a product id to the quantity purchased, captured at
// payment-intent creation time and round-tripped through gateway metadata.
type CartSnapshot map[int64]int
