package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Status values assigned to every new order. Payment confirmation for mobile
// financial services (bKash, Nagad, etc.) happens out of band, so every order
// starts in the pending state and is never advanced by this service.
const (
	PaymentStatusPending = "Pending Confirmation (MFS)"
	StatusNew            = "New Order"
)

// Order is the persisted order record. The ID and CreatedAt fields are
// assigned by the document store on insert, never by the caller.
type Order struct {
	ID              string
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	Product         ProductDetails
	PaymentMethod   string
	PaymentStatus   string
	Status          string
	CreatedAt       time.Time
}

// ProductDetails describes the ordered product. Name and Price are optional
// in the submission and pass through unvalidated.
type ProductDetails struct {
	ID    string
	Name  string
	Price decimal.NullDecimal
}

// Repository defines persistence operations for orders.
//
// Create inserts exactly one new document into the store and returns the
// store-assigned document ID. Each streams every stored order to fn in
// creation order until fn returns an error or the collection is exhausted.
type Repository interface {
	Create(ctx context.Context, o *Order) (string, error)
	Each(ctx context.Context, fn func(*Order) error) error
}
