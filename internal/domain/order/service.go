package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrMissingFields indicates the submission lacks one of the required fields.
var ErrMissingFields = errors.New("missing required order fields")

// PlaceOrderRequest holds the untrusted order submission after JSON decoding.
// Name, Phone, Address, ProductID, and PaymentMethod are required;
// ProductName and TotalPrice may be absent.
type PlaceOrderRequest struct {
	Name          string
	Phone         string
	Address       string
	ProductID     string
	ProductName   string
	TotalPrice    decimal.NullDecimal
	PaymentMethod string
}

// Service encapsulates order intake: validate the submission, build the
// normalized record, and persist it.
type Service struct {
	orders Repository
}

// NewService creates an order Service backed by the given repository.
func NewService(orders Repository) *Service {
	return &Service{orders: orders}
}

// PlaceOrder validates required fields, builds the order record with the
// fixed initial statuses, and inserts it into the store. It returns the
// store-assigned document ID. Fields are checked for presence only; their
// shape is deliberately not validated.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (string, error) {
	if req.Name == "" || req.Phone == "" || req.Address == "" ||
		req.ProductID == "" || req.PaymentMethod == "" {
		return "", ErrMissingFields
	}

	o := &Order{
		CustomerName:    req.Name,
		CustomerPhone:   req.Phone,
		DeliveryAddress: req.Address,
		Product: ProductDetails{
			ID:    req.ProductID,
			Name:  req.ProductName,
			Price: req.TotalPrice,
		},
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: PaymentStatusPending,
		Status:        StatusNew,
	}

	id, err := s.orders.Create(ctx, o)
	if err != nil {
		return "", errors.Wrap(err, "create order")
	}
	return id, nil
}
