package firestore

import (
	"context"
	"time"

	firestore "cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/dokanbd/order-intake/internal/domain/order"
)

// DefaultCollection is the Firestore collection holding order documents
// unless configured otherwise.
const DefaultCollection = "orders"

var _ order.Repository = (*OrderRepository)(nil)

// orderDoc is the Firestore document shape for an order. CreatedAt carries
// the serverTimestamp tag so the store assigns creation time at write,
// keeping clock authority on the server side.
type orderDoc struct {
	CustomerName    string     `firestore:"customerName"`
	CustomerPhone   string     `firestore:"customerPhone"`
	DeliveryAddress string     `firestore:"deliveryAddress"`
	Product         productDoc `firestore:"productDetails"`
	PaymentMethod   string     `firestore:"paymentMethod"`
	PaymentStatus   string     `firestore:"paymentStatus"`
	OrderStatus     string     `firestore:"orderStatus"`
	CreatedAt       time.Time  `firestore:"createdAt,serverTimestamp"`
}

type productDoc struct {
	ID    string   `firestore:"id"`
	Name  string   `firestore:"name,omitempty"`
	Price *float64 `firestore:"price,omitempty"`
}

// OrderRepository implements order.Repository backed by Firestore.
type OrderRepository struct {
	orders *firestore.CollectionRef
}

// NewOrderRepository returns an OrderRepository writing to the named
// collection. An empty collection name falls back to DefaultCollection.
func NewOrderRepository(client *firestore.Client, collection string) *OrderRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &OrderRepository{orders: client.Collection(collection)}
}

// Create inserts a new order document and returns the store-assigned ID.
// The document ID and creation timestamp both come from Firestore, so two
// identical submissions always produce two distinct documents.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (string, error) {
	ref, _, err := r.orders.Add(ctx, toDoc(o))
	if err != nil {
		return "", errors.Wrap(err, "add order document")
	}
	return ref.ID, nil
}

// Each streams all order documents in creation order to fn.
func (r *OrderRepository) Each(ctx context.Context, fn func(*order.Order) error) error {
	iter := r.orders.OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "iterate orders")
		}

		var doc orderDoc
		if err := snap.DataTo(&doc); err != nil {
			return errors.Wrapf(err, "decode order %q", snap.Ref.ID)
		}
		if err := fn(fromDoc(snap.Ref.ID, &doc)); err != nil {
			return err
		}
	}
}

func toDoc(o *order.Order) orderDoc {
	doc := orderDoc{
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		DeliveryAddress: o.DeliveryAddress,
		Product: productDoc{
			ID:   o.Product.ID,
			Name: o.Product.Name,
		},
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		OrderStatus:   o.Status,
	}
	if o.Product.Price.Valid {
		price := o.Product.Price.Decimal.InexactFloat64()
		doc.Product.Price = &price
	}
	return doc
}

func fromDoc(id string, doc *orderDoc) *order.Order {
	o := &order.Order{
		ID:              id,
		CustomerName:    doc.CustomerName,
		CustomerPhone:   doc.CustomerPhone,
		DeliveryAddress: doc.DeliveryAddress,
		Product: order.ProductDetails{
			ID:   doc.Product.ID,
			Name: doc.Product.Name,
		},
		PaymentMethod: doc.PaymentMethod,
		PaymentStatus: doc.PaymentStatus,
		Status:        doc.OrderStatus,
		CreatedAt:     doc.CreatedAt,
	}
	if doc.Product.Price != nil {
		o.Product.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*doc.Product.Price))
	}
	return o
}
