// Command orders-export streams the orders collection to a gzip-compressed
// NDJSON file for offline reconciliation of MFS payments.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/dokanbd/order-intake/internal/domain/order"
	storefs "github.com/dokanbd/order-intake/internal/storage/firestore"
)

func main() {
	var (
		out        string
		collection string
	)

	flag.StringVar(&out, "out", "orders.ndjson.gz", "output file path")
	flag.StringVar(&collection, "collection", storefs.DefaultCollection, "Firestore collection to export")
	flag.Parse()

	credentials := os.Getenv("FIREBASE_ADMIN_CONFIG")
	if credentials == "" {
		slog.Error("store credential is required: set FIREBASE_ADMIN_CONFIG")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, []byte(credentials), collection, out); err != nil {
		slog.Error("Export failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, credentials []byte, collection, out string) error {
	client, err := storefs.NewClient(ctx, credentials)
	if err != nil {
		return errors.Wrap(err, "create store client")
	}
	defer func() { _ = client.Close() }()

	repo := storefs.NewOrderRepository(client, collection)

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}
	defer func() { _ = f.Close() }()

	zw := pgzip.NewWriter(f)

	// One goroutine streams documents out of Firestore, the other encodes
	// and compresses, so network and CPU work overlap.
	orders := make(chan *order.Order, 256)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(orders)
		return repo.Each(gctx, func(o *order.Order) error {
			select {
			case orders <- o:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	g.Go(func() error {
		count := 0
		for o := range orders {
			e := &jx.Encoder{}
			encodeOrder(e, o)
			if _, err := zw.Write(append(e.Bytes(), '\n')); err != nil {
				return errors.Wrap(err, "write order")
			}
			count++
		}
		slog.Info("Export complete", "orders", count, "file", out)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "flush gzip stream")
	}
	return errors.Wrap(f.Close(), "close output file")
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("customerName", func(e *jx.Encoder) { e.Str(o.CustomerName) })
		e.Field("customerPhone", func(e *jx.Encoder) { e.Str(o.CustomerPhone) })
		e.Field("deliveryAddress", func(e *jx.Encoder) { e.Str(o.DeliveryAddress) })
		e.Field("productDetails", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("id", func(e *jx.Encoder) { e.Str(o.Product.ID) })
				if o.Product.Name != "" {
					e.Field("name", func(e *jx.Encoder) { e.Str(o.Product.Name) })
				}
				if o.Product.Price.Valid {
					e.Field("price", func(e *jx.Encoder) { e.Num(jx.Num(o.Product.Price.Decimal.String())) })
				}
			})
		})
		e.Field("paymentMethod", func(e *jx.Encoder) { e.Str(o.PaymentMethod) })
		e.Field("paymentStatus", func(e *jx.Encoder) { e.Str(o.PaymentStatus) })
		e.Field("orderStatus", func(e *jx.Encoder) { e.Str(o.Status) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(o.CreatedAt.Format(time.RFC3339)) })
	})
}
