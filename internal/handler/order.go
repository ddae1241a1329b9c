package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dokanbd/order-intake/internal/domain/order"
)

// maxBodySize caps the accepted request body. Order submissions are tiny;
// anything near this limit is not a storefront request.
const maxBodySize = 1 << 20

// Response messages, part of the frontend contract.
const (
	msgMethodNotAllowed = "Method Not Allowed. Use POST."
	msgInvalidJSON      = "Invalid JSON format in request body."
	msgMissingFields    = "Missing required order fields."
	msgOrderPlaced      = "Order placed successfully and saved to Firestore."
	msgSaveFailed       = "Failed to save order to database."
)

// PlaceOrder handles an order submission: POST only, JSON body, required
// fields checked for presence, one document inserted per valid request.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	req, err := decodeOrderRequest(body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	id, err := h.orders.PlaceOrder(r.Context(), req)
	switch {
	case errors.Is(err, order.ErrMissingFields):
		writeMessage(w, http.StatusBadRequest, msgMissingFields)
	case err != nil:
		zctx.From(r.Context()).Error("Order persistence failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("message", func(e *jx.Encoder) { e.Str(msgSaveFailed) })
				e.Field("error", func(e *jx.Encoder) { e.Str(err.Error()) })
			})
		})
	default:
		writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("message", func(e *jx.Encoder) { e.Str(msgOrderPlaced) })
				e.Field("orderId", func(e *jx.Encoder) { e.Str(id) })
			})
		})
	}
}

// decodeOrderRequest parses the submission. Unknown keys are skipped and
// explicit nulls are treated like absent fields, matching how loosely the
// storefront builds the payload.
func decodeOrderRequest(body []byte) (order.PlaceOrderRequest, error) {
	var req order.PlaceOrderRequest

	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "name":
			return decodeStr(d, &req.Name)
		case "phone":
			return decodeStr(d, &req.Phone)
		case "address":
			return decodeStr(d, &req.Address)
		case "product_id":
			return decodeStr(d, &req.ProductID)
		case "product_name":
			return decodeStr(d, &req.ProductName)
		case "payment_method":
			return decodeStr(d, &req.PaymentMethod)
		case "total_price":
			if d.Next() == jx.Null {
				return d.Null()
			}
			n, err := d.Num()
			if err != nil {
				return err
			}
			dec, err := decimal.NewFromString(string(n))
			if err != nil {
				return err
			}
			req.TotalPrice = decimal.NewNullDecimal(dec)
			return nil
		default:
			return d.Skip()
		}
	})
	return req, err
}

func decodeStr(d *jx.Decoder, dst *string) error {
	if d.Next() == jx.Null {
		return d.Null()
	}
	s, err := d.Str()
	if err != nil {
		return err
	}
	*dst = s
	return nil
}
