// Package handler exposes the order intake HTTP surface.
package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/dokanbd/order-intake/internal/domain/order"
)

// Handler serves the storefront order intake endpoint, delegating business
// logic to the order service.
type Handler struct {
	orders *order.Service
}

// New constructs a Handler around the order service.
func New(orders *order.Service) *Handler {
	return &Handler{orders: orders}
}

// writeJSON writes a JSON response body built by fn. The permissive CORS
// headers go on every outcome, not only success, so browsers running the
// storefront can read error bodies cross-origin too.
func writeJSON(w http.ResponseWriter, status int, fn func(e *jx.Encoder)) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(status)

	e := &jx.Encoder{}
	fn(e)
	_, _ = w.Write(e.Bytes())
}

// writeMessage writes a {"message": ...} body with the given status.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
		})
	})
}
