package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iamcryptofennec/simple-store/internal/application/service"
	"github.com/iamcryptofennec/simple-store/internal/cart"
	"github.com/iamcryptofennec/simple-store/internal/domain"
)

type cartJSON struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total string            `json:"total"`
}

type addItemRequest struct {
	ProductID int  `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

type updateItemRequest struct {
	Delta         int  `json:"delta"`
	ConfirmRemove bool `json:"confirm_remove"`
}

func (s *Server) cartView() cartJSON {
	return cartJSON{
		Items: s.cart.Items(),
		Count: s.cart.Count(),
		Total: s.cart.Total().StringFixed(2),
	}
}

func (s *Server) getCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cartView())
}

const (
	defaultWatchWait = 25 * time.Second
	maxWatchWait     = time.Minute
)

// watchCart holds the request until the cart next changes, so another
// browsing context can follow edits made elsewhere. It answers 204 when
// wait passes with no change.
func (s *Server) watchCart(w http.ResponseWriter, r *http.Request) {
	wait := defaultWatchWait
	if v := r.URL.Query().Get("wait"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 || d > maxWatchWait {
			writeError(w, http.StatusBadRequest, "wait must be a positive duration up to 1m")
			return
		}
		wait = d
	}

	updates, unsubscribe := s.cart.Subscribe()
	defer unsubscribe()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-updates:
		writeJSON(w, http.StatusOK, s.cartView())
	case <-timer.C:
		w.WriteHeader(http.StatusNoContent)
	case <-r.Context().Done():
	}
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.ProductID <= 0 {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	product, _, err := s.products.GetProductWithStats(r.Context(), req.ProductID)
	if err != nil {
		status, msg := lookupStatus(err)
		writeError(w, status, msg)
		return
	}

	s.cart.AddQuantity(r.Context(), *product, quantity)
	s.logger.Info("Added to cart",
		zap.Int("id", product.ID),
		zap.Int("quantity", quantity),
	)
	writeJSON(w, http.StatusOK, s.cartView())
}

// updateItem never lets a line reach zero on its own. When the change would
// do so the caller must confirm, and the line is removed instead.
func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	switch s.cart.ChangeQuantity(r.Context(), id, req.Delta, req.ConfirmRemove) {
	case cart.ChangeMissing:
		writeError(w, http.StatusNotFound, "item not in cart")
	case cart.ChangeNeedsConfirm:
		writeError(w, http.StatusConflict, "quantity would drop to zero; set confirm_remove to remove the item")
	default:
		writeJSON(w, http.StatusOK, s.cartView())
	}
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	s.cart.RemoveItem(r.Context(), id)
	writeJSON(w, http.StatusOK, s.cartView())
}

func (s *Server) checkout(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusForbidden, "checkout is not available yet")
}
