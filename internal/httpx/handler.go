// Package httpx is the storefront's HTTP surface: cart management, checkout,
// payment, feedback, and catalog read-through for the browser client.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/feastly/storefront/internal/cart"
	"github.com/feastly/storefront/internal/checkout"
	"github.com/feastly/storefront/internal/httpx/middlewares"
	"github.com/feastly/storefront/internal/ordering"
)

// Handler serves the storefront endpoints. Cart state lives in the cart
// store; everything order-shaped is delegated to the checkout coordinator.
type Handler struct {
	carts    *cart.Store
	catalog  ordering.Catalog
	checkout *checkout.Coordinator
}

func NewHandler(carts *cart.Store, catalog ordering.Catalog, co *checkout.Coordinator) *Handler {
	return &Handler{
		carts:    carts,
		catalog:  catalog,
		checkout: co,
	}
}

// --- Catalog read-through ---

func (h *Handler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.catalog.Restaurants(r.Context())
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	menu, err := h.catalog.Menu(r.Context(), restaurantID)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) GetRestaurantFeedback(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	feedback, err := h.catalog.RestaurantFeedback(r.Context(), restaurantID)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

func (h *Handler) GetRestaurantRating(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rating, err := h.catalog.RestaurantRating(r.Context(), restaurantID)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

// --- Cart ---

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionID(r.Context())
	c, err := h.carts.Load(r.Context(), sess)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartToResponse(c))
}

// AddCartItem resolves the menu item against the live catalog before putting
// it in the cart, so stale or fabricated client data never becomes a line.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.RestaurantID == 0 || req.MenuItemID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "restaurant_id and menu_item_id are required")
		return
	}

	menu, err := h.catalog.Menu(r.Context(), req.RestaurantID)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	var item *ordering.MenuItem
	for i := range menu {
		if menu[i].ID == req.MenuItemID {
			item = &menu[i]
			break
		}
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "menu_item_not_found", "")
		return
	}
	if !item.Available {
		writeError(w, http.StatusConflict, "menu_item_unavailable", item.Name+" is currently unavailable")
		return
	}

	sess := middlewares.SessionID(r.Context())
	c, err := h.carts.Add(r.Context(), sess, *item, req.Quantity)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartToResponse(c))
}

func (h *Handler) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	sess := middlewares.SessionID(r.Context())
	c, err := h.carts.SetQuantity(r.Context(), sess, itemID, req.Quantity)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartToResponse(c))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	sess := middlewares.SessionID(r.Context())
	c, err := h.carts.Remove(r.Context(), sess, itemID)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartToResponse(c))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionID(r.Context())
	if err := h.carts.Clear(r.Context(), sess); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Checkout / orders ---

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	sess := middlewares.SessionID(r.Context())
	order, err := h.checkout.SubmitOrder(r.Context(), sess, req.DeliveryAddress)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sess := middlewares.SessionID(r.Context())
	order, err := h.checkout.Order(r.Context(), sess, orderID)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sess := middlewares.SessionID(r.Context())
	order, err := h.checkout.Cancel(r.Context(), sess, orderID)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func (h *Handler) PayOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	sess := middlewares.SessionID(r.Context())
	result, err := h.checkout.Pay(r.Context(), sess, orderID, req.PaymentMethod)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	msg := "Payment successful!"
	if result.Status == ordering.PaymentPending {
		msg = "Payment is pending confirmation."
	}
	writeJSON(w, http.StatusOK, payResultResponse{
		PaymentStatus: string(result.Status),
		Amount:        result.Amount,
		Message:       msg,
	})
}

// --- Feedback ---

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	sess := middlewares.SessionID(r.Context())
	if err := h.checkout.SubmitFeedback(r.Context(), sess, req.RestaurantID, req.Rating, req.Comment); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- plumbing ---

// writeFailure is the single place errors become HTTP responses, following
// the taxonomy: validation -> 400, auth -> 401, declined payment -> 402,
// platform trouble -> 502 with the server's message when it sent one.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var ve *checkout.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, "validation_error", ve.Reason)
		return
	}
	if errors.Is(err, cart.ErrMissingRestaurant) {
		writeError(w, http.StatusBadRequest, "validation_error", "menu item has no restaurant id")
		return
	}
	if errors.Is(err, ordering.ErrAuthRequired) {
		writeError(w, http.StatusUnauthorized, "auth_required", "Please log in to continue.")
		return
	}
	if errors.Is(err, checkout.ErrPaymentFailed) {
		writeError(w, http.StatusPaymentRequired, "payment_failed", "Payment failed. Please try a different method.")
		return
	}
	var te *ordering.TransportError
	if errors.As(err, &te) {
		slog.ErrorContext(r.Context(), "platform call failed",
			"status", te.StatusCode, "error", te)
		writeError(w, http.StatusBadGateway, "platform_error", te.UserMessage())
		return
	}

	slog.ErrorContext(r.Context(), "unhandled error", "error", err)
	writeError(w, http.StatusInternalServerError, "internal_error", "")
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
