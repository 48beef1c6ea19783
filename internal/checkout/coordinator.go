// Package checkout drives the order workflow: cart snapshot -> submitted
// order -> paid order -> reviewable order. The coordinator validates locally,
// calls the platform through the ordering ports, and reconciles the cart
// afterwards. Fulfillment progress (preparing, en route, delivered) is
// server-driven; the storefront only ever observes it.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/feastly/storefront/internal/cart"
	"github.com/feastly/storefront/internal/checkout/checklog"
	"github.com/feastly/storefront/internal/ordering"
	"github.com/feastly/storefront/internal/session"
)

// Coordinator sequences cart submission, payment, and feedback against the
// platform API.
type Coordinator struct {
	carts    *cart.Store
	sessions *session.Manager
	orders   ordering.OrderService
	feedback ordering.FeedbackService

	// log may be nil: funnel auditing is skipped, the workflow is unaffected.
	log checklog.Repository

	// requireAddress controls whether SubmitOrder rejects a blank delivery
	// address. Deployments where the address lives on the customer profile
	// run with this off.
	requireAddress bool
}

type Option func(*Coordinator)

// WithCheckoutLog enables durable funnel auditing.
func WithCheckoutLog(repo checklog.Repository) Option {
	return func(c *Coordinator) { c.log = repo }
}

// WithRequiredDeliveryAddress makes a blank delivery address a validation
// failure instead of an accepted omission.
func WithRequiredDeliveryAddress() Option {
	return func(c *Coordinator) { c.requireAddress = true }
}

func NewCoordinator(carts *cart.Store, sessions *session.Manager, orders ordering.OrderService, feedback ordering.FeedbackService, opts ...Option) *Coordinator {
	c := &Coordinator{
		carts:    carts,
		sessions: sessions,
		orders:   orders,
		feedback: feedback,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitOrder turns the session's cart into a platform order.
//
// The cart is cleared only after the platform acknowledges the order —
// never before — so a failed submission leaves the cart intact for retry.
// The request carries menu item IDs and quantities only; the platform
// recomputes all prices from its own catalog.
func (c *Coordinator) SubmitOrder(ctx context.Context, sess, deliveryAddress string) (*ordering.Order, error) {
	crt, err := c.carts.Load(ctx, sess)
	if err != nil {
		return nil, err
	}
	if crt.IsEmpty() {
		c.record(ctx, sess, 0, checklog.StageSubmitRejected, "empty cart")
		return nil, validationErr("cart is empty")
	}
	if c.requireAddress && strings.TrimSpace(deliveryAddress) == "" {
		c.record(ctx, sess, 0, checklog.StageSubmitRejected, "missing delivery address")
		return nil, validationErr("delivery address is required")
	}
	restaurantID := crt.RestaurantID()
	if restaurantID == 0 {
		c.record(ctx, sess, 0, checklog.StageSubmitRejected, "missing restaurant id")
		return nil, validationErr("cart items carry no restaurant id")
	}

	req := ordering.OrderRequest{
		RestaurantID:    restaurantID,
		DeliveryAddress: strings.TrimSpace(deliveryAddress),
		Items:           make([]ordering.OrderRequestItem, 0, len(crt.Lines)),
	}
	for _, line := range crt.Lines {
		req.Items = append(req.Items, ordering.OrderRequestItem{
			MenuItemID: line.ID,
			Quantity:   line.Quantity,
		})
	}

	ctx, err = c.authenticate(ctx, sess)
	if err != nil {
		return nil, err
	}
	ctx = ordering.WithIdempotencyKey(ctx, uuid.NewString())

	order, err := c.orders.PlaceOrder(ctx, req)
	if err != nil {
		c.record(ctx, sess, 0, checklog.StageSubmitFailed, err.Error())
		return nil, err
	}

	// Clear-after-confirm. A failed clear must not fail the checkout: the
	// order exists on the platform; the stale mirror is repaired on the next
	// mutation.
	if err := c.carts.Clear(ctx, sess); err != nil {
		slog.ErrorContext(ctx, "order placed but cart clear failed",
			"session", sess, "order_id", order.ID, "error", err)
	}

	c.record(ctx, sess, order.ID, checklog.StageOrderPlaced, "")
	slog.InfoContext(ctx, "order placed", "session", sess, "order_id", order.ID, "restaurant_id", restaurantID)
	return order, nil
}

// Pay submits a payment for a placed order. SUCCESS and PENDING are both
// non-failure outcomes distinguished only in user messaging; any other
// status is surfaced as ErrPaymentFailed with no state transition.
func (c *Coordinator) Pay(ctx context.Context, sess string, orderID int64, method string) (*ordering.PaymentResult, error) {
	if strings.TrimSpace(method) == "" {
		return nil, validationErr("no payment method selected")
	}

	ctx, err := c.authenticate(ctx, sess)
	if err != nil {
		return nil, err
	}

	result, err := c.orders.Pay(ctx, orderID, method)
	if err != nil {
		c.record(ctx, sess, orderID, checklog.StagePaymentFailed, err.Error())
		return nil, err
	}

	switch result.Status {
	case ordering.PaymentSuccess:
		c.record(ctx, sess, orderID, checklog.StagePaymentSuccess, method)
	case ordering.PaymentPending:
		c.record(ctx, sess, orderID, checklog.StagePaymentPending, method)
	default:
		c.record(ctx, sess, orderID, checklog.StagePaymentFailed, string(result.Status))
		return result, ErrPaymentFailed
	}

	slog.InfoContext(ctx, "payment settled", "session", sess, "order_id", orderID, "status", result.Status)
	return result, nil
}

// SubmitFeedback sends a 1..5 rating for a restaurant. The platform enforces
// the once-per-(customer, restaurant, order) rule; an unauthenticated call
// comes back as ordering.ErrAuthRequired for a "please log in" prompt.
func (c *Coordinator) SubmitFeedback(ctx context.Context, sess string, restaurantID int64, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return validationErr("rating must be between 1 and 5")
	}

	ctx, err := c.authenticate(ctx, sess)
	if err != nil {
		return err
	}

	fb := ordering.Feedback{
		RestaurantID: restaurantID,
		Rating:       rating,
		Comment:      comment,
	}
	if err := c.feedback.SubmitFeedback(ctx, fb); err != nil {
		return err
	}

	c.record(ctx, sess, 0, checklog.StageFeedbackSubmitted, "")
	return nil
}

// Order fetches the authoritative order record for display.
func (c *Coordinator) Order(ctx context.Context, sess string, orderID int64) (*ordering.Order, error) {
	ctx, err := c.authenticate(ctx, sess)
	if err != nil {
		return nil, err
	}
	return c.orders.GetOrder(ctx, orderID)
}

// Cancel requests cancellation of a placed order.
func (c *Coordinator) Cancel(ctx context.Context, sess string, orderID int64) (*ordering.Order, error) {
	ctx, err := c.authenticate(ctx, sess)
	if err != nil {
		return nil, err
	}
	order, err := c.orders.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	c.record(ctx, sess, orderID, checklog.StageOrderCancelled, "")
	return order, nil
}

// authenticate attaches the session's bearer token when one exists. A
// missing token is not an error here: the platform answers 401 and the
// adapter translates it, keeping the auth decision in one place.
func (c *Coordinator) authenticate(ctx context.Context, sess string) (context.Context, error) {
	token, err := c.sessions.Token(ctx, sess)
	if errors.Is(err, session.ErrNoSession) {
		return ctx, nil
	}
	if err != nil {
		return nil, err
	}
	return ordering.WithToken(ctx, token), nil
}

// record writes a funnel event, if auditing is enabled. Audit failures are
// logged and swallowed: the checkout must not fail because the log did.
func (c *Coordinator) record(ctx context.Context, sess string, orderID int64, stage checklog.Stage, detail string) {
	if c.log == nil {
		return
	}
	entry := checklog.NewEntry(ctx, sess, orderID, stage, detail)
	if err := c.log.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to save checkout log entry",
			"session", sess, "order_id", orderID, "stage", stage, "error", err)
	}
}
