// Package rest is the HTTP JSON adapter for the platform API ports. It owns
// the wire formats, the bearer-token header, and the single place where
// non-2xx responses are translated into the TransportError / ErrAuthRequired
// taxonomy — no caller ever inspects a raw status code.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/feastly/storefront/internal/ordering"
)

const headerIdempotencyKey = "X-Idempotency-Key"

// Client implements the ordering ports over the platform's REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

var (
	_ ordering.Catalog         = (*Client)(nil)
	_ ordering.OrderService    = (*Client)(nil)
	_ ordering.FeedbackService = (*Client)(nil)
)

// --- Catalog (public, no auth) ---

func (c *Client) Restaurants(ctx context.Context) ([]ordering.Restaurant, error) {
	var out []ordering.Restaurant
	if err := c.do(ctx, http.MethodGet, "/restaurants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Menu(ctx context.Context, restaurantID int64) ([]ordering.MenuItem, error) {
	var out []ordering.MenuItem
	path := fmt.Sprintf("/restaurants/%d/menu", restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RestaurantFeedback(ctx context.Context, restaurantID int64) ([]ordering.Feedback, error) {
	var out []ordering.Feedback
	path := fmt.Sprintf("/feedback/restaurant/%d", restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RestaurantRating(ctx context.Context, restaurantID int64) (*ordering.RestaurantRating, error) {
	var out ordering.RestaurantRating
	path := fmt.Sprintf("/feedback/restaurant/%d/rating", restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Orders ---

func (c *Client) PlaceOrder(ctx context.Context, req ordering.OrderRequest) (*ordering.Order, error) {
	var out wireOrder
	if err := c.do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return out.normalize(), nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*ordering.Order, error) {
	var out wireOrder
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return out.normalize(), nil
}

func (c *Client) CancelOrder(ctx context.Context, id int64) (*ordering.Order, error) {
	var out wireOrder
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/cancel", id), nil, &out); err != nil {
		return nil, err
	}
	return out.normalize(), nil
}

func (c *Client) Pay(ctx context.Context, orderID int64, method string) (*ordering.PaymentResult, error) {
	body := payRequest{PaymentMethod: method}
	var out wirePaymentResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/pay", orderID), body, &out); err != nil {
		return nil, err
	}
	return out.normalize(), nil
}

// --- Feedback ---

func (c *Client) SubmitFeedback(ctx context.Context, fb ordering.Feedback) error {
	return c.do(ctx, http.MethodPost, "/feedback", fb, nil)
}

// do performs one JSON round-trip. out may be nil when the response body is
// irrelevant. Every error leaving this method is either ErrAuthRequired or
// a *TransportError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &ordering.TransportError{Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &ordering.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := ordering.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if key := ordering.IdempotencyKeyFromContext(ctx); key != "" {
		req.Header.Set(headerIdempotencyKey, key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ordering.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &ordering.TransportError{
			StatusCode: resp.StatusCode,
			Message:    "Please log in to continue.",
			Err:        ordering.ErrAuthRequired,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ordering.TransportError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ordering.TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeErrorMessage extracts the platform's error message from a non-2xx
// body. The platform has answered both {"message": ...} and
// {"error": ..., "message": ...} envelopes; take message first, then error.
func decodeErrorMessage(body io.Reader) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
