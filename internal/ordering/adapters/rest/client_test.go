package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feastly/storefront/internal/ordering"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestPlaceOrderSendsAuthAndIdempotencyHeaders(t *testing.T) {
	var gotAuth, gotIdem string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("X-Idempotency-Key")

		var req ordering.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(5), req.RestaurantID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":301,"restaurantId":5,"status":"PLACED","items":[]}`))
	})

	ctx := ordering.WithToken(context.Background(), "jwt-abc")
	ctx = ordering.WithIdempotencyKey(ctx, "idem-1")

	order, err := client.PlaceOrder(ctx, ordering.OrderRequest{
		RestaurantID: 5,
		Items:        []ordering.OrderRequestItem{{MenuItemID: 11, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(301), order.ID)
	assert.Equal(t, "Bearer jwt-abc", gotAuth)
	assert.Equal(t, "idem-1", gotIdem)
}

func TestGetOrderNormalizesItemsWithPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/301", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 301,
			"userId": 9,
			"restaurantId": 5,
			"status": "DELIVERED",
			"totalAmount": "24.00",
			"items": [
				{"menuItemId": 11, "quantity": 3, "price": "8.00"}
			],
			"payment": {"paymentMethod": "COD", "paymentStatus": "SUCCESS", "amount": "24.00"}
		}`))
	})

	order, err := client.GetOrder(context.Background(), 301)
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.CustomerID, "userId accepted as customer id")
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(11), order.Items[0].MenuItemID)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("8.00")))
	require.NotNil(t, order.Payment)
	assert.Equal(t, ordering.PaymentSuccess, order.Payment.Status)
	assert.True(t, order.Reviewable())
}

func TestGetOrderNormalizesOrderItemsWithUnitPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": 302,
			"customerId": 9,
			"status": "PLACED",
			"orderItems": [
				{"menuItem": {"id": 11, "name": "Margherita"}, "quantity": 2, "unitPrice": "10.00"}
			],
			"restaurant": {"id": 5, "name": "Luigi's"}
		}`))
	})

	order, err := client.GetOrder(context.Background(), 302)
	require.NoError(t, err)
	assert.Equal(t, int64(5), order.RestaurantID, "restaurant id taken from nested summary")
	assert.Equal(t, "Luigi's", order.RestaurantName)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(11), order.Items[0].MenuItemID)
	assert.Equal(t, "Margherita", order.Items[0].Name)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.False(t, order.Reviewable())
}

func TestPayParsesPendingResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/301/pay", r.URL.Path)
		var req struct {
			PaymentMethod string `json:"paymentMethod"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "COD", req.PaymentMethod)
		_, _ = w.Write([]byte(`{"paymentStatus": "PENDING", "amount": "24.00"}`))
	})

	result, err := client.Pay(context.Background(), 301, "COD")
	require.NoError(t, err)
	assert.Equal(t, ordering.PaymentPending, result.Status)
	assert.True(t, result.Settled())
}

func TestNonOKCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "Restaurant is closed"}`))
	})

	_, err := client.PlaceOrder(context.Background(), ordering.OrderRequest{RestaurantID: 5})
	var te *ordering.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusUnprocessableEntity, te.StatusCode)
	assert.Equal(t, "Restaurant is closed", te.UserMessage())
}

func TestNonOKWithoutMessageFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetOrder(context.Background(), 1)
	var te *ordering.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Something went wrong. Please try again.", te.UserMessage())
}

func TestUnauthorizedBecomesAuthRequired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := client.SubmitFeedback(context.Background(), ordering.Feedback{RestaurantID: 5, Rating: 4})
	require.ErrorIs(t, err, ordering.ErrAuthRequired)
}

func TestForbiddenBecomesAuthRequired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := client.SubmitFeedback(context.Background(), ordering.Feedback{RestaurantID: 5, Rating: 4})
	require.ErrorIs(t, err, ordering.ErrAuthRequired)
}

func TestMenuParsesCatalogShapes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/restaurants/5/menu", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "catalog reads are public")
		_, _ = w.Write([]byte(`[
			{"id": 11, "name": "Margherita", "price": 10.0, "discountPercentage": 20, "restaurantId": 5, "available": true}
		]`))
	})

	menu, err := client.Menu(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.True(t, menu[0].EffectivePrice().Equal(decimal.RequireFromString("8")),
		"got %s", menu[0].EffectivePrice())
}
