// Package ordering holds the normalized domain types for the food-ordering
// platform as seen by the storefront, plus the ports it consumes them through.
//
// The platform API returns order and payment records in more than one shape
// (field names drifted between API versions). Normalization happens once, in
// the REST adapter — everything inside this module sees exactly these types
// and never branches on which wire field was present.
package ordering

import "github.com/shopspring/decimal"

// OrderStatus is the fulfillment lifecycle vocabulary owned by the platform.
// The storefront only ever observes these; it never drives fulfillment.
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "PLACED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentPending PaymentStatus = "PENDING"
	PaymentFailed  PaymentStatus = "FAILED"
)

// MenuItem is a catalog entry, read-only to the storefront.
type MenuItem struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	RestaurantID       int64           `json:"restaurantId"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	Available          bool            `json:"available"`
}

// EffectivePrice is the unit price after applying any discount percentage.
// A zero or negative discount leaves the price untouched.
func (m MenuItem) EffectivePrice() decimal.Decimal {
	if m.DiscountPercentage.IsPositive() {
		factor := decimal.NewFromInt(1).Sub(m.DiscountPercentage.Div(decimal.NewFromInt(100)))
		return m.Price.Mul(factor)
	}
	return m.Price
}

type Restaurant struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// OrderRequest is what the storefront submits to the platform. Prices are
// deliberately absent: the platform recomputes every amount from its own
// catalog, so a client-held price can never influence what gets charged.
type OrderRequest struct {
	RestaurantID    int64              `json:"restaurantId"`
	DeliveryAddress string             `json:"deliveryAddress,omitempty"`
	Items           []OrderRequestItem `json:"items"`
}

type OrderRequestItem struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

// Order is the authoritative record owned by the platform. The storefront
// holds only a cached read of it.
type Order struct {
	ID              int64
	CustomerID      int64
	RestaurantID    int64
	RestaurantName  string
	Status          OrderStatus
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	DeliveryAddress string
	Payment         *Payment
	CreatedAt       string
}

type OrderItem struct {
	MenuItemID int64
	Name       string
	Quantity   int
	// UnitPrice is the server-computed price at order time, after discounts.
	UnitPrice decimal.Decimal
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Payment struct {
	Method string
	Status PaymentStatus
	Amount decimal.Decimal
}

// Reviewable reports whether the feedback affordance should be offered for
// this order: fulfillment finished and payment confirmed. The once-per-order
// rule is enforced server-side; this only gates the UI.
func (o Order) Reviewable() bool {
	return o.Status == StatusDelivered && o.Payment != nil && o.Payment.Status == PaymentSuccess
}

// PaymentResult is the outcome of a pay call. Both SUCCESS and PENDING are
// non-failure outcomes; they differ only in user messaging.
type PaymentResult struct {
	Status PaymentStatus
	Amount decimal.Decimal
}

func (r PaymentResult) Settled() bool {
	return r.Status == PaymentSuccess || r.Status == PaymentPending
}

type Feedback struct {
	ID           int64  `json:"id,omitempty"`
	RestaurantID int64  `json:"restaurantId"`
	CustomerName string `json:"customerName,omitempty"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type RestaurantRating struct {
	RestaurantID  int64   `json:"restaurantId"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}
