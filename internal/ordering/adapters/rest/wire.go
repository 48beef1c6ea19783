package rest

import (
	"github.com/shopspring/decimal"

	"github.com/feastly/storefront/internal/ordering"
)

// The platform's order payload drifted between API versions: line items
// arrive under "items" or "orderItems", and the unit price under "price" or
// "unitPrice". These wire types accept every observed shape; normalize()
// collapses them into the one ordering.Order the rest of the module sees.

type wireOrder struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	UserID          int64           `json:"userId"`
	RestaurantID    int64           `json:"restaurantId"`
	Items           []wireOrderItem `json:"items"`
	OrderItems      []wireOrderItem `json:"orderItems"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Payment         *wirePayment    `json:"payment"`
	Restaurant      *wireRestaurant `json:"restaurant"`
	CreatedAt       string          `json:"createdAt"`
}

type wireOrderItem struct {
	MenuItemID int64            `json:"menuItemId"`
	Name       string           `json:"name"`
	MenuItem   *wireMenuItemRef `json:"menuItem"`
	Quantity   int              `json:"quantity"`
	Price      *decimal.Decimal `json:"price"`
	UnitPrice  *decimal.Decimal `json:"unitPrice"`
}

type wireMenuItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type wirePayment struct {
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	Amount        decimal.Decimal `json:"amount"`
}

type wireRestaurant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type payRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type wirePaymentResult struct {
	PaymentStatus string          `json:"paymentStatus"`
	Amount        decimal.Decimal `json:"amount"`
}

func (w wireOrder) normalize() *ordering.Order {
	o := &ordering.Order{
		ID:              w.ID,
		CustomerID:      w.CustomerID,
		RestaurantID:    w.RestaurantID,
		Status:          ordering.OrderStatus(w.Status),
		TotalAmount:     w.TotalAmount,
		DeliveryAddress: w.DeliveryAddress,
		CreatedAt:       w.CreatedAt,
	}
	if o.CustomerID == 0 {
		o.CustomerID = w.UserID
	}
	if w.Restaurant != nil {
		o.RestaurantName = w.Restaurant.Name
		if o.RestaurantID == 0 {
			o.RestaurantID = w.Restaurant.ID
		}
	}

	items := w.Items
	if len(items) == 0 {
		items = w.OrderItems
	}
	o.Items = make([]ordering.OrderItem, 0, len(items))
	for _, it := range items {
		o.Items = append(o.Items, it.normalize())
	}

	if w.Payment != nil {
		o.Payment = &ordering.Payment{
			Method: w.Payment.PaymentMethod,
			Status: ordering.PaymentStatus(w.Payment.PaymentStatus),
			Amount: w.Payment.Amount,
		}
	}
	return o
}

func (w wireOrderItem) normalize() ordering.OrderItem {
	item := ordering.OrderItem{
		MenuItemID: w.MenuItemID,
		Name:       w.Name,
		Quantity:   w.Quantity,
	}
	if w.MenuItem != nil {
		if item.MenuItemID == 0 {
			item.MenuItemID = w.MenuItem.ID
		}
		if item.Name == "" {
			item.Name = w.MenuItem.Name
		}
	}
	switch {
	case w.UnitPrice != nil:
		item.UnitPrice = *w.UnitPrice
	case w.Price != nil:
		item.UnitPrice = *w.Price
	}
	return item
}

func (w wirePaymentResult) normalize() *ordering.PaymentResult {
	return &ordering.PaymentResult{
		Status: ordering.PaymentStatus(w.PaymentStatus),
		Amount: w.Amount,
	}
}
