package httpx

import (
	"github.com/shopspring/decimal"

	"github.com/feastly/storefront/internal/cart"
	"github.com/feastly/storefront/internal/ordering"
)

type addItemRequest struct {
	RestaurantID int64 `json:"restaurant_id"`
	MenuItemID   int64 `json:"menu_item_id"`
	Quantity     int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	DeliveryAddress string `json:"delivery_address"`
}

type payRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type feedbackRequest struct {
	RestaurantID int64  `json:"restaurant_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

type cartLineResponse struct {
	MenuItemID     int64           `json:"menu_item_id"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

type cartResponse struct {
	RestaurantID int64              `json:"restaurant_id,omitempty"`
	Lines        []cartLineResponse `json:"lines"`
	TotalItems   int                `json:"total_items"`
	TotalPrice   decimal.Decimal    `json:"total_price"`
}

type orderItemResponse struct {
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"name,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type paymentResponse struct {
	Method string          `json:"method,omitempty"`
	Status string          `json:"status"`
	Amount decimal.Decimal `json:"amount"`
}

type orderResponse struct {
	ID              int64               `json:"id"`
	RestaurantID    int64               `json:"restaurant_id"`
	RestaurantName  string              `json:"restaurant_name,omitempty"`
	Status          string              `json:"status"`
	Items           []orderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	Payment         *paymentResponse    `json:"payment,omitempty"`
	Reviewable      bool                `json:"reviewable"`
	CreatedAt       string              `json:"created_at,omitempty"`
}

type payResultResponse struct {
	PaymentStatus string          `json:"payment_status"`
	Amount        decimal.Decimal `json:"amount"`
	Message       string          `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapCartToResponse(c *cart.Cart) cartResponse {
	out := cartResponse{
		RestaurantID: c.RestaurantID(),
		Lines:        make([]cartLineResponse, 0, len(c.Lines)),
		TotalItems:   c.TotalItemCount(),
		TotalPrice:   c.TotalPrice(),
	}
	for _, l := range c.Lines {
		out.Lines = append(out.Lines, cartLineResponse{
			MenuItemID:     l.ID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPrice:      l.Price,
			EffectivePrice: l.EffectivePrice(),
			LineTotal:      l.EffectiveSubtotal(),
		})
	}
	return out
}

func mapOrderToResponse(o *ordering.Order) orderResponse {
	out := orderResponse{
		ID:              o.ID,
		RestaurantID:    o.RestaurantID,
		RestaurantName:  o.RestaurantName,
		Status:          string(o.Status),
		Items:           make([]orderItemResponse, 0, len(o.Items)),
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		Reviewable:      o.Reviewable(),
		CreatedAt:       o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, orderItemResponse{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Subtotal:   it.Subtotal(),
		})
	}
	if o.Payment != nil {
		out.Payment = &paymentResponse{
			Method: o.Payment.Method,
			Status: string(o.Payment.Status),
			Amount: o.Payment.Amount,
		}
	}
	return out
}
