package ordering

import "context"

// Catalog is the port for public (unauthenticated) reads of restaurant data.
type Catalog interface {
	Restaurants(ctx context.Context) ([]Restaurant, error)
	Menu(ctx context.Context, restaurantID int64) ([]MenuItem, error)
	RestaurantFeedback(ctx context.Context, restaurantID int64) ([]Feedback, error)
	RestaurantRating(ctx context.Context, restaurantID int64) (*RestaurantRating, error)
}

// OrderService is the port for the authenticated order/payment lifecycle.
type OrderService interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error)
	GetOrder(ctx context.Context, id int64) (*Order, error)
	CancelOrder(ctx context.Context, id int64) (*Order, error)
	Pay(ctx context.Context, orderID int64, method string) (*PaymentResult, error)
}

// FeedbackService is the port for submitting post-delivery ratings.
// Requires an authenticated session; the adapter translates 401/403 into
// ErrAuthRequired so callers can prompt for login.
type FeedbackService interface {
	SubmitFeedback(ctx context.Context, fb Feedback) error
}
