package ordering

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	item := MenuItem{Price: decimal.RequireFromString("10.00")}
	assert.True(t, item.EffectivePrice().Equal(decimal.RequireFromString("10.00")))

	item.DiscountPercentage = decimal.NewFromInt(20)
	assert.True(t, item.EffectivePrice().Equal(decimal.RequireFromString("8.00")))

	// A bogus negative discount never raises the price.
	item.DiscountPercentage = decimal.NewFromInt(-10)
	assert.True(t, item.EffectivePrice().Equal(decimal.RequireFromString("10.00")))
}

func TestReviewableGatesOnDeliveryAndPayment(t *testing.T) {
	order := Order{Status: StatusDelivered}
	assert.False(t, order.Reviewable(), "no payment record")

	order.Payment = &Payment{Status: PaymentPending}
	assert.False(t, order.Reviewable(), "payment not confirmed")

	order.Payment.Status = PaymentSuccess
	assert.True(t, order.Reviewable())

	order.Status = StatusOutForDelivery
	assert.False(t, order.Reviewable(), "not delivered yet")
}

func TestPaymentResultSettled(t *testing.T) {
	assert.True(t, PaymentResult{Status: PaymentSuccess}.Settled())
	assert.True(t, PaymentResult{Status: PaymentPending}.Settled())
	assert.False(t, PaymentResult{Status: PaymentFailed}.Settled())
	assert.False(t, PaymentResult{Status: "DECLINED"}.Settled())
}
