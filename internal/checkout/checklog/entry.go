// Package checklog records every checkout workflow transition into a durable
// audit log. Each row is an immutable event: submissions, payment outcomes,
// cancellations, feedback. The log answers "where did this order's funnel
// stop" after the fact and can be joined with distributed traces via the
// trace_id column.
package checklog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Stage is the checkout funnel position an event was recorded at.
type Stage string

const (
	StageOrderPlaced       Stage = "ORDER_PLACED"
	StageSubmitRejected    Stage = "SUBMIT_REJECTED"
	StageSubmitFailed      Stage = "SUBMIT_FAILED"
	StagePaymentSuccess    Stage = "PAYMENT_SUCCESS"
	StagePaymentPending    Stage = "PAYMENT_PENDING"
	StagePaymentFailed     Stage = "PAYMENT_FAILED"
	StageOrderCancelled    Stage = "ORDER_CANCELLED"
	StageFeedbackSubmitted Stage = "FEEDBACK_SUBMITTED"
)

// Entry is one row in the checkout log.
type Entry struct {
	// Session identifies the browser session that drove the event.
	Session string

	// OrderID is the platform's order identifier, zero while no order
	// exists yet (e.g. a rejected submission).
	OrderID int64

	Stage Stage

	// Detail carries the human-readable specifics: the validation reason,
	// the transport error, or the payment method used.
	Detail string

	// TraceID / SpanID are the W3C identifiers of the OTel span active when
	// the event was recorded; empty when no span was in the context.
	TraceID string
	SpanID  string

	RecordedAt time.Time
}

// NewEntry builds an Entry with trace identifiers extracted from ctx.
func NewEntry(ctx context.Context, session string, orderID int64, stage Stage, detail string) *Entry {
	e := &Entry{
		Session:    session,
		OrderID:    orderID,
		Stage:      stage,
		Detail:     detail,
		RecordedAt: time.Now().UTC(),
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		e.TraceID = sc.TraceID().String()
		e.SpanID = sc.SpanID().String()
	}
	return e
}
