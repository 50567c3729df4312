package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is a plain enumerated label. The workflow deliberately does not
// enforce a transition graph; any status may move to any other status. See
// the optional transition policy hook on the order workflow service.
type OrderStatus string

const (
	StatusPendingReview  OrderStatus = "pending_review"
	StatusQuoteProvided  OrderStatus = "quote_provided"
	StatusPaymentPending OrderStatus = "payment_pending"
	StatusInProgress     OrderStatus = "in_progress"
	StatusCompleted      OrderStatus = "completed"
	StatusShipped        OrderStatus = "shipped"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]struct{}{
	StatusPendingReview:  {},
	StatusQuoteProvided:  {},
	StatusPaymentPending: {},
	StatusInProgress:     {},
	StatusCompleted:      {},
	StatusShipped:        {},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// OrderStatuses returns every member of the status enumeration.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPendingReview,
		StatusQuoteProvided,
		StatusPaymentPending,
		StatusInProgress,
		StatusCompleted,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
	}
}

// CustomOrder is a custom-fabrication request. SourceImagePath and
// ReferenceImagePaths are set once at creation and immutable thereafter.
// LinkedProductID is set at most once, by publication; once set, publication
// must not be repeated for this order.
type CustomOrder struct {
	ID                  uuid.UUID
	RequesterID         string
	Description         string
	SizePreference      string
	SourceImagePath     string
	ReferenceImagePaths []string
	Status              OrderStatus
	QuotedPrice         decimal.NullDecimal
	CompletedImagePaths []string
	LinkedProductID     uuid.NullUUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
