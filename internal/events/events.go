// Package events publishes booking lifecycle notifications. Publishing is
// best-effort and happens after the state change has committed.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Queue names, one per event type
const (
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
	BookingExpired   = "booking.expired"
)

// BookingEvent is the JSON body of every booking notification.
type BookingEvent struct {
	Type       string          `json:"type"`
	BookingID  uint            `json:"booking_id"`
	CustomerID uint            `json:"customer_id"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	CheckIn    string          `json:"check_in"`
	CheckOut   string          `json:"check_out"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher delivers booking events.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }
