// Command event_logger prints booking lifecycle events as they arrive.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"xyzhotel/internal/config"
	"xyzhotel/internal/events"
)

func main() {
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queues := []string{events.BookingConfirmed, events.BookingCancelled, events.BookingExpired}
	log.Printf("Listening on %v", queues)

	err := events.Consume(ctx, config.GetEnv("RABBITMQ_URL", events.DefaultAMQPURL), queues, func(e events.BookingEvent) error {
		log.Printf("%s: booking #%d customer #%d %d %s room(s) %s to %s, %s EUR",
			e.Type, e.BookingID, e.CustomerID, e.Quantity, e.Category, e.CheckIn, e.CheckOut, e.Amount.StringFixed(2))
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("❌ Consumer stopped: %v", err)
	}
}
