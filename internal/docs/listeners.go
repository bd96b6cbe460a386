package docs

import (
	"context"
	"fmt"

	"rideshare/internal/bus"
	"rideshare/internal/trips"
	"rideshare/internal/utils"
)

// Listeners announces receipt availability once a trip settles.
type Listeners struct {
	Bus *bus.Bus
}

func (l Listeners) Register() {
	l.Bus.Subscribe(trips.EventCompleted, l.onTripCompleted)
}

func (l Listeners) onTripCompleted(ctx context.Context, e bus.Event) {
	p, ok := e.Payload.(trips.CompletedPayload)
	if !ok {
		return
	}
	utils.LogEvent(e.RequestID, "docs", "receipt_ready",
		fmt.Sprintf("trip_id=%d fare=%s", p.TripID, utils.FormatCents(p.FareAmount)))
}
