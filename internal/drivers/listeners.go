package drivers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"rideshare/internal/bus"
	"rideshare/internal/config"
	"rideshare/internal/trips"
	"rideshare/internal/utils"
)

// Listeners reacts to trip lifecycle events: dispatching offers on
// request, and flipping driver availability on assignment and settlement.
// Secondary effects only; a listener failure never touches the trip row
// that triggered it.
type Listeners struct {
	DB  *sql.DB
	Bus *bus.Bus
	Cfg config.Dispatch
}

// Register subscribes the listeners on the bus. Call once at wire-up.
func (l Listeners) Register() {
	l.Bus.Subscribe(trips.EventRequested, l.onTripRequested)
	l.Bus.Subscribe(trips.EventAccepted, l.onTripAccepted)
	l.Bus.Subscribe(trips.EventCompleted, l.onTripCompleted)
	l.Bus.Subscribe(trips.EventCancelled, l.onTripCancelled)
}

func (l Listeners) queries() Queries { return Queries{DB: l.DB} }

// onTripRequested records a dispatch offer for each available driver near
// the pickup and announces drivers.notified.
func (l Listeners) onTripRequested(ctx context.Context, e bus.Event) {
	p, ok := e.Payload.(trips.RequestedPayload)
	if !ok {
		utils.LogEvent(e.RequestID, "dispatch", "bad_payload", fmt.Sprintf("event=%s", e.Name))
		return
	}

	now := utils.NowUTC()
	candidates, err := l.queries().AvailableWithFreshLocation(ctx, now, l.Cfg.LocationTTL)
	if err != nil {
		utils.LogEvent(e.RequestID, "dispatch", "candidates_error", err.Error())
		return
	}

	ranked := RankNearby(candidates, p.Pickup, l.Cfg.RadiusKm, l.Cfg.MaxOffers)
	if len(ranked) == 0 {
		utils.LogEvent(e.RequestID, "dispatch", "no_drivers", fmt.Sprintf("trip_id=%d", p.TripID))
		return
	}

	offeredAt := utils.FormatDateTime(now)
	offers := make([]DispatchOffer, 0, len(ranked))
	ids := make([]int64, 0, len(ranked))
	for _, n := range ranked {
		offers = append(offers, DispatchOffer{
			OfferUID:   uuid.NewString(),
			TripID:     p.TripID,
			DriverID:   n.Driver.ID,
			DistanceKm: n.DistanceKm,
			OfferedAt:  offeredAt,
		})
		ids = append(ids, n.Driver.ID)
	}
	if err := insertOffers(ctx, l.DB, offers); err != nil {
		utils.LogEvent(e.RequestID, "dispatch", "offers_error", err.Error())
		return
	}

	utils.LogEvent(e.RequestID, "dispatch", "notified",
		fmt.Sprintf("trip_id=%d drivers=%d", p.TripID, len(ids)))
	l.Bus.Emit(ctx, e.RequestID, EventNotified, NotifiedPayload{TripID: p.TripID, DriverIDs: ids})
}

func (l Listeners) onTripAccepted(ctx context.Context, e bus.Event) {
	p, ok := e.Payload.(trips.AcceptedPayload)
	if !ok {
		return
	}
	if err := setStatus(ctx, l.DB, p.DriverID, StatusOnTrip); err != nil {
		utils.LogEvent(e.RequestID, "dispatch", "mark_on_trip_error", err.Error())
	}
}

func (l Listeners) onTripCompleted(ctx context.Context, e bus.Event) {
	p, ok := e.Payload.(trips.CompletedPayload)
	if !ok {
		return
	}
	l.releaseDriver(ctx, e.RequestID, p.DriverID)
}

func (l Listeners) onTripCancelled(ctx context.Context, e bus.Event) {
	p, ok := e.Payload.(trips.CancelledPayload)
	if !ok {
		return
	}
	// A cancelled trip may never have been assigned.
	if p.DriverID != 0 {
		l.releaseDriver(ctx, e.RequestID, p.DriverID)
	}
}

func (l Listeners) releaseDriver(ctx context.Context, requestID string, driverID int64) {
	if err := setStatus(ctx, l.DB, driverID, StatusAvailable); err != nil {
		utils.LogEvent(requestID, "dispatch", "release_error", err.Error())
		return
	}
	utils.LogEvent(requestID, "dispatch", "released", fmt.Sprintf("driver_id=%d", driverID))
}
