package trips

import (
	"context"
	"database/sql"
	"fmt"

	"rideshare/internal/bus"
	"rideshare/internal/domain"
	"rideshare/internal/utils"
)

// Event names emitted by this module. Each has a ".failed" sibling emitted
// instead of the primary event when the operation does not go through.
const (
	EventRequested = "trip.requested"
	EventAccepted  = "trip.accepted"
	EventStarted   = "trip.started"
	EventCompleted = "trip.completed"
	EventCancelled = "trip.cancelled"
)

// Failed returns the failure sibling of an event name.
func Failed(name string) string { return name + ".failed" }

// RequestedPayload rides on trip.requested; it carries enough context for
// the dispatch listener to avoid a read back.
type RequestedPayload struct {
	TripID     int64
	RiderID    int64
	Pickup     utils.Point
	Dropoff    utils.Point
	DistanceKm float64
	FareAmount int64
}

type AcceptedPayload struct {
	TripID   int64
	DriverID int64
}

type StartedPayload struct {
	TripID   int64
	DriverID int64
}

type CompletedPayload struct {
	TripID     int64
	RiderID    int64
	DriverID   int64
	FareAmount int64
}

type CancelledPayload struct {
	TripID   int64
	DriverID int64
}

type FailurePayload struct {
	TripID int64
	Reason string
}

// RequestInput is the body of a trip request.
type RequestInput struct {
	RiderID int64       `json:"rider_id"`
	Stops   []StopInput `json:"stops"`
}

// Events is the module's I/O layer. RiderExists and DriverAvailable are
// injected from the rider and driver modules at wire-up so the trip module
// depends on behavior, not packages.
type Events struct {
	DB        *sql.DB
	Bus       *bus.Bus
	RequestID string

	RiderExists     func(ctx context.Context, riderID int64) (bool, error)
	DriverAvailable func(ctx context.Context, driverID int64) (bool, error)
}

func (e Events) queries() Queries { return Queries{DB: e.DB} }

func (e Events) fail(ctx context.Context, event string, tripID int64, err error) error {
	e.Bus.Emit(ctx, e.RequestID, Failed(event), FailurePayload{TripID: tripID, Reason: err.Error()})
	return err
}

// RequestTrip validates the route, prices it, persists trip and stops in
// one transaction and emits trip.requested.
func (e Events) RequestTrip(ctx context.Context, in RequestInput) (Trip, error) {
	if err := ValidateStops(in.Stops); err != nil {
		return Trip{}, e.fail(ctx, EventRequested, 0, err)
	}

	if e.RiderExists != nil {
		ok, err := e.RiderExists(ctx, in.RiderID)
		if err != nil {
			return Trip{}, e.fail(ctx, EventRequested, 0, err)
		}
		if !ok {
			return Trip{}, e.fail(ctx, EventRequested, 0, domain.NotFoundError{Resource: "rider"})
		}
	}

	distance := RouteKm(in.Stops)
	t := Trip{
		RiderID:     in.RiderID,
		Status:      StatusRequested,
		DistanceKm:  distance,
		FareAmount:  EstimateFare(distance),
		RequestedAt: utils.FormatDateTime(utils.NowUTC()),
	}

	id, err := insertTripWithStops(ctx, e.DB, t, in.Stops)
	if err != nil {
		return Trip{}, e.fail(ctx, EventRequested, 0, err)
	}
	t.ID = id
	for i, s := range in.Stops {
		t.Stops = append(t.Stops, Stop{TripID: id, Seq: i, Label: s.Label, Lat: s.Lat, Lon: s.Lon})
	}

	utils.LogEvent(e.RequestID, "trips", "request", fmt.Sprintf("trip_id=%d rider_id=%d fare=%d", id, t.RiderID, t.FareAmount))
	pickup, _ := Pickup(t)
	dropoff, _ := Dropoff(t)
	e.Bus.Emit(ctx, e.RequestID, EventRequested, RequestedPayload{
		TripID:     id,
		RiderID:    t.RiderID,
		Pickup:     utils.Point{Lat: pickup.Lat, Lon: pickup.Lon},
		Dropoff:    utils.Point{Lat: dropoff.Lat, Lon: dropoff.Lon},
		DistanceKm: distance,
		FareAmount: t.FareAmount,
	})
	return t, nil
}

// AcceptTrip assigns an available driver to a requested trip.
func (e Events) AcceptTrip(ctx context.Context, tripID, driverID int64) (Trip, error) {
	t, err := e.queries().GetByID(ctx, tripID)
	if err != nil {
		return Trip{}, e.fail(ctx, EventAccepted, tripID, err)
	}
	if !CanTransition(t.Status, StatusAccepted) {
		return Trip{}, e.fail(ctx, EventAccepted, tripID, TransitionError(t.Status, StatusAccepted))
	}

	if e.DriverAvailable != nil {
		ok, err := e.DriverAvailable(ctx, driverID)
		if err != nil {
			return Trip{}, e.fail(ctx, EventAccepted, tripID, err)
		}
		if !ok {
			return Trip{}, e.fail(ctx, EventAccepted, tripID,
				domain.ConflictError{Resource: "driver", Msg: "not available"})
		}
	}

	if err := assignDriver(ctx, e.DB, tripID, driverID, utils.FormatDateTime(utils.NowUTC())); err != nil {
		return Trip{}, e.fail(ctx, EventAccepted, tripID, err)
	}

	utils.LogEvent(e.RequestID, "trips", "accept", fmt.Sprintf("trip_id=%d driver_id=%d", tripID, driverID))
	e.Bus.Emit(ctx, e.RequestID, EventAccepted, AcceptedPayload{TripID: tripID, DriverID: driverID})
	return e.queries().GetByID(ctx, tripID)
}

func (e Events) transition(ctx context.Context, tripID int64, to, event string, payload func(Trip) any) (Trip, error) {
	t, err := e.queries().GetByID(ctx, tripID)
	if err != nil {
		return Trip{}, e.fail(ctx, event, tripID, err)
	}
	if !CanTransition(t.Status, to) {
		return Trip{}, e.fail(ctx, event, tripID, TransitionError(t.Status, to))
	}
	if err := markStatus(ctx, e.DB, tripID, t.Status, to, utils.FormatDateTime(utils.NowUTC())); err != nil {
		return Trip{}, e.fail(ctx, event, tripID, err)
	}

	t, err = e.queries().GetByID(ctx, tripID)
	if err != nil {
		return Trip{}, e.fail(ctx, event, tripID, err)
	}
	utils.LogEvent(e.RequestID, "trips", to, fmt.Sprintf("trip_id=%d", tripID))
	e.Bus.Emit(ctx, e.RequestID, event, payload(t))
	return t, nil
}

// StartTrip moves an accepted trip to in_progress.
func (e Events) StartTrip(ctx context.Context, tripID int64) (Trip, error) {
	return e.transition(ctx, tripID, StatusInProgress, EventStarted, func(t Trip) any {
		return StartedPayload{TripID: t.ID, DriverID: t.DriverID}
	})
}

// CompleteTrip settles an in-progress trip and emits trip.completed.
func (e Events) CompleteTrip(ctx context.Context, tripID int64) (Trip, error) {
	return e.transition(ctx, tripID, StatusCompleted, EventCompleted, func(t Trip) any {
		return CompletedPayload{TripID: t.ID, RiderID: t.RiderID, DriverID: t.DriverID, FareAmount: t.FareAmount}
	})
}

// CancelTrip cancels a trip that has not started yet.
func (e Events) CancelTrip(ctx context.Context, tripID int64) (Trip, error) {
	return e.transition(ctx, tripID, StatusCancelled, EventCancelled, func(t Trip) any {
		return CancelledPayload{TripID: t.ID, DriverID: t.DriverID}
	})
}
