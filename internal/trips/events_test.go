package trips

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"rideshare/internal/bus"
	"rideshare/internal/domain"
)

func tripRow(id, riderID, driverID int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "rider_id", "driver_id", "status", "distance_km", "fare_amount",
		"requested_at", "accepted_at", "started_at", "completed_at", "cancelled_at",
	}).AddRow(id, riderID, driverID, status, 12.5, 1750, "2025-06-01 08:00:00", "", "", "", "")
}

func emptyStopRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "trip_id", "seq", "label", "lat", "lon"})
}

func waitEvent(t *testing.T, ch <-chan bus.Event) bus.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("expected event was not emitted")
		return bus.Event{}
	}
}

func TestRequestTripPersistsAndEmits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO stops").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO stops").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	b := bus.New()
	requested := make(chan bus.Event, 1)
	b.Subscribe(EventRequested, func(ctx context.Context, e bus.Event) { requested <- e })

	e := Events{
		DB:          db,
		Bus:         b,
		RequestID:   "req-1",
		RiderExists: func(ctx context.Context, riderID int64) (bool, error) { return true, nil },
	}

	trip, err := e.RequestTrip(context.Background(), RequestInput{RiderID: 7, Stops: twoStops()})
	if err != nil {
		t.Fatalf("request trip error: %v", err)
	}
	if trip.ID != 11 {
		t.Fatalf("trip id = %d, want 11", trip.ID)
	}
	if trip.Status != StatusRequested {
		t.Fatalf("trip status = %s, want %s", trip.Status, StatusRequested)
	}
	if trip.FareAmount < MinFareCents {
		t.Fatalf("fare %d below minimum", trip.FareAmount)
	}
	if len(trip.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(trip.Stops))
	}

	ev := waitEvent(t, requested)
	p, ok := ev.Payload.(RequestedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", ev.Payload)
	}
	if p.TripID != 11 || p.RiderID != 7 {
		t.Fatalf("unexpected payload %+v", p)
	}
	if p.Pickup.Lat != twoStops()[0].Lat {
		t.Fatalf("pickup not first stop: %+v", p.Pickup)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRequestTripRejectsSingleStopAndEmitsFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	b := bus.New()
	failed := make(chan bus.Event, 1)
	b.Subscribe(Failed(EventRequested), func(ctx context.Context, e bus.Event) { failed <- e })

	e := Events{DB: db, Bus: b}
	_, err = e.RequestTrip(context.Background(), RequestInput{
		RiderID: 7,
		Stops:   []StopInput{{Label: "only", Lat: 1, Lon: 1}},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	ev := waitEvent(t, failed)
	if ev.Name != "trip.requested.failed" {
		t.Fatalf("unexpected failure event name %s", ev.Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no SQL should run: %v", err)
	}
}

func TestRequestTripUnknownRider(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	e := Events{
		DB:          db,
		Bus:         bus.New(),
		RiderExists: func(ctx context.Context, riderID int64) (bool, error) { return false, nil },
	}
	_, err = e.RequestTrip(context.Background(), RequestInput{RiderID: 404, Stops: twoStops()})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAcceptTripHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(11, 7, 0, StatusRequested))
	mock.ExpectQuery("FROM stops WHERE trip_id").WillReturnRows(emptyStopRows())
	mock.ExpectExec("UPDATE trips SET driver_id").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(11, 7, 3, StatusAccepted))
	mock.ExpectQuery("FROM stops WHERE trip_id").WillReturnRows(emptyStopRows())

	b := bus.New()
	accepted := make(chan bus.Event, 1)
	b.Subscribe(EventAccepted, func(ctx context.Context, e bus.Event) { accepted <- e })

	e := Events{
		DB:              db,
		Bus:             b,
		DriverAvailable: func(ctx context.Context, driverID int64) (bool, error) { return true, nil },
	}

	trip, err := e.AcceptTrip(context.Background(), 11, 3)
	if err != nil {
		t.Fatalf("accept trip error: %v", err)
	}
	if trip.Status != StatusAccepted || trip.DriverID != 3 {
		t.Fatalf("unexpected trip after accept: %+v", trip)
	}

	ev := waitEvent(t, accepted)
	p, ok := ev.Payload.(AcceptedPayload)
	if !ok || p.TripID != 11 || p.DriverID != 3 {
		t.Fatalf("unexpected payload %+v", ev.Payload)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAcceptTripRejectsUnavailableDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(11, 7, 0, StatusRequested))
	mock.ExpectQuery("FROM stops WHERE trip_id").WillReturnRows(emptyStopRows())

	e := Events{
		DB:              db,
		Bus:             bus.New(),
		DriverAvailable: func(ctx context.Context, driverID int64) (bool, error) { return false, nil },
	}
	_, err = e.AcceptTrip(context.Background(), 11, 3)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAcceptTripRejectsWrongStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(11, 7, 3, StatusCompleted))
	mock.ExpectQuery("FROM stops WHERE trip_id").WillReturnRows(emptyStopRows())

	e := Events{DB: db, Bus: bus.New()}
	_, err = e.AcceptTrip(context.Background(), 11, 3)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCompleteTripEmitsSettlement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(11, 7, 3, StatusInProgress))
	mock.ExpectQuery("FROM stops WHERE trip_id").WillReturnRows(emptyStopRows())
	mock.ExpectExec("UPDATE trips SET status").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(11, 7, 3, StatusCompleted))
	mock.ExpectQuery("FROM stops WHERE trip_id").WillReturnRows(emptyStopRows())

	b := bus.New()
	completed := make(chan bus.Event, 1)
	b.Subscribe(EventCompleted, func(ctx context.Context, e bus.Event) { completed <- e })

	e := Events{DB: db, Bus: b}
	trip, err := e.CompleteTrip(context.Background(), 11)
	if err != nil {
		t.Fatalf("complete trip error: %v", err)
	}
	if trip.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", trip.Status)
	}

	ev := waitEvent(t, completed)
	p, ok := ev.Payload.(CompletedPayload)
	if !ok || p.TripID != 11 || p.DriverID != 3 || p.FareAmount != 1750 {
		t.Fatalf("unexpected payload %+v", ev.Payload)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
