package drivers

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"rideshare/internal/bus"
	"rideshare/internal/config"
	"rideshare/internal/trips"
	"rideshare/internal/utils"
)

func dispatchCfg() config.Dispatch {
	return config.Dispatch{RadiusKm: 5, MaxOffers: 8, LocationTTL: 5 * time.Minute}
}

func availableDriverRows() *sqlmock.Rows {
	cols := []string{"id", "name", "email", "phone", "status", "lat", "lon", "location_at", "created_at", "password_hash"}
	return sqlmock.NewRows(cols).
		AddRow(1, "Near", "near@x.com", "", StatusAvailable, 52.5210, 13.4060, "2025-06-01 08:00:00", "2025-01-01 00:00:00", "h").
		AddRow(2, "Far", "far@x.com", "", StatusAvailable, 48.1374, 11.5755, "2025-06-01 08:00:00", "2025-01-01 00:00:00", "h")
}

func TestOnTripRequestedRecordsOffersAndNotifies(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM drivers").WillReturnRows(availableDriverRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO dispatch_offers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	b := bus.New()
	notified := make(chan bus.Event, 1)
	b.Subscribe(EventNotified, func(ctx context.Context, e bus.Event) { notified <- e })

	Listeners{DB: db, Bus: b, Cfg: dispatchCfg()}.Register()

	b.Emit(context.Background(), "req-9", trips.EventRequested, trips.RequestedPayload{
		TripID:  11,
		RiderID: 7,
		Pickup:  utils.Point{Lat: 52.5200, Lon: 13.4050},
	})

	select {
	case e := <-notified:
		p, ok := e.Payload.(NotifiedPayload)
		if !ok {
			t.Fatalf("unexpected payload type %T", e.Payload)
		}
		if p.TripID != 11 {
			t.Fatalf("trip id = %d, want 11", p.TripID)
		}
		if len(p.DriverIDs) != 1 || p.DriverIDs[0] != 1 {
			t.Fatalf("expected only the nearby driver, got %v", p.DriverIDs)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("drivers.notified was not emitted")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOnTripRequestedNoCandidates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "name", "email", "phone", "status", "lat", "lon", "location_at", "created_at", "password_hash"}
	mock.ExpectQuery("FROM drivers").WillReturnRows(sqlmock.NewRows(cols))

	b := bus.New()
	Listeners{DB: db, Bus: b, Cfg: dispatchCfg()}.Register()

	b.Emit(context.Background(), "req-9", trips.EventRequested, trips.RequestedPayload{
		TripID: 11,
		Pickup: utils.Point{Lat: 52.5200, Lon: 13.4050},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := b.Close(ctx); err != nil {
		t.Fatalf("close error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripLifecycleFlipsDriverStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// accepted marks the driver on_trip, completed releases them. Each
	// listener has its own worker, so the two updates may land in any order.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectExec("UPDATE drivers SET status").
		WithArgs(StatusOnTrip, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE drivers SET status").
		WithArgs(StatusAvailable, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b := bus.New()
	Listeners{DB: db, Bus: b, Cfg: dispatchCfg()}.Register()

	ctx := context.Background()
	b.Emit(ctx, "req-9", trips.EventAccepted, trips.AcceptedPayload{TripID: 11, DriverID: 3})
	b.Emit(ctx, "req-9", trips.EventCompleted, trips.CompletedPayload{TripID: 11, DriverID: 3})

	cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := b.Close(cctx); err != nil {
		t.Fatalf("close error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelledWithoutDriverIsIgnored(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	b := bus.New()
	Listeners{DB: db, Bus: b, Cfg: dispatchCfg()}.Register()

	ctx := context.Background()
	b.Emit(ctx, "req-9", trips.EventCancelled, trips.CancelledPayload{TripID: 11, DriverID: 0})

	cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := b.Close(cctx); err != nil {
		t.Fatalf("close error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
