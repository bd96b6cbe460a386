package trips

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
)

type Queries struct {
	DB *sql.DB
}

const tripColumns = `id, rider_id, COALESCE(driver_id,0), status, distance_km, fare_amount,
		requested_at, COALESCE(accepted_at,''), COALESCE(started_at,''), COALESCE(completed_at,''), COALESCE(cancelled_at,'')`

func scanTrip(sc interface{ Scan(...any) error }) (Trip, error) {
	var t Trip
	err := sc.Scan(&t.ID, &t.RiderID, &t.DriverID, &t.Status, &t.DistanceKm, &t.FareAmount,
		&t.RequestedAt, &t.AcceptedAt, &t.StartedAt, &t.CompletedAt, &t.CancelledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
	}
	if err != nil {
		return Trip{}, domain.InternalError{Msg: "query trip", Err: err}
	}
	return t, nil
}

// GetByID loads a trip with its stops in seq order.
func (q Queries) GetByID(ctx context.Context, id int64) (Trip, error) {
	t, err := scanTrip(q.DB.QueryRowContext(ctx, "SELECT "+tripColumns+" FROM trips WHERE id = ?", id))
	if err != nil {
		return Trip{}, err
	}

	rows, err := q.DB.QueryContext(ctx,
		"SELECT id, trip_id, seq, label, lat, lon FROM stops WHERE trip_id = ? ORDER BY seq ASC", id)
	if err != nil {
		return Trip{}, domain.InternalError{Msg: "query stops", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var s Stop
		if err := rows.Scan(&s.ID, &s.TripID, &s.Seq, &s.Label, &s.Lat, &s.Lon); err != nil {
			return Trip{}, domain.InternalError{Msg: "scan stop", Err: err}
		}
		t.Stops = append(t.Stops, s)
	}
	if err := rows.Err(); err != nil {
		return Trip{}, domain.InternalError{Msg: "iterate stops", Err: err}
	}
	return t, nil
}

func (q Queries) list(ctx context.Context, where string, args ...any) ([]Trip, error) {
	rows, err := q.DB.QueryContext(ctx,
		"SELECT "+tripColumns+" FROM trips WHERE "+where+" ORDER BY id DESC", args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "query trips", Err: err}
	}
	defer rows.Close()

	out := []Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate trips", Err: err}
	}
	return out, nil
}

// ListByRider returns the rider's trips, newest first. Stops are omitted.
func (q Queries) ListByRider(ctx context.Context, riderID int64) ([]Trip, error) {
	return q.list(ctx, "rider_id = ?", riderID)
}

// ListByDriver returns the driver's assigned trips, newest first.
func (q Queries) ListByDriver(ctx context.Context, driverID int64) ([]Trip, error) {
	return q.list(ctx, "driver_id = ?", driverID)
}

// ListByStatus returns trips in the given status, newest first.
func (q Queries) ListByStatus(ctx context.Context, status string) ([]Trip, error) {
	if err := validStatus(status); err != nil {
		return nil, domain.ValidationError{Field: "status", Msg: err.Error()}
	}
	return q.list(ctx, "status = ?", status)
}
