package trips

import (
	"context"
	"database/sql"

	"rideshare/internal/domain"
	"rideshare/internal/schema"
)

// Writes are private to the module; only the events layer calls them.

// insertTripWithStops persists the trip and its stops in one transaction.
func insertTripWithStops(ctx context.Context, db *sql.DB, t Trip, stops []StopInput) (int64, error) {
	rec := schema.Record{
		"rider_id":     t.RiderID,
		"status":       t.Status,
		"distance_km":  t.DistanceKm,
		"fare_amount":  t.FareAmount,
		"requested_at": t.RequestedAt,
	}
	if err := Object().ValidateRecord(rec); err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, domain.InternalError{Msg: "begin trip tx", Err: err}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO trips (rider_id, status, distance_km, fare_amount, requested_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.RiderID, t.Status, t.DistanceKm, t.FareAmount, t.RequestedAt,
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, domain.InternalError{Msg: "insert trip", Err: err}
	}
	tripID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, domain.InternalError{Msg: "insert trip id", Err: err}
	}

	for i, s := range stops {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stops (trip_id, seq, label, lat, lon)
			VALUES (?, ?, ?, ?, ?)`,
			tripID, i, s.Label, s.Lat, s.Lon,
		); err != nil {
			_ = tx.Rollback()
			return 0, domain.InternalError{Msg: "insert stop", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.InternalError{Msg: "commit trip", Err: err}
	}
	return tripID, nil
}

// assignDriver moves a requested trip to accepted for exactly one driver.
// The status guard in the WHERE clause makes concurrent accepts lose
// cleanly instead of double-assigning.
func assignDriver(ctx context.Context, db *sql.DB, tripID, driverID int64, at string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE trips SET driver_id = ?, status = ?, accepted_at = ?
		WHERE id = ? AND status = ?`,
		driverID, StatusAccepted, at, tripID, StatusRequested,
	)
	if err != nil {
		return domain.InternalError{Msg: "assign driver", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Msg: "assign driver result", Err: err}
	}
	if n == 0 {
		return domain.ConflictError{Resource: "trip", Msg: "no longer accepting drivers"}
	}
	return nil
}

// markStatus performs a guarded transition, stamping the matching
// timestamp column.
func markStatus(ctx context.Context, db *sql.DB, tripID int64, from, to, at string) error {
	var stampCol string
	switch to {
	case StatusInProgress:
		stampCol = "started_at"
	case StatusCompleted:
		stampCol = "completed_at"
	case StatusCancelled:
		stampCol = "cancelled_at"
	default:
		return domain.InternalError{Msg: "unsupported transition target " + to}
	}

	res, err := db.ExecContext(ctx,
		"UPDATE trips SET status = ?, "+stampCol+" = ? WHERE id = ? AND status = ?",
		to, at, tripID, from,
	)
	if err != nil {
		return domain.InternalError{Msg: "update trip status", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Msg: "update trip status result", Err: err}
	}
	if n == 0 {
		return TransitionError(from, to)
	}
	return nil
}
