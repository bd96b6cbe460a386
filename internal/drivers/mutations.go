package drivers

import (
	"context"
	"database/sql"

	"rideshare/internal/domain"
	"rideshare/internal/schema"
)

// Writes are private to the module; only the events layer and listeners
// call them.

func insertDriver(ctx context.Context, db *sql.DB, d Driver) (int64, error) {
	rec := schema.Record{
		"name":          d.Name,
		"email":         d.Email,
		"phone":         d.Phone,
		"status":        d.Status,
		"password_hash": d.PasswordHash,
		"created_at":    d.CreatedAt,
	}
	if err := Object().ValidateRecord(rec); err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO drivers (name, email, phone, status, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.Name, d.Email, d.Phone, d.Status, d.PasswordHash, d.CreatedAt,
	)
	if err != nil {
		return 0, domain.InternalError{Msg: "insert driver", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "insert driver id", Err: err}
	}
	return id, nil
}

func updateLocation(ctx context.Context, db *sql.DB, id int64, lat, lon float64, at string) error {
	res, err := db.ExecContext(ctx,
		"UPDATE drivers SET lat = ?, lon = ?, location_at = ? WHERE id = ?",
		lat, lon, at, id,
	)
	if err != nil {
		return domain.InternalError{Msg: "update location", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

func setStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	res, err := db.ExecContext(ctx, "UPDATE drivers SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return domain.InternalError{Msg: "update status", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

func insertOffers(ctx context.Context, db *sql.DB, offers []DispatchOffer) error {
	if len(offers) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return domain.InternalError{Msg: "begin offers tx", Err: err}
	}
	for _, o := range offers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dispatch_offers (offer_uid, trip_id, driver_id, distance_km, offered_at)
			VALUES (?, ?, ?, ?, ?)`,
			o.OfferUID, o.TripID, o.DriverID, o.DistanceKm, o.OfferedAt,
		); err != nil {
			_ = tx.Rollback()
			return domain.InternalError{Msg: "insert offer", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Msg: "commit offers", Err: err}
	}
	return nil
}
