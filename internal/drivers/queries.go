package drivers

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/utils"
)

type Queries struct {
	DB *sql.DB
}

const driverColumns = "id, name, email, COALESCE(phone,''), status, COALESCE(lat,0), COALESCE(lon,0), COALESCE(location_at,''), created_at, password_hash"

func scanDriver(row *sql.Row) (Driver, error) {
	var d Driver
	err := row.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.Status, &d.Lat, &d.Lon, &d.LocationAt, &d.CreatedAt, &d.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Driver{}, domain.NotFoundError{Resource: "driver", Err: err}
	}
	if err != nil {
		return Driver{}, domain.InternalError{Msg: "query driver", Err: err}
	}
	return d, nil
}

func (q Queries) GetByID(ctx context.Context, id int64) (Driver, error) {
	row := q.DB.QueryRowContext(ctx, "SELECT "+driverColumns+" FROM drivers WHERE id = ?", id)
	return scanDriver(row)
}

func (q Queries) GetByEmail(ctx context.Context, email string) (Driver, error) {
	row := q.DB.QueryRowContext(ctx, "SELECT "+driverColumns+" FROM drivers WHERE email = ?", email)
	return scanDriver(row)
}

// IsAvailable reports whether the driver exists and is currently available.
func (q Queries) IsAvailable(ctx context.Context, id int64) (bool, error) {
	var status string
	err := q.DB.QueryRowContext(ctx, "SELECT status FROM drivers WHERE id = ?", id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.NotFoundError{Resource: "driver", Err: err}
	}
	if err != nil {
		return false, domain.InternalError{Msg: "query driver status", Err: err}
	}
	return status == StatusAvailable, nil
}

// AvailableWithFreshLocation loads every available driver whose last
// location update is no older than ttl. Distance ranking happens in pure
// logic; this only narrows the candidate set.
func (q Queries) AvailableWithFreshLocation(ctx context.Context, now time.Time, ttl time.Duration) ([]Driver, error) {
	cutoff := utils.FormatDateTime(now.Add(-ttl))
	rows, err := q.DB.QueryContext(ctx, `
		SELECT `+driverColumns+`
		FROM drivers
		WHERE status = ? AND location_at IS NOT NULL AND location_at >= ?
		ORDER BY id ASC`,
		StatusAvailable, cutoff,
	)
	if err != nil {
		return nil, domain.InternalError{Msg: "query available drivers", Err: err}
	}
	defer rows.Close()

	out := []Driver{}
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.Status, &d.Lat, &d.Lon, &d.LocationAt, &d.CreatedAt, &d.PasswordHash); err != nil {
			return nil, domain.InternalError{Msg: "scan driver", Err: err}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate drivers", Err: err}
	}
	return out, nil
}

func (q Queries) offers(ctx context.Context, where string, arg any) ([]DispatchOffer, error) {
	rows, err := q.DB.QueryContext(ctx, `
		SELECT id, offer_uid, trip_id, driver_id, distance_km, offered_at
		FROM dispatch_offers
		WHERE `+where+`
		ORDER BY distance_km ASC, id ASC`, arg)
	if err != nil {
		return nil, domain.InternalError{Msg: "query offers", Err: err}
	}
	defer rows.Close()

	out := []DispatchOffer{}
	for rows.Next() {
		var o DispatchOffer
		if err := rows.Scan(&o.ID, &o.OfferUID, &o.TripID, &o.DriverID, &o.DistanceKm, &o.OfferedAt); err != nil {
			return nil, domain.InternalError{Msg: "scan offer", Err: err}
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate offers", Err: err}
	}
	return out, nil
}

// OffersByTrip lists dispatch offers recorded for a trip, closest first.
func (q Queries) OffersByTrip(ctx context.Context, tripID int64) ([]DispatchOffer, error) {
	return q.offers(ctx, "trip_id = ?", tripID)
}

// OffersByDriver lists offers made to a driver, closest first.
func (q Queries) OffersByDriver(ctx context.Context, driverID int64) ([]DispatchOffer, error) {
	return q.offers(ctx, "driver_id = ?", driverID)
}
