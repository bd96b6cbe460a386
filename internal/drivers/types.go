// Package drivers owns driver accounts, their live location/availability,
// and the dispatch offers recorded when a trip is requested nearby.
package drivers

import "rideshare/internal/schema"

// Driver statuses.
const (
	StatusOffline   = "offline"
	StatusAvailable = "available"
	StatusOnTrip    = "on_trip"
)

type Driver struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Status       string  `json:"status"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	LocationAt   string  `json:"location_at"`
	CreatedAt    string  `json:"created_at"`
	PasswordHash string  `json:"-"`
}

// DispatchOffer records that a driver was notified about a requested trip.
type DispatchOffer struct {
	ID         int64   `json:"id"`
	OfferUID   string  `json:"offer_uid"`
	TripID     int64   `json:"trip_id"`
	DriverID   int64   `json:"driver_id"`
	DistanceKm float64 `json:"distance_km"`
	OfferedAt  string  `json:"offered_at"`
}

// Object declares the drivers table.
func Object() schema.Object {
	return schema.Object{
		Name: "drivers",
		Fields: []schema.Field{
			{Label: "id", Type: schema.TypeInt, Primary: true, AutoIncrement: true},
			{Label: "name", Type: schema.TypeText, Required: true},
			{Label: "email", Type: schema.TypeText, Required: true},
			{Label: "phone", Type: schema.TypeText},
			{Label: "status", Type: schema.TypeText, Required: true, Validate: validStatus},
			{Label: "lat", Type: schema.TypeReal},
			{Label: "lon", Type: schema.TypeReal},
			{Label: "location_at", Type: schema.TypeDateTime},
			{Label: "password_hash", Type: schema.TypeText, Required: true},
			{Label: "created_at", Type: schema.TypeDateTime, Required: true},
		},
	}
}

// OfferObject declares dispatch_offers. Registered after the trips table
// because of the foreign key.
func OfferObject() schema.Object {
	return schema.Object{
		Name: "dispatch_offers",
		Fields: []schema.Field{
			{Label: "id", Type: schema.TypeInt, Primary: true, AutoIncrement: true},
			{Label: "offer_uid", Type: schema.TypeText, Required: true},
			{Label: "trip_id", Type: schema.TypeInt, Required: true, Refers: "trips.id"},
			{Label: "driver_id", Type: schema.TypeInt, Required: true, Refers: "drivers.id"},
			{Label: "distance_km", Type: schema.TypeReal, Required: true},
			{Label: "offered_at", Type: schema.TypeDateTime, Required: true},
		},
	}
}

func validStatus(v any) error {
	switch v.(string) {
	case StatusOffline, StatusAvailable, StatusOnTrip:
		return nil
	}
	return errInvalidStatus
}
