// Package trips owns the trip lifecycle: request, dispatch acceptance,
// progress and settlement. A trip is an ordered list of stops; the first
// stop is the pickup and the last the dropoff.
package trips

import "rideshare/internal/schema"

// Trip statuses.
const (
	StatusRequested  = "requested"
	StatusAccepted   = "accepted"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Trip struct {
	ID          int64   `json:"id"`
	RiderID     int64   `json:"rider_id"`
	DriverID    int64   `json:"driver_id,omitempty"`
	Status      string  `json:"status"`
	DistanceKm  float64 `json:"distance_km"`
	FareAmount  int64   `json:"fare_amount"`
	RequestedAt string  `json:"requested_at"`
	AcceptedAt  string  `json:"accepted_at,omitempty"`
	StartedAt   string  `json:"started_at,omitempty"`
	CompletedAt string  `json:"completed_at,omitempty"`
	CancelledAt string  `json:"cancelled_at,omitempty"`
	Stops       []Stop  `json:"stops,omitempty"`
}

type Stop struct {
	ID     int64   `json:"id"`
	TripID int64   `json:"trip_id"`
	Seq    int     `json:"seq"`
	Label  string  `json:"label"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Object declares the trips table.
func Object() schema.Object {
	return schema.Object{
		Name: "trips",
		Fields: []schema.Field{
			{Label: "id", Type: schema.TypeInt, Primary: true, AutoIncrement: true},
			{Label: "rider_id", Type: schema.TypeInt, Required: true, Refers: "riders.id"},
			{Label: "driver_id", Type: schema.TypeInt, Refers: "drivers.id"},
			{Label: "status", Type: schema.TypeText, Required: true, Validate: validStatus},
			{Label: "distance_km", Type: schema.TypeReal, Required: true},
			{Label: "fare_amount", Type: schema.TypeInt, Required: true},
			{Label: "requested_at", Type: schema.TypeDateTime, Required: true},
			{Label: "accepted_at", Type: schema.TypeDateTime},
			{Label: "started_at", Type: schema.TypeDateTime},
			{Label: "completed_at", Type: schema.TypeDateTime},
			{Label: "cancelled_at", Type: schema.TypeDateTime},
		},
	}
}

// StopObject declares the stops table.
func StopObject() schema.Object {
	return schema.Object{
		Name: "stops",
		Fields: []schema.Field{
			{Label: "id", Type: schema.TypeInt, Primary: true, AutoIncrement: true},
			{Label: "trip_id", Type: schema.TypeInt, Required: true, Refers: "trips.id"},
			{Label: "seq", Type: schema.TypeInt, Required: true},
			{Label: "label", Type: schema.TypeText, Required: true},
			{Label: "lat", Type: schema.TypeReal, Required: true},
			{Label: "lon", Type: schema.TypeReal, Required: true},
		},
	}
}

func validStatus(v any) error {
	switch v.(string) {
	case StatusRequested, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return nil
	}
	return errInvalidStatus
}
