package trips

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"rideshare/internal/domain"
	"rideshare/internal/utils"
)

var errInvalidStatus = errors.New("unknown trip status")

// Fare parameters, in cents.
const (
	BaseFareCents = 250
	PerKmCents    = 120
	MinFareCents  = 500
)

// MinStops is the smallest route a trip may have: pickup and dropoff.
const MinStops = 2

// StopInput is a requested stop before persistence assigns ids.
type StopInput struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// transitions holds the allowed status graph.
var transitions = map[string][]string{
	StatusRequested:  {StatusAccepted, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether a status change is allowed.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionError builds the uniform conflict error for a bad transition.
func TransitionError(from, to string) error {
	return domain.ConflictError{
		Resource: "trip",
		Msg:      fmt.Sprintf("cannot go from %s to %s", from, to),
	}
}

// ValidateStops enforces the route invariant: at least two stops, every
// stop labelled and inside coordinate bounds. Pure.
func ValidateStops(stops []StopInput) error {
	if len(stops) < MinStops {
		return domain.ValidationError{Field: "stops", Msg: "a trip needs a pickup and a dropoff"}
	}
	for i, s := range stops {
		if strings.TrimSpace(s.Label) == "" {
			return domain.ValidationError{Field: fmt.Sprintf("stops[%d].label", i), Msg: "required"}
		}
		if !utils.ValidCoordinate(s.Lat, s.Lon) {
			return domain.ValidationError{Field: fmt.Sprintf("stops[%d]", i), Msg: "coordinates out of range"}
		}
	}
	return nil
}

// RouteKm sums leg distances over the requested stops. Pure.
func RouteKm(stops []StopInput) float64 {
	points := make([]utils.Point, len(stops))
	for i, s := range stops {
		points[i] = utils.Point{Lat: s.Lat, Lon: s.Lon}
	}
	return utils.RouteKm(points)
}

// EstimateFare prices a route: base plus per-km, floored at the minimum.
// Pure; rounding is to the nearest cent.
func EstimateFare(distanceKm float64) int64 {
	fare := int64(BaseFareCents) + int64(math.Round(distanceKm*PerKmCents))
	if fare < MinFareCents {
		return MinFareCents
	}
	return fare
}

// Pickup returns the first stop of a loaded trip.
func Pickup(t Trip) (Stop, bool) {
	if len(t.Stops) == 0 {
		return Stop{}, false
	}
	return t.Stops[0], true
}

// Dropoff returns the last stop of a loaded trip.
func Dropoff(t Trip) (Stop, bool) {
	if len(t.Stops) == 0 {
		return Stop{}, false
	}
	return t.Stops[len(t.Stops)-1], true
}
