package drivers

import (
	"errors"
	"sort"
	"strings"

	"rideshare/internal/domain"
	"rideshare/internal/utils"
)

var errInvalidStatus = errors.New("status must be offline, available or on_trip")

// RegisterInput is the pre-loaded context for a driver registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ValidateRegistration mirrors the rider rules; pure.
func ValidateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	email := strings.TrimSpace(in.Email)
	at := strings.Index(email, "@")
	if email == "" || at <= 0 || at == len(email)-1 {
		return domain.ValidationError{Field: "email", Msg: "not a valid address"}
	}
	if len(in.Password) < 8 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	return nil
}

// ValidateLocation checks a location update; pure.
func ValidateLocation(lat, lon float64) error {
	if !utils.ValidCoordinate(lat, lon) {
		return domain.ValidationError{Field: "location", Msg: "coordinates out of range"}
	}
	return nil
}

// ValidateStatus checks an availability change; pure.
func ValidateStatus(status string) error {
	if err := validStatus(status); err != nil {
		return domain.ValidationError{Field: "status", Msg: err.Error()}
	}
	return nil
}

// Nearby is a ranked candidate for a dispatch offer.
type Nearby struct {
	Driver     Driver
	DistanceKm float64
}

// RankNearby filters candidates to those within radiusKm of pickup and
// returns the closest first, at most limit entries. Pure: candidates are
// the pre-loaded context; staleness filtering happens in the query.
func RankNearby(candidates []Driver, pickup utils.Point, radiusKm float64, limit int) []Nearby {
	out := []Nearby{}
	for _, d := range candidates {
		dist := utils.HaversineKm(utils.Point{Lat: d.Lat, Lon: d.Lon}, pickup)
		if dist > radiusKm {
			continue
		}
		out = append(out, Nearby{Driver: d, DistanceKm: dist})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].Driver.ID < out[j].Driver.ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
