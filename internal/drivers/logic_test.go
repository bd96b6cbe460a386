package drivers

import (
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/utils"
)

func TestValidateRegistration(t *testing.T) {
	ok := RegisterInput{Name: "Dana", Email: "dana@example.com", Password: "hunter2hunter2"}
	if err := ValidateRegistration(ok); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"blank name", RegisterInput{Email: "d@x.com", Password: "hunter2hunter2"}},
		{"no at sign", RegisterInput{Name: "Dana", Email: "dana.example.com", Password: "hunter2hunter2"}},
		{"short password", RegisterInput{Name: "Dana", Email: "d@x.com", Password: "short"}},
	}
	for _, c := range cases {
		err := ValidateRegistration(c.in)
		if !domain.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", c.name, err)
		}
	}
}

func TestValidateLocation(t *testing.T) {
	if err := ValidateLocation(52.52, 13.405); err != nil {
		t.Fatalf("valid location rejected: %v", err)
	}
	if err := ValidateLocation(91, 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []string{StatusOffline, StatusAvailable, StatusOnTrip} {
		if err := ValidateStatus(s); err != nil {
			t.Errorf("%s rejected: %v", s, err)
		}
	}
	if err := ValidateStatus("parked"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRankNearbyFiltersAndSorts(t *testing.T) {
	pickup := utils.Point{Lat: 52.5200, Lon: 13.4050}
	candidates := []Driver{
		{ID: 1, Lat: 52.5300, Lon: 13.4050}, // ~1.1 km north
		{ID: 2, Lat: 52.5210, Lon: 13.4060}, // a few hundred meters
		{ID: 3, Lat: 48.1374, Lon: 11.5755}, // Munich, way out of range
	}

	ranked := RankNearby(candidates, pickup, 5, 10)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 in range, got %d", len(ranked))
	}
	if ranked[0].Driver.ID != 2 || ranked[1].Driver.ID != 1 {
		t.Fatalf("wrong order: %d then %d", ranked[0].Driver.ID, ranked[1].Driver.ID)
	}
	if ranked[0].DistanceKm >= ranked[1].DistanceKm {
		t.Fatalf("distances not ascending: %f then %f", ranked[0].DistanceKm, ranked[1].DistanceKm)
	}
}

func TestRankNearbyLimit(t *testing.T) {
	pickup := utils.Point{Lat: 52.5200, Lon: 13.4050}
	candidates := []Driver{
		{ID: 1, Lat: 52.5210, Lon: 13.4050},
		{ID: 2, Lat: 52.5220, Lon: 13.4050},
		{ID: 3, Lat: 52.5230, Lon: 13.4050},
	}
	ranked := RankNearby(candidates, pickup, 5, 2)
	if len(ranked) != 2 {
		t.Fatalf("limit not applied, got %d", len(ranked))
	}
}

func TestRankNearbyTiesBreakOnID(t *testing.T) {
	pickup := utils.Point{Lat: 52.5200, Lon: 13.4050}
	candidates := []Driver{
		{ID: 9, Lat: 52.5210, Lon: 13.4050},
		{ID: 4, Lat: 52.5210, Lon: 13.4050},
	}
	ranked := RankNearby(candidates, pickup, 5, 10)
	if ranked[0].Driver.ID != 4 {
		t.Fatalf("tie should go to lower id, got %d first", ranked[0].Driver.ID)
	}
}
