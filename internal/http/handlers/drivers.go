package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rideshare/internal/drivers"
	"rideshare/internal/http/middleware"
	"rideshare/internal/trips"
	"rideshare/internal/utils"
)

// POST /api/drivers
func (a *API) RegisterDriver(c *gin.Context) {
	var in drivers.RegisterInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := a.driverEvents(c).Register(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PUT /api/drivers/me/location
func (a *API) UpdateDriverLocation(c *gin.Context) {
	var req locationRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := a.driverEvents(c).UpdateLocation(c.Request.Context(), middleware.UserID(c), req.Lat, req.Lon); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type availabilityRequest struct {
	Status string `json:"status"`
}

// PUT /api/drivers/me/availability
func (a *API) SetDriverAvailability(c *gin.Context) {
	var req availabilityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := a.driverEvents(c).SetAvailability(c.Request.Context(), middleware.UserID(c), req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// GET /api/drivers/me/offers
func (a *API) DriverOffers(c *gin.Context) {
	offers, err := (drivers.Queries{DB: a.DB}).OffersByDriver(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// GET /api/drivers/me/trips
func (a *API) DriverTrips(c *gin.Context) {
	list, err := (trips.Queries{DB: a.DB}).ListByDriver(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": list})
}

// GET /api/drivers/nearby?lat=&lon=
func (a *API) NearbyDrivers(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil || !utils.ValidCoordinate(lat, lon) {
		RespondError(c, http.StatusBadRequest, "validation_error", "lat and lon query params required")
		return
	}

	q := drivers.Queries{DB: a.DB}
	candidates, err := q.AvailableWithFreshLocation(c.Request.Context(), utils.NowUTC(), a.Cfg.Dispatch.LocationTTL)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	ranked := drivers.RankNearby(candidates, utils.Point{Lat: lat, Lon: lon}, a.Cfg.Dispatch.RadiusKm, a.Cfg.Dispatch.MaxOffers)
	out := make([]gin.H, 0, len(ranked))
	for _, n := range ranked {
		out = append(out, gin.H{
			"driver_id":   n.Driver.ID,
			"name":        n.Driver.Name,
			"distance_km": n.DistanceKm,
		})
	}
	c.JSON(http.StatusOK, gin.H{"drivers": out})
}
