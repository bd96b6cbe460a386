package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/http/middleware"
	"rideshare/internal/trips"
)

type tripRequest struct {
	Stops []trips.StopInput `json:"stops"`
}

// POST /api/trips (rider)
func (a *API) RequestTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	in := trips.RequestInput{RiderID: middleware.UserID(c), Stops: req.Stops}
	t, err := a.tripEvents(c).RequestTrip(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GET /api/trips/:id
func (a *API) GetTrip(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	t, err := (trips.Queries{DB: a.DB}).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GET /api/trips?status=
func (a *API) ListTrips(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = trips.StatusRequested
	}
	list, err := (trips.Queries{DB: a.DB}).ListByStatus(c.Request.Context(), status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": list})
}

// POST /api/trips/:id/accept (driver)
func (a *API) AcceptTrip(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	t, err := a.tripEvents(c).AcceptTrip(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (a *API) tripTransition(c *gin.Context, op func(trips.Events) (trips.Trip, error)) {
	t, err := op(a.tripEvents(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// POST /api/trips/:id/start (driver)
func (a *API) StartTrip(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	a.tripTransition(c, func(e trips.Events) (trips.Trip, error) {
		return e.StartTrip(c.Request.Context(), id)
	})
}

// POST /api/trips/:id/complete (driver)
func (a *API) CompleteTrip(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	a.tripTransition(c, func(e trips.Events) (trips.Trip, error) {
		return e.CompleteTrip(c.Request.Context(), id)
	})
}

// POST /api/trips/:id/cancel (rider or driver)
func (a *API) CancelTrip(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	a.tripTransition(c, func(e trips.Events) (trips.Trip, error) {
		return e.CancelTrip(c.Request.Context(), id)
	})
}
