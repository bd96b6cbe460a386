package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/http/middleware"
	"rideshare/internal/riders"
	"rideshare/internal/trips"
)

// POST /api/riders
func (a *API) RegisterRider(c *gin.Context) {
	var in riders.RegisterInput
	if !BindJSONOrError(c, &in) {
		return
	}
	r, err := a.riderEvents(c).Register(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GET /api/riders/me
func (a *API) GetRiderProfile(c *gin.Context) {
	r, err := (riders.Queries{DB: a.DB}).GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// GET /api/riders/me/trips
func (a *API) RiderTrips(c *gin.Context) {
	list, err := (trips.Queries{DB: a.DB}).ListByRider(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": list})
}
