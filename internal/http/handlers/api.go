// Package handlers keeps the HTTP surface thin: bind the request, call the
// owning module's events layer, serialize the result.
package handlers

import (
	"context"
	"database/sql"

	"github.com/gin-gonic/gin"

	"rideshare/internal/bus"
	"rideshare/internal/config"
	"rideshare/internal/docs"
	"rideshare/internal/drivers"
	"rideshare/internal/http/middleware"
	"rideshare/internal/riders"
	"rideshare/internal/trips"
)

// API bundles the shared dependencies handlers need.
type API struct {
	DB  *sql.DB
	Bus *bus.Bus
	Cfg config.Config
}

func (a *API) riderEvents(c *gin.Context) riders.Events {
	return riders.Events{DB: a.DB, Bus: a.Bus, RequestID: middleware.GetRequestID(c)}
}

func (a *API) driverEvents(c *gin.Context) drivers.Events {
	return drivers.Events{DB: a.DB, Bus: a.Bus, RequestID: middleware.GetRequestID(c)}
}

func (a *API) tripEvents(c *gin.Context) trips.Events {
	riderQ := riders.Queries{DB: a.DB}
	driverQ := drivers.Queries{DB: a.DB}
	return trips.Events{
		DB:        a.DB,
		Bus:       a.Bus,
		RequestID: middleware.GetRequestID(c),
		RiderExists: func(ctx context.Context, riderID int64) (bool, error) {
			return riderQ.Exists(ctx, riderID)
		},
		DriverAvailable: func(ctx context.Context, driverID int64) (bool, error) {
			return driverQ.IsAvailable(ctx, driverID)
		},
	}
}

func (a *API) docsService(c *gin.Context) docs.Service {
	return docs.Service{DB: a.DB, RequestID: middleware.GetRequestID(c)}
}
