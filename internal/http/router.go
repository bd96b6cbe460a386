// Package api assembles the gin engine: middleware chain, routes, and the
// per-request wiring of module event layers.
package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rideshare/internal/http/handlers"
	"rideshare/internal/http/middleware"
)

// NewRouter builds the engine around an assembled API.
func NewRouter(a *handlers.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware(a))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := a.Cfg.JWTSecret()
	authed := middleware.RequireAuth(secret)
	riderOnly := middleware.RequireRole(middleware.RoleRider)
	driverOnly := middleware.RequireRole(middleware.RoleDriver)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", a.Health)
		apiGroup.GET("/db-check", a.DBCheck)

		auth := apiGroup.Group("/auth")
		auth.POST("/login", a.Login)

		riders := apiGroup.Group("/riders")
		riders.POST("", a.RegisterRider)
		riders.GET("/me", authed, riderOnly, a.GetRiderProfile)
		riders.GET("/me/trips", authed, riderOnly, a.RiderTrips)

		drivers := apiGroup.Group("/drivers")
		drivers.POST("", a.RegisterDriver)
		drivers.GET("/nearby", a.NearbyDrivers)
		drivers.PUT("/me/location", authed, driverOnly, a.UpdateDriverLocation)
		drivers.PUT("/me/availability", authed, driverOnly, a.SetDriverAvailability)
		drivers.GET("/me/offers", authed, driverOnly, a.DriverOffers)
		drivers.GET("/me/trips", authed, driverOnly, a.DriverTrips)

		trips := apiGroup.Group("/trips")
		trips.POST("", authed, riderOnly, a.RequestTrip)
		trips.GET("", authed, a.ListTrips)
		trips.GET("/:id", authed, a.GetTrip)
		trips.POST("/:id/accept", authed, driverOnly, a.AcceptTrip)
		trips.POST("/:id/start", authed, driverOnly, a.StartTrip)
		trips.POST("/:id/complete", authed, driverOnly, a.CompleteTrip)
		trips.POST("/:id/cancel", authed, a.CancelTrip)
		trips.GET("/:id/receipt", authed, a.TripReceipt)
	}

	return r
}

func corsMiddleware(a *handlers.API) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:     a.Cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	return cors.New(cfg)
}
