package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func (a *API) DBCheck(c *gin.Context) {
	if a.DB == nil {
		RespondError(c, http.StatusInternalServerError, "internal_error", "database not connected")
		return
	}
	var count int
	if err := a.DB.QueryRowContext(c.Request.Context(), "SELECT COUNT(*) FROM riders").Scan(&count); err != nil {
		RespondError(c, http.StatusInternalServerError, "internal_error", "database query failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "riders_in_db": count})
}
