package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/http/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/auth/login
// Role selects the account table: "rider" (default) or "driver".
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		userID int64
		role   string
		name   string
	)
	switch req.Role {
	case "", middleware.RoleRider:
		r, err := a.riderEvents(c).Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		userID, role, name = r.ID, middleware.RoleRider, r.Name
	case middleware.RoleDriver:
		d, err := a.driverEvents(c).Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		userID, role, name = d.ID, middleware.RoleDriver, d.Name
	default:
		RespondError(c, http.StatusBadRequest, "validation_error", "role must be rider or driver")
		return
	}

	token, err := middleware.IssueToken(a.Cfg.JWTSecret(), userID, role, a.Cfg.JWT.TTL)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal_error", "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": userID, "name": name, "role": role},
	})
}
