package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
)

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
