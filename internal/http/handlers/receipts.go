package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/receipt
func (a *API) TripReceipt(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	pdf, filename, err := a.docsService(c).Receipt(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
