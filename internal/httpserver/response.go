package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakeshop/internal/domain"
)

// Every response is enveloped: {"success": true, "data": ...} or
// {"success": false, "error": "..."}.

func respondOK(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "error": msg})
}

// respondServiceError maps domain errors onto the HTTP taxonomy:
// validation 400, not-found 404, merge already running 409, identifier
// collision 500 (data-integrity incident, already logged by the service),
// anything else is a transient store failure surfaced as 502.
func respondServiceError(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "order not found")
	case errors.Is(err, domain.ErrMergeInProgress):
		respondError(c, http.StatusConflict, "cart merge already in progress")
	case errors.Is(err, domain.ErrOrderExists):
		respondError(c, http.StatusInternalServerError, "order could not be committed")
	default:
		logger.Printf("store error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusBadGateway, "store unavailable, please retry")
	}
}
