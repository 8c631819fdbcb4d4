package server

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jagmansidhu/DaRoommate/internal/apperr"
)

// fail writes a domain error with its mapped status. Unknown errors
// become opaque 500s; details go to the log, not the client.
func fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		var e *apperr.Error
		if !errors.As(err, &e) {
			slog.Error("internal error", "path", c.Request.URL.Path, "error", err)
			c.JSON(status, gin.H{"error": "internal error"})
			return
		}
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest writes a 400 for malformed request bodies.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// dollarsToCents converts a decimal dollar amount to integer cents,
// rounding to the nearest cent.
func dollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// centsToDollars renders integer cents as a decimal dollar amount.
func centsToDollars(cents int64) float64 {
	return float64(cents) / 100
}
