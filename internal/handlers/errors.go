package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends the failure JSON shape the form front ends expect and
// attaches the error to the gin context for the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondInternalError reports a downstream failure; the description goes
// into the error field for diagnostics.
func respondInternalError(c *gin.Context, err error) {
	attachError(c, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}
