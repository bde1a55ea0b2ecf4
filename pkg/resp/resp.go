package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func ValidationFailed(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "fieldErrors": fieldErrors})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"ok": false, "error": msg})
}

// ServerError hides the underlying error from the client; detail goes to
// the server log only.
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
}

// BadGateway covers upstream gateway failures.
func BadGateway(c *gin.Context) {
	c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "upstream service unavailable"})
}

// ConfigError marks an endpoint whose gateway key was never configured.
func ConfigError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": msg})
}
