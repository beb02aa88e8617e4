package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/lottery-server/internal/model"
)

// Origin stores the client address in the request context for audit events.
func Origin(c *gin.Context) {
	c.Request = c.Request.WithContext(model.WithOrigin(c.Request.Context(), c.ClientIP()))
	c.Next()
}
