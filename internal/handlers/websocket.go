package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zapshift/zapshift-server/internal/middleware"
	"github.com/zapshift/zapshift-server/internal/services"
)

// WebSocketHandler upgrades the connection and registers it under the
// caller's verified email.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.EmailKey)
		services.HandleWebSocket(hub, c.Writer, c.Request, email)
	}
}
