package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zapshift/zapshift-server/internal/middleware"
	"github.com/zapshift/zapshift-server/internal/store"
)

// RegisterFCMToken stores the caller's push token on their user record so
// rider-approval notifications reach their device.
func RegisterFCMToken(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.EmailKey)

		var input struct {
			FCMToken string `json:"fcmToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		modified, err := users.UpdateFCMToken(c.Request.Context(), email, input.FCMToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register FCM token"})
			return
		}
		if modified == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "FCM token registered successfully"})
	}
}
