package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zapshift/zapshift-server/internal/models"
	"github.com/zapshift/zapshift-server/internal/store"
)

// ListParcels returns all parcels, newest first, optionally restricted to a
// sender email.
func ListParcels(parcels store.ParcelStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")

		result, err := parcels.List(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list parcels"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func GetParcel(parcels store.ParcelStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parcel ID"})
			return
		}

		parcel, err := parcels.Get(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch parcel"})
			return
		}
		if parcel == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Parcel not found"})
			return
		}

		c.JSON(http.StatusOK, parcel)
	}
}

// CreateParcel stores the booking as submitted. Beyond defaulting the payment
// status there is no server-side validation; the client owns the form.
func CreateParcel(parcels store.ParcelStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var parcel models.Parcel
		if err := c.ShouldBindJSON(&parcel); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		parcel.ID = 0
		parcel.CreatedAt = time.Now()
		if parcel.PaymentStatus == "" {
			parcel.PaymentStatus = models.PaymentStatusUnpaid
		}

		if err := parcels.Create(c.Request.Context(), &parcel); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create parcel"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"insertedId": parcel.ID})
	}
}

func DeleteParcel(parcels store.ParcelStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parcel ID"})
			return
		}

		deleted, err := parcels.Delete(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete parcel"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
	}
}
