package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zapshift/zapshift-server/internal/middleware"
	"github.com/zapshift/zapshift-server/internal/models"
	"github.com/zapshift/zapshift-server/internal/services"
	"github.com/zapshift/zapshift-server/internal/store"
	"github.com/zapshift/zapshift-server/pkg/utils"
)

// ListPayments returns payment records. Callers may only ask for their own
// email; the filter must match the verified token.
func ListPayments(payments store.PaymentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")

		if email != "" && email != c.GetString(middleware.EmailKey) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden access"})
			return
		}

		result, err := payments.List(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func clientDomain() string {
	domain := os.Getenv("CLIENT_DOMAIN")
	if domain == "" {
		domain = "http://localhost:5173"
	}
	return domain
}

// CreateCheckoutSession asks the payment provider for a hosted checkout page
// priced from the parcel record. The parcel itself is not touched; it only
// changes once the session is resolved as paid.
func CreateCheckoutSession(parcels store.ParcelStore, provider services.CheckoutProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ParcelID uint `json:"parcelId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()

		parcel, err := parcels.Get(ctx, input.ParcelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch parcel"})
			return
		}
		if parcel == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Parcel not found"})
			return
		}

		cost, err := strconv.ParseFloat(parcel.Cost, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parcel cost"})
			return
		}

		name := parcel.Title
		if name == "" {
			name = fmt.Sprintf("Parcel delivery #%d", parcel.ID)
		}

		domain := clientDomain()
		session, err := provider.CreateSession(ctx, services.CheckoutParams{
			CustomerEmail: parcel.SenderEmail,
			ProductName:   name,
			UnitAmount:    int64(cost * 100),
			ParcelID:      strconv.FormatUint(uint64(parcel.ID), 10),
			SuccessURL:    domain + "/dashboard/success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:     domain + "/cancel",
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": session.URL})
	}
}

// SessionStatus is polled by the client after the checkout redirect. It
// retrieves the session, records the payment exactly once per transaction id,
// and on a paid session stamps the parcel with its tracking id.
func SessionStatus(parcels store.ParcelStore, payments store.PaymentStore, provider services.CheckoutProvider, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		ctx := c.Request.Context()

		session, err := provider.RetrieveSession(ctx, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Candidate code for this resolution; an already-stamped parcel keeps
		// its original one below.
		trackingID := utils.GenerateTrackingID()

		parcelID64, _ := strconv.ParseUint(session.Metadata["parcelId"], 10, 32)
		parcelID := uint(parcelID64)

		existing, err := payments.FindByTransactionID(ctx, session.TransactionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up payment"})
			return
		}
		if existing == nil {
			payment := models.Payment{
				Status:        session.PaymentStatus,
				Amount:        session.AmountTotal,
				Date:          time.Now(),
				TransactionID: session.TransactionID,
				ParcelID:      parcelID,
				Email:         session.CustomerEmail,
			}
			if err := payments.Create(ctx, &payment); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
				return
			}
		}

		response := gin.H{
			"id":            session.ID,
			"url":           session.URL,
			"paymentStatus": session.PaymentStatus,
			"transactionId": session.TransactionID,
			"amountTotal":   session.AmountTotal,
			"customerEmail": session.CustomerEmail,
			"metadata":      session.Metadata,
		}

		if session.PaymentStatus == models.PaymentStatusPaid {
			parcel, err := parcels.Get(ctx, parcelID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch parcel"})
				return
			}
			// Tracking ids are assigned exactly once: a re-poll of an already
			// paid session returns the stored code instead of re-stamping.
			if parcel != nil && parcel.TrackingID != "" {
				trackingID = parcel.TrackingID
			}

			if _, err := parcels.MarkPaid(ctx, parcelID, time.Now(), session.TransactionID, trackingID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update parcel"})
				return
			}

			hub.SendParcelPaid(session.CustomerEmail, services.ParcelPaid{
				ParcelID:      parcelID,
				TrackingID:    trackingID,
				TransactionID: session.TransactionID,
			})

			response["trackingId"] = trackingID
		}

		c.JSON(http.StatusOK, response)
	}
}
