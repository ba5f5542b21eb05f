package handlers

import (
	"net/http"
	"strconv"

	"salonbook/models"
	"salonbook/services/confirmation"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConfirmationHandler serves the confirmed-bookings store.
type ConfirmationHandler struct {
	Service confirmation.ConfirmationService
}

// ConfirmHandler handles POST /confirm.
func (h *ConfirmationHandler) ConfirmHandler(c *gin.Context) {
	var req models.ConfirmRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.Service.Confirm(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking_id": result.BookingID, "booking": result.Booking})
}

func (h *ConfirmationHandler) ActiveBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ActiveBookings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *ConfirmationHandler) UserBookingsHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	bookings, err := h.Service.UserBookings(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *ConfirmationHandler) MasterBookingsHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	bookings, err := h.Service.MasterBookings(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// LookupHandler handles GET /booking_lookup?user_id&master_id&date&time.
func (h *ConfirmationHandler) LookupHandler(c *gin.Context) {
	userID, _ := strconv.Atoi(c.Query("user_id"))
	masterID, _ := strconv.Atoi(c.Query("master_id"))
	claim := models.SlotClaim{ClaimantID: userID, MasterID: masterID, Date: c.Query("date"), Time: c.Query("time")}

	b, err := h.Service.Lookup(c.Request.Context(), claim)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if b == nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": true, "booking_id": b.ID})
}

// CancelHandler handles DELETE /cancel_booking/:id.
func (h *ConfirmationHandler) CancelHandler(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	b, err := h.Service.Cancel(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Booking cancelled", zap.Int64("bookingId", id))
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}
