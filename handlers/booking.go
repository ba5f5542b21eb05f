package handlers

import (
	"context"
	"net/http"
	"strings"

	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking orchestrator.
type BookingHandler struct {
	Service booking.BookingService
}

// bookingInput accepts both naming schemes the clients use.
type bookingInput struct {
	ClaimantID int    `json:"claimant_id"`
	UserID     int    `json:"user_id"`
	ResourceID int    `json:"resource_id"`
	MasterID   int    `json:"master_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

func (in bookingInput) request() models.BookingRequest {
	return models.BookingRequest{
		ClaimantID: firstNonZero(in.ClaimantID, in.UserID),
		MasterID:   firstNonZero(in.ResourceID, in.MasterID),
		Date:       strings.TrimSpace(in.Date),
		Time:       strings.TrimSpace(in.Time),
	}
}

// BookHandler handles POST /book.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	h.book(c, h.Service.Book)
}

// QuickBookHandler handles POST /quick_book.
func (h *BookingHandler) QuickBookHandler(c *gin.Context) {
	h.book(c, h.Service.QuickBook)
}

func (h *BookingHandler) book(c *gin.Context, run func(context.Context, models.BookingRequest) (*models.BookingOutcome, error)) {
	var input bookingInput
	if !bindJSON(c, &input) {
		return
	}
	req := input.request()

	outcome, err := run(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Warn("Booking attempt failed",
			zap.Int("userId", req.ClaimantID), zap.Int("masterId", req.MasterID),
			zap.String("date", req.Date), zap.String("time", req.Time), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	respondOutcome(c, outcome)
}

func respondOutcome(c *gin.Context, outcome *models.BookingOutcome) {
	if outcome.Confirmed {
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"booking_id":    outcome.BookingID,
			"booking":       outcome.Booking,
			"resource_name": outcome.MasterName,
			"master_name":   outcome.MasterName,
			"message":       "Booking created",
		})
		return
	}

	alt := outcome.Alternatives
	body := gin.H{
		"success":     false,
		"code":        utils.KindConflict,
		"master_name": outcome.MasterName,
	}
	switch {
	case len(alt.Times) > 0:
		body["error"] = "Selected time is taken"
		body["message"] = "Available alternative times: " + strings.Join(alt.Times, ", ")
		body["alternative_times"] = alt.Times
	case len(alt.Dates) > 0:
		body["error"] = "No free slots on this day"
		body["message"] = "Try other dates"
		body["alternative_dates"] = alt.Dates
	default:
		body["error"] = "No free slots"
		body["message"] = "Please choose another date or master"
	}
	c.JSON(http.StatusConflict, body)
}

// CheckAvailabilityHandler handles GET /check_availability/:id/:date/:time.
func (h *BookingHandler) CheckAvailabilityHandler(c *gin.Context) {
	masterID, ok := intParam(c, "id")
	if !ok {
		return
	}
	check, err := h.Service.CheckAvailability(c.Request.Context(), masterID, c.Param("date"), c.Param("time"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"available":     check.Available,
		"resource_name": check.MasterName,
		"master_id":     check.MasterID,
		"master_name":   check.MasterName,
		"date":          check.Date,
		"time":          check.Time,
	})
}

// MasterAvailabilityHandler handles GET /resource_availability/:id.
func (h *BookingHandler) MasterAvailabilityHandler(c *gin.Context) {
	masterID, ok := intParam(c, "id")
	if !ok {
		return
	}
	availability, err := h.Service.MasterAvailability(c.Request.Context(), masterID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}
