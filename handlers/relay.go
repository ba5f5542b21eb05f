package handlers

import (
	"net/http"
	"strconv"
	"time"

	"salonbook/models"
	"salonbook/services/notification"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// RelayHandler serves the notification relay.
type RelayHandler struct {
	Service notification.RelayService
}

type subscriptionInput struct {
	UserID      int    `json:"user_id"`
	CallbackURL string `json:"callback_url"`
}

// SubscribeHandler handles POST /subscribe.
func (h *RelayHandler) SubscribeHandler(c *gin.Context) {
	var in subscriptionInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Service.Subscribe(c.Request.Context(), in.UserID, in.CallbackURL); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user_id": in.UserID, "message": "Subscribed successfully", "timestamp": time.Now().UTC()})
}

// UnsubscribeHandler handles POST /unsubscribe.
func (h *RelayHandler) UnsubscribeHandler(c *gin.Context) {
	var in subscriptionInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Service.Unsubscribe(c.Request.Context(), in.UserID, in.CallbackURL); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user_id": in.UserID, "message": "Unsubscribed successfully"})
}

type messageInput struct {
	UserID  int            `json:"user_id"`
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// SendHandler handles POST /send.
func (h *RelayHandler) SendHandler(c *gin.Context) {
	var in messageInput
	if !bindJSON(c, &in) {
		return
	}
	queued, err := h.Service.Send(c.Request.Context(), in.UserID, in.Type, in.Message, in.Data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user_id": in.UserID, "queued": queued, "message": "Message sent"})
}

// BroadcastHandler handles POST /broadcast.
func (h *RelayHandler) BroadcastHandler(c *gin.Context) {
	var in messageInput
	if !bindJSON(c, &in) {
		return
	}
	n, err := h.Service.Broadcast(c.Request.Context(), in.Type, in.Message, in.Data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipients": n, "message": "Broadcast sent"})
}

// PollHandler handles GET /poll/:id?timeout=<seconds>.
func (h *RelayHandler) PollHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	seconds, err := strconv.Atoi(c.DefaultQuery("timeout", "30"))
	if err != nil || seconds < 0 {
		utils.RespondError(c, utils.InvalidInput("invalid timeout"))
		return
	}

	msgs, err := h.Service.Poll(c.Request.Context(), id, time.Duration(seconds)*time.Second)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	body := gin.H{"success": true, "user_id": id, "messages": msgs, "timestamp": time.Now().UTC()}
	if len(msgs) == 0 {
		body["timeout"] = true
	}
	c.JSON(http.StatusOK, body)
}

// StatusHandler handles GET /status/:id.
func (h *RelayHandler) StatusHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	st, err := h.Service.Status(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":            id,
		"subscribed":         st.Subscribed,
		"pending_messages":   st.PendingMessages,
		"subscription_count": st.Subscriptions,
		"timestamp":          time.Now().UTC(),
	})
}

func (h *RelayHandler) StatsHandler(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// BookingCreatedHandler handles POST /booking_created.
func (h *RelayHandler) BookingCreatedHandler(c *gin.Context) {
	var e models.BookingCreatedEvent
	if !bindJSON(c, &e) {
		return
	}
	if err := h.Service.BookingCreated(c.Request.Context(), e); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking notification sent"})
}

// BookingUpdatedHandler handles POST /booking_updated.
func (h *RelayHandler) BookingUpdatedHandler(c *gin.Context) {
	var e models.BookingUpdatedEvent
	if !bindJSON(c, &e) {
		return
	}
	if err := h.Service.BookingUpdated(c.Request.Context(), e); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking update notification sent"})
}
