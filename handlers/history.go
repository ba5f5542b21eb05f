package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/services/history"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves session history and recommendations.
type HistoryHandler struct {
	Service history.HistoryService
}

// AddSessionHandler handles POST /add_session.
func (h *HistoryHandler) AddSessionHandler(c *gin.Context) {
	var req models.SessionRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.Service.AddSession(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "session_id": session.ID, "session": session})
}

func (h *HistoryHandler) UserSessionsHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	sessions, err := h.Service.UserSessions(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// UpdateSessionHandler handles PUT /update_session/:id {status}.
func (h *HistoryHandler) UpdateSessionHandler(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if !bindJSON(c, &input) {
		return
	}
	session, err := h.Service.UpdateSession(c.Request.Context(), id, input.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

func (h *HistoryHandler) CompleteVisitHandler(c *gin.Context) {
	var req models.SessionRequest
	if !bindJSON(c, &req) {
		return
	}
	visit, err := h.Service.CompleteVisit(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "visit": visit})
}

// RecommendationHandler handles GET /get_recommendation/:id.
func (h *HistoryHandler) RecommendationHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	rec, err := h.Service.Recommend(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "has_recommendation": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "has_recommendation": true, "recommendation": rec})
}
