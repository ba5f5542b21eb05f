package handlers

import (
	"net/http"
	"strconv"

	"salonbook/models"
	"salonbook/services/master"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MasterHandler serves the master registry and slot store.
type MasterHandler struct {
	Service master.MasterService
}

// ListMastersHandler handles GET /masters and answers {"<id>": name}.
func (h *MasterHandler) ListMastersHandler(c *gin.Context) {
	masters, err := h.Service.ListMasters(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	out := make(map[string]string, len(masters))
	for _, m := range masters {
		out[strconv.Itoa(m.ID)] = m.Name
	}
	c.JSON(http.StatusOK, out)
}

func (h *MasterHandler) GetMasterHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	m, err := h.Service.GetMaster(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// ScheduleHandler handles GET /schedule/:id/:date.
func (h *MasterHandler) ScheduleHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	sched, err := h.Service.AvailableSlots(c.Request.Context(), id, c.Param("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// BookSlotHandler handles POST /book_slot/:id/:date/:time.
func (h *MasterHandler) BookSlotHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		ClientID int `json:"client_id"`
	}
	if !bindJSON(c, &input) {
		return
	}

	slot, err := h.Service.Reserve(c.Request.Context(), id, c.Param("date"), c.Param("time"), input.ClientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Slot reserved", zap.Int("masterId", id), zap.String("date", slot.Date), zap.String("time", slot.Time))
	c.JSON(http.StatusOK, gin.H{"success": true, "booking_id": slot.ID})
}

// FreeSlotHandler handles DELETE /free_slot/:id/:date/:time. Freeing a free slot succeeds.
// With ?client_id= only a claim held by that client is removed.
func (h *MasterHandler) FreeSlotHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var (
		released bool
		err      error
	)
	if raw := c.Query("client_id"); raw != "" {
		clientID, convErr := strconv.Atoi(raw)
		if convErr != nil || clientID <= 0 {
			utils.RespondError(c, utils.InvalidInput("invalid client_id"))
			return
		}
		released, err = h.Service.ReleaseClaim(c.Request.Context(), id, c.Param("date"), c.Param("time"), clientID)
	} else {
		released, err = h.Service.Release(c.Request.Context(), id, c.Param("date"), c.Param("time"))
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "released": released})
}

// MasterSlotsHandler handles GET /master_bookings_api/:id.
func (h *MasterHandler) MasterSlotsHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	slots, err := h.Service.ListBookings(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// AddVisitHandler handles POST /add_master_visit.
func (h *MasterHandler) AddVisitHandler(c *gin.Context) {
	var visit models.MasterVisit
	if !bindJSON(c, &visit) {
		return
	}
	saved, err := h.Service.RecordVisit(c.Request.Context(), visit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "visit": saved})
}

// VisitHistoryHandler handles GET /master_visit_history/:id.
func (h *MasterHandler) VisitHistoryHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	visits, err := h.Service.VisitHistory(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, visits)
}
