package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/services/user"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the user directory.
type UserHandler struct {
	UserService user.UserService
}

// RegisterUserHandler handles POST /register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": resp.User, "token": resp.Token})
}

// LoginHandler handles POST /login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Info("Login rejected", zap.String("email", req.Email), zap.String("kind", string(utils.KindOf(err))))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": resp.User, "token": resp.Token})
}

// GetUserByIDHandler handles GET /user/:id.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	usr, err := h.UserService.GetUser(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.UserService.ListUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUserHandler handles PUT /admin/update_user/:id.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var update models.UserUpdate
	if !bindJSON(c, &update) {
		return
	}
	usr, err := h.UserService.UpdateUser(c.Request.Context(), id, update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": usr})
}

// DeleteUserHandler handles DELETE /admin/delete_user/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.UserService.DeleteUser(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("User deleted", zap.Int("userId", id))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}

func (h *UserHandler) StatsHandler(c *gin.Context) {
	stats, err := h.UserService.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
