package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"notesvc/internal/app/dto"
	"notesvc/internal/app/hash"
	"notesvc/internal/app/role"
)

// ============ USER MANAGEMENT (admin only) ============

// GetUsers lists all users
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/users [get]
func (h *APIHandler) GetUsers(c *gin.Context) {
	users, err := h.Repository.GetAllUsers()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load users")
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserResponse{
			ID:       u.ID,
			Login:    u.Login,
			FullName: u.FullName,
			Email:    u.Email,
			Role:     string(u.Role),
		})
	}

	h.successResponse(c, http.StatusOK, "", responses)
}

// UpdateUser updates profile fields of a user
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/users/{id} [put]
func (h *APIHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	var request dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]interface{}{}
	if request.FullName != "" {
		fields["full_name"] = request.FullName
	}
	if request.Email != "" {
		fields["email"] = request.Email
	}
	if request.Password != "" {
		fields["password"] = hash.Hash(request.Password)
	}
	if len(fields) == 0 {
		h.errorResponse(c, http.StatusBadRequest, "nothing to update")
		return
	}

	if err := h.Repository.UpdateUser(uint(userID), fields); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to update user")
		return
	}

	h.successResponse(c, http.StatusOK, "user updated", nil)
}

// UpdateUserRole changes a user's role
// @Summary Update user role
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/users/{id}/role [put]
func (h *APIHandler) UpdateUserRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	var request dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.UpdateUserRole(uint(userID), role.Role(request.Role)); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to update role")
		return
	}

	h.successResponse(c, http.StatusOK, "role updated", nil)
}

// DeleteUser removes a user
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/users/{id} [delete]
func (h *APIHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.Repository.DeleteUser(uint(userID)); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to delete user")
		return
	}

	h.successResponse(c, http.StatusOK, "user deleted", nil)
}
