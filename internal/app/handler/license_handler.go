package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notesvc/internal/app/dto"
)

// GetLicenseInfo returns trial and license state for the server
// @Summary License info
// @Tags License
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /api/license/info [get]
func (h *APIHandler) GetLicenseInfo(c *gin.Context) {
	info, err := h.License.GetInfo()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load license state")
		return
	}
	h.successResponse(c, http.StatusOK, "", info)
}

// CheckAccess reports whether the server is usable right now
// @Summary Check access
// @Tags License
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /api/license/check-access [get]
func (h *APIHandler) CheckAccess(c *gin.Context) {
	hasAccess, licenseValid, trialValid, err := h.License.CheckAccess()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load license state")
		return
	}
	h.successResponse(c, http.StatusOK, "", gin.H{
		"has_access":    hasAccess,
		"license_valid": licenseValid,
		"trial_valid":   trialValid,
	})
}

// ActivateLicense redeems a license key against this server
// @Summary Activate license
// @Tags License
// @Accept json
// @Produce json
// @Param request body dto.ActivateLicenseRequest true "License key"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/license/activate [post]
func (h *APIHandler) ActivateLicense(c *gin.Context) {
	var request dto.ActivateLicenseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result := h.License.Activate(request.Key)
	if !result.Success {
		h.errorResponse(c, http.StatusBadRequest, result.Message)
		return
	}

	h.successResponse(c, http.StatusOK, result.Message, gin.H{
		"owner_name": result.OwnerName,
		"expires_at": result.ExpiresAt,
	})
}

// GetServerID returns the server's installation identifier
// @Summary Server ID
// @Tags License
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /api/license/server-id [get]
func (h *APIHandler) GetServerID(c *gin.Context) {
	serverID, err := h.License.ServerID()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load license state")
		return
	}
	h.successResponse(c, http.StatusOK, "", gin.H{"server_id": serverID})
}

// GetLicenseSettings returns server-wide settings
// @Summary License settings
// @Tags License
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /api/license/settings [get]
func (h *APIHandler) GetLicenseSettings(c *gin.Context) {
	allowPublicRegistration, err := h.License.Settings()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	h.successResponse(c, http.StatusOK, "", gin.H{
		"allow_public_registration": allowPublicRegistration,
	})
}

// UpdateLicenseSettings updates server-wide settings, admin only
// @Summary Update license settings
// @Tags License
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateLicenseSettingsRequest true "Settings"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/license/settings [put]
func (h *APIHandler) UpdateLicenseSettings(c *gin.Context) {
	var request dto.UpdateLicenseSettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.License.UpdateSettings(*request.AllowPublicRegistration); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to update settings")
		return
	}

	h.successResponse(c, http.StatusOK, "settings updated", nil)
}
