package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"notesvc/internal/app/ds"
	"notesvc/internal/app/dto"
)

// ============ FOLDERS ============

func folderResponse(f *ds.Folder) dto.FolderResponse {
	return dto.FolderResponse{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// loadOwnFolder fetches a folder and enforces ownership; other users' folders
// are reported as missing, not forbidden.
func (h *APIHandler) loadOwnFolder(c *gin.Context, userID uint) (*ds.Folder, bool) {
	folderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid folder ID")
		return nil, false
	}

	folder, err := h.Repository.GetFolderByID(uint(folderID))
	if err != nil || folder.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "folder not found")
		return nil, false
	}
	return folder, true
}

// GetFolders lists the user's folders
// @Summary List folders
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /api/folders [get]
func (h *APIHandler) GetFolders(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	folders, err := h.Repository.GetFoldersByUserID(userID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load folders")
		return
	}

	responses := make([]dto.FolderResponse, 0, len(folders))
	for i := range folders {
		responses = append(responses, folderResponse(&folders[i]))
	}
	h.successResponse(c, http.StatusOK, "", responses)
}

// CreateFolder creates a folder
// @Summary Create folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FolderRequest true "Folder data"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/folders [post]
func (h *APIHandler) CreateFolder(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	var request dto.FolderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.Repository.CreateFolder(userID, request.Name)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to create folder")
		return
	}

	h.successResponse(c, http.StatusCreated, "folder created", folderResponse(folder))
}

// UpdateFolder renames a folder
// @Summary Rename folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Folder ID"
// @Param request body dto.FolderRequest true "New name"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/folders/{id} [put]
func (h *APIHandler) UpdateFolder(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	folder, ok := h.loadOwnFolder(c, userID)
	if !ok {
		return
	}

	var request dto.FolderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.UpdateFolder(folder.ID, request.Name); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to update folder")
		return
	}

	h.successResponse(c, http.StatusOK, "folder updated", nil)
}

// DeleteFolder removes a folder
// @Summary Delete folder
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Folder ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/folders/{id} [delete]
func (h *APIHandler) DeleteFolder(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	folder, ok := h.loadOwnFolder(c, userID)
	if !ok {
		return
	}

	if err := h.Repository.DeleteFolder(folder.ID); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to delete folder")
		return
	}

	h.successResponse(c, http.StatusOK, "folder deleted", nil)
}
