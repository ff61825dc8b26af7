package handler

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notesvc/internal/app/ds"
	"notesvc/internal/app/dto"
	"notesvc/internal/app/hash"
)

// 50MB cap on attachment uploads
const maxUploadSize = 50 * 1024 * 1024

// ============ NOTES ============

func noteResponse(n *ds.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		FolderID:    n.FolderID,
		IsFavorite:  n.IsFavorite,
		IsProtected: n.PasswordHash != nil,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func noteListResponse(notes []ds.Note) dto.NoteListResponse {
	responses := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, noteResponse(&notes[i]))
	}
	return dto.NoteListResponse{Notes: responses, Total: len(responses)}
}

// loadOwnNote fetches a note and enforces ownership.
func (h *APIHandler) loadOwnNote(c *gin.Context, userID uint, param string) (*ds.Note, bool) {
	noteID, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid note ID")
		return nil, false
	}

	note, err := h.Repository.GetNoteByID(uint(noteID))
	if err != nil || note.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "note not found")
		return nil, false
	}
	return note, true
}

// GetNotes lists the user's notes
// @Summary List notes
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notes [get]
func (h *APIHandler) GetNotes(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	notes, err := h.Repository.GetNotesByUserID(userID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load notes")
		return
	}

	h.successResponse(c, http.StatusOK, "", noteListResponse(notes))
}

// GetNote returns one note
// @Summary Get note
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notes/{id} [get]
func (h *APIHandler) GetNote(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	note, ok := h.loadOwnNote(c, userID, "id")
	if !ok {
		return
	}

	h.successResponse(c, http.StatusOK, "", noteResponse(note))
}

// CreateNote creates a note with optional password, folder and tags
// @Summary Create note
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNoteRequest true "Note data"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/notes [post]
func (h *APIHandler) CreateNote(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	var request dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	note := ds.Note{
		UserID:   userID,
		FolderID: request.FolderID,
		Title:    request.Title,
		Content:  request.Content,
	}
	if request.Password != "" {
		digest := hash.Hash(request.Password)
		note.PasswordHash = &digest
	}

	if err := h.Repository.CreateNote(&note); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to create note")
		return
	}

	// record the initial version and tags; both are best-effort extras
	if err := h.Repository.CreateNoteVersion(note.ID, note.Title, note.Content); err != nil {
		logrus.Warnf("failed to create initial version for note %d: %v", note.ID, err)
	}
	if err := h.Repository.CreateNoteTags(note.ID, request.Tags); err != nil {
		logrus.Warnf("failed to create tags for note %d: %v", note.ID, err)
	}

	h.successResponse(c, http.StatusCreated, "note created", noteResponse(&note))
}

// UpdateNote updates a note and records a version
// @Summary Update note
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body dto.UpdateNoteRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notes/{id} [put]
func (h *APIHandler) UpdateNote(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	note, ok := h.loadOwnNote(c, userID, "id")
	if !ok {
		return
	}

	var request dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]interface{}{}
	if request.Title != nil {
		fields["title"] = *request.Title
	}
	if request.Content != nil {
		fields["content"] = *request.Content
	}
	if request.RemoveFolder {
		fields["folder_id"] = nil
	} else if request.FolderID != nil {
		fields["folder_id"] = *request.FolderID
	}
	if request.RemovePassword {
		fields["password_hash"] = nil
	} else if request.Password != nil {
		fields["password_hash"] = hash.Hash(*request.Password)
	}

	if len(fields) > 0 {
		if err := h.Repository.UpdateNote(note.ID, fields); err != nil {
			h.errorResponse(c, http.StatusInternalServerError, "failed to update note")
			return
		}
	}

	// version the result when title or content changed
	if request.Title != nil || request.Content != nil {
		updated, err := h.Repository.GetNoteByID(note.ID)
		if err == nil {
			if err := h.Repository.CreateNoteVersion(updated.ID, updated.Title, updated.Content); err != nil {
				logrus.Warnf("failed to version note %d: %v", note.ID, err)
			}
		}
	}

	// replace tags when provided
	if request.Tags != nil {
		if err := h.Repository.DeleteNoteTags(note.ID); err == nil {
			if err := h.Repository.CreateNoteTags(note.ID, *request.Tags); err != nil {
				logrus.Warnf("failed to update tags for note %d: %v", note.ID, err)
			}
		}
	}

	h.successResponse(c, http.StatusOK, "note updated", nil)
}

// DeleteNote removes a note
// @Summary Delete note
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notes/{id} [delete]
func (h *APIHandler) DeleteNote(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	note, ok := h.loadOwnNote(c, userID, "id")
	if !ok {
		return
	}

	if err := h.Repository.DeleteNote(note.ID); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to delete note")
		return
	}

	h.successResponse(c, http.StatusOK, "note deleted", nil)
}

// SetNoteFavorite toggles the favorite flag
// @Summary Toggle favorite
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body dto.FavoriteRequest true "Favorite flag"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notes/{id}/favorite [post]
func (h *APIHandler) SetNoteFavorite(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	note, ok := h.loadOwnNote(c, userID, "id")
	if !ok {
		return
	}

	var request dto.FavoriteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.SetNoteFavorite(note.ID, request.IsFavorite); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to update note")
		return
	}

	h.successResponse(c, http.StatusOK, "favorite updated", nil)
}

// GetFavoriteNotes lists favorites
// @Summary List favorite notes
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notes/favorites [get]
func (h *APIHandler) GetFavoriteNotes(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	notes, err := h.Repository.GetFavoriteNotes(userID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load notes")
		return
	}

	h.successResponse(c, http.StatusOK, "", noteListResponse(notes))
}

// VerifyNotePassword checks a note unlock password
// @Summary Verify note password
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body dto.VerifyNotePasswordRequest true "Password"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notes/{id}/verify-password [post]
func (h *APIHandler) VerifyNotePassword(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	note, ok := h.loadOwnNote(c, userID, "id")
	if !ok {
		return
	}

	// unprotected notes verify trivially
	if note.PasswordHash == nil {
		h.successResponse(c, http.StatusOK, "", gin.H{"valid": true})
		return
	}

	var request dto.VerifyNotePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	valid := hash.Verify(request.Password, *note.PasswordHash)
	h.successResponse(c, http.StatusOK, "", gin.H{"valid": valid})
}

// GetNoteVersions lists a note's version history
// @Summary Note versions
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notes/{id}/versions [get]
func (h *APIHandler) GetNoteVersions(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	note, ok := h.loadOwnNote(c, userID, "id")
	if !ok {
		return
	}

	versions, err := h.Repository.GetNoteVersions(note.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load versions")
		return
	}

	responses := make([]dto.NoteVersionResponse, 0, len(versions))
	for _, v := range versions {
		responses = append(responses, dto.NoteVersionResponse{
			ID:        v.ID,
			Title:     v.Title,
			Content:   v.Content,
			CreatedAt: v.CreatedAt,
		})
	}
	h.successResponse(c, http.StatusOK, "", responses)
}

// GetNoteTags lists a note's tags
// @Summary Note tags
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notes/{id}/tags [get]
func (h *APIHandler) GetNoteTags(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	note, ok := h.loadOwnNote(c, userID, "id")
	if !ok {
		return
	}

	tags, err := h.Repository.GetNoteTags(note.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load tags")
		return
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Tag)
	}
	h.successResponse(c, http.StatusOK, "", names)
}

// SearchNotes searches notes by title, content and tags
// @Summary Search notes
// @Tags Search
// @Produce json
// @Security BearerAuth
// @Param query query string true "Search query"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notes/search [get]
func (h *APIHandler) SearchNotes(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	query := c.Query("query")
	notes, err := h.Repository.SearchNotes(userID, query)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "search failed")
		return
	}

	h.successResponse(c, http.StatusOK, "", noteListResponse(notes))
}

// GetSearchSuggestions returns up to five title matches
// @Summary Search suggestions
// @Tags Search
// @Produce json
// @Security BearerAuth
// @Param query query string true "Search query"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notes/search/suggestions [get]
func (h *APIHandler) GetSearchSuggestions(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	query := c.Query("query")
	notes, err := h.Repository.GetSearchSuggestions(userID, query, 5)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "search failed")
		return
	}

	type suggestion struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}
	suggestions := make([]suggestion, 0, len(notes))
	for _, n := range notes {
		suggestions = append(suggestions, suggestion{ID: n.ID, Title: n.Title})
	}
	h.successResponse(c, http.StatusOK, "", suggestions)
}

// ============ NOTE ATTACHMENTS ============

// GetNoteFiles lists attachments of a note
// @Summary Note attachments
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notes/{id}/files [get]
func (h *APIHandler) GetNoteFiles(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	note, ok := h.loadOwnNote(c, userID, "id")
	if !ok {
		return
	}

	files, err := h.Repository.GetNoteFiles(note.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load files")
		return
	}

	responses := make([]dto.FileResponse, 0, len(files))
	for _, f := range files {
		responses = append(responses, dto.FileResponse{
			ID:        f.ID,
			FileName:  f.FileName,
			FileURL:   f.FileURL,
			FileSize:  f.FileSize,
			MimeType:  f.MimeType,
			CreatedAt: f.CreatedAt,
		})
	}
	h.successResponse(c, http.StatusOK, "", responses)
}

// UploadNoteFile attaches a base64-encoded file to a note
// @Summary Upload note attachment
// @Tags Files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body dto.UploadFileRequest true "File payload"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/notes/{id}/files [post]
func (h *APIHandler) UploadNoteFile(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	note, ok := h.loadOwnNote(c, userID, "id")
	if !ok {
		return
	}

	var request dto.UploadFileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	data, err := base64.StdEncoding.DecodeString(request.FileData)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid base64 payload")
		return
	}
	if len(data) > maxUploadSize {
		h.errorResponse(c, http.StatusBadRequest, "file size exceeds 50MB limit")
		return
	}

	objectKey, err := h.MinIOClient.UploadAttachment("notes", userID, note.ID, data, request.FileName, request.MimeType)
	if err != nil {
		logrus.Error("upload failed: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to store file")
		return
	}

	fileURL, err := h.MinIOClient.GetFileURL(objectKey)
	if err != nil {
		logrus.Error("presign failed: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to store file")
		return
	}

	file := ds.NoteFile{
		NoteID:   note.ID,
		FileName: request.FileName,
		FileKey:  objectKey,
		FileURL:  fileURL,
		FileSize: int64(len(data)),
		MimeType: request.MimeType,
	}
	if err := h.Repository.CreateNoteFile(&file); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to save file record")
		return
	}

	h.successResponse(c, http.StatusCreated, "file uploaded", dto.FileResponse{
		ID:        file.ID,
		FileName:  file.FileName,
		FileURL:   file.FileURL,
		FileSize:  file.FileSize,
		MimeType:  file.MimeType,
		CreatedAt: file.CreatedAt,
	})
}

// DeleteNoteFile removes an attachment record and its object
// @Summary Delete note attachment
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param fileId path int true "File ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notes/files/{fileId} [delete]
func (h *APIHandler) DeleteNoteFile(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	fileID, err := strconv.ParseUint(c.Param("fileId"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid file ID")
		return
	}

	file, err := h.Repository.GetNoteFileByID(uint(fileID))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "file not found")
		return
	}

	// ownership runs through the parent note
	note, err := h.Repository.GetNoteByID(file.NoteID)
	if err != nil || note.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "file not found")
		return
	}

	if err := h.MinIOClient.DeleteFile(file.FileKey); err != nil {
		logrus.Warnf("failed to delete object %s: %v", file.FileKey, err)
	}
	if err := h.Repository.DeleteNoteFile(file.ID); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to delete file")
		return
	}

	h.successResponse(c, http.StatusOK, "file deleted", nil)
}
