package handler

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notesvc/internal/app/ds"
	"notesvc/internal/app/dto"
)

// ============ BOARD COLUMNS ============

func columnResponse(col *ds.TaskColumn) dto.ColumnResponse {
	return dto.ColumnResponse{
		ID:       col.ID,
		Name:     col.Name,
		Color:    col.Color,
		Position: col.Position,
	}
}

func taskResponse(task *ds.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:               task.ID,
		ColumnID:         task.ColumnID,
		Title:            task.Title,
		Description:      task.Description,
		Priority:         task.Priority,
		AssignedToUserID: task.AssignedToUserID,
		DueDate:          task.DueDate,
		Position:         task.Position,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}

// loadOwnColumn fetches a column and enforces ownership.
func (h *APIHandler) loadOwnColumn(c *gin.Context, userID uint, param string) (*ds.TaskColumn, bool) {
	columnID, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid column ID")
		return nil, false
	}

	column, err := h.Repository.GetTaskColumnByID(uint(columnID))
	if err != nil || column.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "column not found")
		return nil, false
	}
	return column, true
}

// loadOwnTask fetches a task and enforces ownership.
func (h *APIHandler) loadOwnTask(c *gin.Context, userID uint, param string) (*ds.Task, bool) {
	taskID, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid task ID")
		return nil, false
	}

	task, err := h.Repository.GetTaskByID(uint(taskID))
	if err != nil || task.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "task not found")
		return nil, false
	}
	return task, true
}

// GetColumns lists the user's board columns in position order
// @Summary List board columns
// @Tags Board
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /api/columns [get]
func (h *APIHandler) GetColumns(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	columns, err := h.Repository.GetTaskColumnsByUserID(userID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load columns")
		return
	}

	responses := make([]dto.ColumnResponse, 0, len(columns))
	for i := range columns {
		responses = append(responses, columnResponse(&columns[i]))
	}
	h.successResponse(c, http.StatusOK, "", responses)
}

// CreateColumn appends a column to the user's board
// @Summary Create board column
// @Tags Board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateColumnRequest true "Column data"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/columns [post]
func (h *APIHandler) CreateColumn(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	var request dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	column, err := h.Repository.CreateTaskColumn(userID, request.Name, request.Color)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to create column")
		return
	}

	h.successResponse(c, http.StatusCreated, "column created", columnResponse(column))
}

// UpdateColumn renames or recolors a column
// @Summary Update board column
// @Tags Board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Column ID"
// @Param request body dto.UpdateColumnRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/columns/{id} [put]
func (h *APIHandler) UpdateColumn(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	column, ok := h.loadOwnColumn(c, userID, "id")
	if !ok {
		return
	}

	var request dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]interface{}{}
	if request.Name != "" {
		fields["name"] = request.Name
	}
	if request.Color != "" {
		fields["color"] = request.Color
	}
	if len(fields) > 0 {
		if err := h.Repository.UpdateTaskColumn(column.ID, fields); err != nil {
			h.errorResponse(c, http.StatusInternalServerError, "failed to update column")
			return
		}
	}

	h.successResponse(c, http.StatusOK, "column updated", nil)
}

// DeleteColumn removes a column and all of its tasks
// @Summary Delete board column
// @Tags Board
// @Produce json
// @Security BearerAuth
// @Param id path int true "Column ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/columns/{id} [delete]
func (h *APIHandler) DeleteColumn(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	column, ok := h.loadOwnColumn(c, userID, "id")
	if !ok {
		return
	}

	if err := h.Repository.DeleteTaskColumn(column.ID); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to delete column")
		return
	}

	h.successResponse(c, http.StatusOK, "column deleted", nil)
}

// ============ TASKS ============

// GetColumnTasks lists the tasks of a column in board order
// @Summary List tasks in column
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Column ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/columns/{id}/tasks [get]
func (h *APIHandler) GetColumnTasks(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	column, ok := h.loadOwnColumn(c, userID, "id")
	if !ok {
		return
	}

	tasks, err := h.Repository.GetTasksByColumn(column.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, taskResponse(&tasks[i]))
	}
	h.successResponse(c, http.StatusOK, "", responses)
}

// GetTasks lists the tasks of a column given by query parameter
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param column_id query int true "Column ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks [get]
func (h *APIHandler) GetTasks(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	columnID, err := strconv.ParseUint(c.Query("column_id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid column ID")
		return
	}

	column, err := h.Repository.GetTaskColumnByID(uint(columnID))
	if err != nil || column.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "column not found")
		return
	}

	tasks, err := h.Repository.GetTasksByColumn(column.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, taskResponse(&tasks[i]))
	}
	h.successResponse(c, http.StatusOK, "", responses)
}

// CreateTask appends a task to the end of a column
// @Summary Create task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTaskRequest true "Task data"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/tasks [post]
func (h *APIHandler) CreateTask(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	var request dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// the target column must belong to the caller
	column, err := h.Repository.GetTaskColumnByID(request.ColumnID)
	if err != nil || column.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "column not found")
		return
	}

	priority := request.Priority
	if priority == "" {
		priority = ds.PriorityMedium
	}

	task := ds.Task{
		UserID:           userID,
		ColumnID:         column.ID,
		Title:            request.Title,
		Description:      request.Description,
		Priority:         priority,
		AssignedToUserID: request.AssignedToUserID,
		DueDate:          request.DueDate,
	}
	if err := h.Repository.CreateTask(&task); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to create task")
		return
	}

	h.successResponse(c, http.StatusCreated, "task created", taskResponse(&task))
}

// GetTask returns one task
// @Summary Get task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks/{id} [get]
func (h *APIHandler) GetTask(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	task, ok := h.loadOwnTask(c, userID, "id")
	if !ok {
		return
	}

	h.successResponse(c, http.StatusOK, "", taskResponse(task))
}

// UpdateTask updates task fields without touching its board position
// @Summary Update task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks/{id} [put]
func (h *APIHandler) UpdateTask(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	task, ok := h.loadOwnTask(c, userID, "id")
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]interface{}{}
	if request.Title != nil {
		fields["title"] = *request.Title
	}
	if request.Description != nil {
		fields["description"] = *request.Description
	}
	if request.Priority != nil {
		fields["priority"] = *request.Priority
	}
	if request.AssignedToUserID != nil {
		fields["assigned_to_user_id"] = *request.AssignedToUserID
	}
	if request.DueDate != nil {
		fields["due_date"] = *request.DueDate
	}

	if len(fields) > 0 {
		if err := h.Repository.UpdateTask(task.ID, fields); err != nil {
			h.errorResponse(c, http.StatusInternalServerError, "failed to update task")
			return
		}
	}

	h.successResponse(c, http.StatusOK, "task updated", nil)
}

// MoveTask places a task at a position in a column
// @Summary Move task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body dto.MoveTaskRequest true "Target column and position"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks/{id}/move [put]
func (h *APIHandler) MoveTask(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	task, ok := h.loadOwnTask(c, userID, "id")
	if !ok {
		return
	}

	var request dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// the target column must belong to the caller
	column, err := h.Repository.GetTaskColumnByID(request.ColumnID)
	if err != nil || column.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "column not found")
		return
	}

	if err := h.Repository.MoveTask(task.ID, column.ID, request.Position); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to move task")
		return
	}

	h.successResponse(c, http.StatusOK, "task moved", nil)
}

// DeleteTask removes a task
// @Summary Delete task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks/{id} [delete]
func (h *APIHandler) DeleteTask(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	task, ok := h.loadOwnTask(c, userID, "id")
	if !ok {
		return
	}

	if err := h.Repository.DeleteTask(task.ID); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to delete task")
		return
	}

	h.successResponse(c, http.StatusOK, "task deleted", nil)
}

// ============ TASK COMMENTS ============

// GetTaskComments lists a task's comments oldest first
// @Summary Task comments
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/tasks/{id}/comments [get]
func (h *APIHandler) GetTaskComments(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	task, ok := h.loadOwnTask(c, userID, "id")
	if !ok {
		return
	}

	comments, err := h.Repository.GetTaskComments(task.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to load comments")
		return
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.CommentResponse{
			ID:        comment.ID,
			UserID:    comment.UserID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}
	h.successResponse(c, http.StatusOK, "", responses)
}

// CreateTaskComment adds a comment to a task
// @Summary Add task comment
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body dto.CommentRequest true "Comment"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/tasks/{id}/comments [post]
func (h *APIHandler) CreateTaskComment(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	task, ok := h.loadOwnTask(c, userID, "id")
	if !ok {
		return
	}

	var request dto.CommentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.Repository.CreateTaskComment(task.ID, userID, request.Content)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	h.successResponse(c, http.StatusCreated, "comment added", dto.CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	})
}

// DeleteTaskComment removes a comment written by the caller
// @Summary Delete task comment
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks/comments/{commentId} [delete]
func (h *APIHandler) DeleteTaskComment(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid comment ID")
		return
	}

	comment, err := h.Repository.GetTaskCommentByID(uint(commentID))
	if err != nil || comment.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "comment not found")
		return
	}

	if err := h.Repository.DeleteTaskComment(comment.ID); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to delete comment")
		return
	}

	h.successResponse(c, http.StatusOK, "comment deleted", nil)
}

// ============ TASK ATTACHMENTS ============

// GetTaskFiles lists attachments of a task
// @Summary Task attachments
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/tasks/{id}/files [get]
func (h *APIHandler) GetTaskFiles(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	task, ok := h.loadOwnTask(c, userID, "id")
	if !ok {
		return
	}

	files, err := h.Repository.GetTaskFiles(task.ID)
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

// UploadTaskFile attaches a base64-encoded file to a task
// @Summary Upload task attachment
// @Tags Files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body dto.UploadFileRequest true "File payload"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/tasks/{id}/files [post]
func (h *APIHandler) UploadTaskFile(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	task, ok := h.loadOwnTask(c, userID, "id")
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

	objectKey, err := h.MinIOClient.UploadAttachment("tasks", userID, task.ID, data, request.FileName, request.MimeType)
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

	file := ds.TaskFile{
		TaskID:   task.ID,
		FileName: request.FileName,
		FileKey:  objectKey,
		FileURL:  fileURL,
		FileSize: int64(len(data)),
		MimeType: request.MimeType,
	}
	if err := h.Repository.CreateTaskFile(&file); err != nil {
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

// DeleteTaskFile removes a task attachment record and its object
// @Summary Delete task attachment
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param fileId path int true "File ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks/files/{fileId} [delete]
func (h *APIHandler) DeleteTaskFile(c *gin.Context) {
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

	file, err := h.Repository.GetTaskFileByID(uint(fileID))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "file not found")
		return
	}

	task, err := h.Repository.GetTaskByID(file.TaskID)
	if err != nil || task.UserID != userID {
		h.errorResponse(c, http.StatusNotFound, "file not found")
		return
	}

	if err := h.MinIOClient.DeleteFile(file.FileKey); err != nil {
		logrus.Warnf("failed to delete object %s: %v", file.FileKey, err)
	}
	if err := h.Repository.DeleteTaskFile(file.ID); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to delete file")
		return
	}

	h.successResponse(c, http.StatusOK, "file deleted", nil)
}
