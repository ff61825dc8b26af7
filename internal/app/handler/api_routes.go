package handler

import (
	"github.com/gin-gonic/gin"

	"notesvc/internal/app/middleware"
	"notesvc/internal/app/role"
)

// RegisterAPIRoutes registers all REST API routes with authorization.
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	anyRole := authMiddleware.WithAuthCheck(role.User, role.Admin)
	adminOnly := authMiddleware.WithAuthCheck(role.Admin)

	// ============ Authentication (public endpoints) ============
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", h.AuthHandler.LoginUser)

		auth.GET("/profile", anyRole, h.AuthHandler.GetUserProfile)
		auth.POST("/logout", anyRole, h.AuthHandler.LogoutUser)
	}

	// ============ User management (admin only) ============
	users := api.Group("/users")
	users.Use(adminOnly)
	{
		users.GET("", h.GetUsers)
		users.PUT("/:id", h.UpdateUser)
		users.PUT("/:id/role", h.UpdateUserRole)
		users.DELETE("/:id", h.DeleteUser)
	}

	// ============ Folders ============
	folders := api.Group("/folders")
	folders.Use(anyRole)
	{
		folders.GET("", h.GetFolders)
		folders.POST("", h.CreateFolder)
		folders.PUT("/:id", h.UpdateFolder)
		folders.DELETE("/:id", h.DeleteFolder)
	}

	// ============ Notes ============
	notes := api.Group("/notes")
	notes.Use(anyRole)
	{
		// fixed paths go before the :id routes
		notes.GET("/favorites", h.GetFavoriteNotes)
		notes.GET("/search", h.SearchNotes)
		notes.GET("/search/suggestions", h.GetSearchSuggestions)
		notes.DELETE("/files/:fileId", h.DeleteNoteFile)

		notes.GET("", h.GetNotes)
		notes.POST("", h.CreateNote)
		notes.GET("/:id", h.GetNote)
		notes.PUT("/:id", h.UpdateNote)
		notes.DELETE("/:id", h.DeleteNote)
		notes.POST("/:id/favorite", h.SetNoteFavorite)
		notes.POST("/:id/verify-password", h.VerifyNotePassword)
		notes.GET("/:id/versions", h.GetNoteVersions)
		notes.GET("/:id/tags", h.GetNoteTags)
		notes.GET("/:id/files", h.GetNoteFiles)
		notes.POST("/:id/files", h.UploadNoteFile)
	}

	// ============ Board columns ============
	columns := api.Group("/columns")
	columns.Use(anyRole)
	{
		columns.GET("", h.GetColumns)
		columns.POST("", h.CreateColumn)
		columns.PUT("/:id", h.UpdateColumn)
		columns.DELETE("/:id", h.DeleteColumn)
		columns.GET("/:id/tasks", h.GetColumnTasks)
	}

	// ============ Tasks ============
	tasks := api.Group("/tasks")
	tasks.Use(anyRole)
	{
		tasks.DELETE("/comments/:commentId", h.DeleteTaskComment)
		tasks.DELETE("/files/:fileId", h.DeleteTaskFile)

		tasks.GET("", h.GetTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.PUT("/:id/move", h.MoveTask)
		tasks.GET("/:id/comments", h.GetTaskComments)
		tasks.POST("/:id/comments", h.CreateTaskComment)
		tasks.GET("/:id/files", h.GetTaskFiles)
		tasks.POST("/:id/files", h.UploadTaskFile)
	}

	// ============ License (reachable while blocked) ============
	licenseGroup := api.Group("/license")
	{
		licenseGroup.GET("/info", h.GetLicenseInfo)
		licenseGroup.GET("/check-access", h.CheckAccess)
		licenseGroup.POST("/activate", h.ActivateLicense)
		licenseGroup.GET("/server-id", h.GetServerID)

		licenseGroup.GET("/settings", anyRole, h.GetLicenseSettings)
		licenseGroup.PUT("/settings", adminOnly, h.UpdateLicenseSettings)
	}

	router.GET("/ping", h.Ping)
}

// Ping reports server liveness
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
