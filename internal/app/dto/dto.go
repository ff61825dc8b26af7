package dto

import "time"

// ============ Common ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Auth / Users ============

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required,max=255"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// ============ Folders ============

type FolderRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type FolderResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============ Notes ============

type CreateNoteRequest struct {
	Title    string   `json:"title" binding:"required,min=1,max=500"`
	Content  string   `json:"content"`
	FolderID *uint    `json:"folder_id"`
	Password string   `json:"password"`
	Tags     []string `json:"tags"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=500"`
	Content *string `json:"content"`
	// folder and password can be set, left alone, or explicitly cleared
	FolderID       *uint     `json:"folder_id"`
	RemoveFolder   bool      `json:"remove_folder"`
	Password       *string   `json:"password"`
	RemovePassword bool      `json:"remove_password"`
	Tags           *[]string `json:"tags"`
}

type NoteResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	FolderID    *uint     `json:"folder_id,omitempty"`
	IsFavorite  bool      `json:"is_favorite"`
	IsProtected bool      `json:"is_protected"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
	Total int            `json:"total"`
}

type FavoriteRequest struct {
	IsFavorite bool `json:"is_favorite"`
}

type VerifyNotePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type NoteVersionResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ============ Attachments ============

type UploadFileRequest struct {
	FileName string `json:"file_name" binding:"required"`
	FileData string `json:"file_data" binding:"required"` // base64
	MimeType string `json:"mime_type"`
}

type FileResponse struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"file_name"`
	FileURL   string    `json:"file_url"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ============ Task board ============

type CreateColumnRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Color string `json:"color"`
}

type UpdateColumnRequest struct {
	Name  string `json:"name" binding:"omitempty,min=1,max=255"`
	Color string `json:"color"`
}

type ColumnResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

type CreateTaskRequest struct {
	ColumnID         uint       `json:"column_id" binding:"required"`
	Title            string     `json:"title" binding:"required,min=1,max=500"`
	Description      string     `json:"description"`
	Priority         string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssignedToUserID *uint      `json:"assigned_to_user_id"`
	DueDate          *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title            *string    `json:"title" binding:"omitempty,min=1,max=500"`
	Description      *string    `json:"description"`
	Priority         *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssignedToUserID *uint      `json:"assigned_to_user_id"`
	DueDate          *time.Time `json:"due_date"`
}

type MoveTaskRequest struct {
	ColumnID uint `json:"column_id" binding:"required"`
	Position int  `json:"position" binding:"gte=0"`
}

type TaskResponse struct {
	ID               uint       `json:"id"`
	ColumnID         uint       `json:"column_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Priority         string     `json:"priority"`
	AssignedToUserID *uint      `json:"assigned_to_user_id,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Position         int        `json:"position"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ============ License ============

type ActivateLicenseRequest struct {
	Key string `json:"key" binding:"required"`
}

type UpdateLicenseSettingsRequest struct {
	AllowPublicRegistration *bool `json:"allow_public_registration" binding:"required"`
}
