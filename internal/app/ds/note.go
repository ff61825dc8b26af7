package ds

import "time"

// 4. Folders for organizing notes
type Folder struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID"`
}

// 5. Notes with optional password protection and favorites
type Note struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	FolderID     *uint     `gorm:"index"`
	Title        string    `gorm:"type:varchar(500);not null"`
	Content      string    `gorm:"type:text;not null"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	IsFavorite   bool      `gorm:"default:false;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	User   User    `gorm:"foreignKey:UserID"`
	Folder *Folder `gorm:"foreignKey:FolderID"`
}

// 6. Version history, one row per saved revision
type NoteVersion struct {
	ID        uint      `gorm:"primaryKey"`
	NoteID    uint      `gorm:"not null;index"`
	Title     string    `gorm:"type:varchar(500);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`

	Note Note `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}

// 7. File attachments stored in MinIO; FileKey is the object name
type NoteFile struct {
	ID        uint      `gorm:"primaryKey"`
	NoteID    uint      `gorm:"not null;index"`
	FileName  string    `gorm:"type:varchar(500);not null"`
	FileKey   string    `gorm:"type:varchar(500);not null"`
	FileURL   string    `gorm:"type:text;not null"`
	FileSize  int64     `gorm:"not null"`
	MimeType  string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"not null"`

	Note Note `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}

// 8. Tags for search and organization
type NoteTag struct {
	ID        uint      `gorm:"primaryKey"`
	NoteID    uint      `gorm:"not null;index"`
	Tag       string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`

	Note Note `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}
