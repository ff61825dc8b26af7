package ds

import "time"

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// 9. Board columns, ordered per user by Position
type TaskColumn struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Color     string    `gorm:"type:varchar(50);default:'blue';not null"` // display only
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID"`
}

// 10. Tasks. Position defines the order within a column; gaps are tolerated
// and duplicates are resolved by a secondary id sort on the read path.
// Deleting a column cascades to its tasks at the store level.
type Task struct {
	ID               uint       `gorm:"primaryKey"`
	UserID           uint       `gorm:"not null;index"`
	ColumnID         uint       `gorm:"not null;index"`
	Title            string     `gorm:"type:varchar(500);not null"`
	Description      string     `gorm:"type:text"`
	Priority         string     `gorm:"type:varchar(20);default:'medium';not null"` // low, medium, high
	AssignedToUserID *uint      `gorm:"default:null"`
	DueDate          *time.Time `gorm:"default:null"`
	Position         int        `gorm:"not null"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`

	User     User       `gorm:"foreignKey:UserID"`
	Column   TaskColumn `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE"`
	Assignee *User      `gorm:"foreignKey:AssignedToUserID"`
}

// 11. Task comments
type TaskComment struct {
	ID        uint      `gorm:"primaryKey"`
	TaskID    uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`

	Task Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID"`
}

// 12. Task attachments, same MinIO layout as note files
type TaskFile struct {
	ID        uint      `gorm:"primaryKey"`
	TaskID    uint      `gorm:"not null;index"`
	FileName  string    `gorm:"type:varchar(500);not null"`
	FileKey   string    `gorm:"type:varchar(500);not null"`
	FileURL   string    `gorm:"type:text;not null"`
	FileSize  int64     `gorm:"not null"`
	MimeType  string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"not null"`

	Task Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}
