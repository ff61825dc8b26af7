package ds

import (
	"time"

	"notesvc/internal/app/role"
)

// 1. Users table
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Login        string    `gorm:"type:varchar(64);unique;not null"`
	Password     string    `gorm:"type:varchar(255);not null"` // hex digest, see internal/app/hash
	FullName     string    `gorm:"type:varchar(255)"`
	Email        string    `gorm:"type:varchar(320)"`
	Role         role.Role `gorm:"type:varchar(20);default:'user';not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	LastSignedIn time.Time
}
