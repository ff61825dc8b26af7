package ds

import "time"

// 2. Server license table. Exactly one row per deployment: the Singleton
// column carries a unique index and is always true, so a concurrent first
// insert fails with a constraint violation instead of producing a second row.
type License struct {
	ID                      uint       `gorm:"primaryKey"`
	Singleton               bool       `gorm:"uniqueIndex;default:true;not null"`
	ServerID                string     `gorm:"type:varchar(32);unique;not null"`
	TrialStartedAt          time.Time  `gorm:"not null"`
	IsActive                bool       `gorm:"default:false;not null"` // historical "was activated" flag, never reset
	OwnerName               *string    `gorm:"type:varchar(255)"`
	ExpiresAt               *time.Time `gorm:"default:null"`
	AllowPublicRegistration bool       `gorm:"default:true;not null"`
	CreatedAt               time.Time  `gorm:"not null"`
	UpdatedAt               time.Time  `gorm:"not null"`
}

// 3. Activation key registry. Keys are issued out-of-band (cmd/keygen) and
// never deleted; redemption does not mark a key consumed.
type LicenseKey struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"type:varchar(128);unique;not null"`
	OwnerName string    `gorm:"type:varchar(255);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
