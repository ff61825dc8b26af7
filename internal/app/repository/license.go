package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"notesvc/internal/app/ds"
)

// License store methods. The license is a single row per deployment, created
// lazily on first access.

var (
	ErrLicenseNotFound    = errors.New("license not found")
	ErrLicenseKeyNotFound = errors.New("license key not found")
)

// generateServerID returns a fresh opaque server identifier.
func generateServerID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:16]
}

// GetLicense returns the sole license row, or ErrLicenseNotFound.
func (r *Repository) GetLicense() (*ds.License, error) {
	var license ds.License
	err := r.db.First(&license).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLicenseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &license, nil
}

// GetOrCreateLicense returns the license row, creating it on first access.
// A concurrent first call can lose the insert race on the singleton unique
// index; that conflict means the row now exists, so we re-read.
func (r *Repository) GetOrCreateLicense() (*ds.License, error) {
	license, err := r.GetLicense()
	if err == nil {
		return license, nil
	}
	if !errors.Is(err, ErrLicenseNotFound) {
		return nil, err
	}

	fresh := ds.License{
		Singleton:               true,
		ServerID:                generateServerID(),
		TrialStartedAt:          time.Now(),
		IsActive:                false,
		AllowPublicRegistration: true,
	}
	if createErr := r.db.Create(&fresh).Error; createErr != nil {
		// a lost insert race on the singleton index means the row exists
		// now; anything else is a real storage failure
		existing, err := r.GetLicense()
		if err != nil {
			return nil, createErr
		}
		return existing, nil
	}
	return &fresh, nil
}

// UpdateLicense applies a partial update of the mutable license fields
// (is_active, owner_name, expires_at, allow_public_registration).
func (r *Repository) UpdateLicense(licenseID uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.License{}).Where("id = ?", licenseID).Updates(fields).Error
}

// License key registry

// GetLicenseKeyByKey returns the key row, or ErrLicenseKeyNotFound when no
// such key was ever issued.
func (r *Repository) GetLicenseKeyByKey(key string) (*ds.LicenseKey, error) {
	var lk ds.LicenseKey
	err := r.db.Where("key = ?", key).First(&lk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLicenseKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lk, nil
}

// CreateLicenseKey inserts an activation key; used by cmd/keygen, keys are
// not issued through the API.
func (r *Repository) CreateLicenseKey(key, ownerName string, expiresAt time.Time) (*ds.LicenseKey, error) {
	lk := ds.LicenseKey{
		Key:       key,
		OwnerName: ownerName,
		ExpiresAt: expiresAt,
	}
	if err := r.db.Create(&lk).Error; err != nil {
		return nil, err
	}
	return &lk, nil
}
