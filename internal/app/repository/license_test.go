package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetOrCreateLicenseIdempotent(t *testing.T) {
	repo := newTestRepository(t)

	first, err := repo.GetOrCreateLicense()
	require.NoError(t, err)
	require.NotEmpty(t, first.ServerID)
	assert.False(t, first.IsActive)
	assert.False(t, first.TrialStartedAt.IsZero())

	second, err := repo.GetOrCreateLicense()
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ServerID, second.ServerID)
}

func TestGetOrCreateLicenseCreateFailureSurfaces(t *testing.T) {
	repo := newTestRepository(t)

	boom := errors.New("insert rejected")
	require.NoError(t, repo.db.Callback().Create().Before("gorm:create").Register("reject_insert", func(tx *gorm.DB) {
		_ = tx.AddError(boom)
	}))
	defer func() {
		_ = repo.db.Callback().Create().Remove("reject_insert")
	}()

	// a real storage failure must not be masked as a missing license
	_, err := repo.GetOrCreateLicense()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrLicenseNotFound)
}

func TestGetOrCreateLicenseLostInsertRace(t *testing.T) {
	repo := newTestRepository(t)

	// a competing process lands its row between our read and insert; the
	// singleton index then rejects our insert
	now := time.Now()
	require.NoError(t, repo.db.Callback().Create().Before("gorm:create").Register("steal_insert", func(tx *gorm.DB) {
		raw := tx.Session(&gorm.Session{NewDB: true})
		_ = raw.Exec(
			"INSERT INTO licenses (singleton, server_id, trial_started_at, is_active, allow_public_registration, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			true, "RACEWINNER0000AB", now, false, true, now, now,
		).Error
		_ = tx.AddError(errors.New("UNIQUE constraint failed: licenses.singleton"))
	}))
	defer func() {
		_ = repo.db.Callback().Create().Remove("steal_insert")
	}()

	license, err := repo.GetOrCreateLicense()
	require.NoError(t, err)
	assert.Equal(t, "RACEWINNER0000AB", license.ServerID)
}

func TestGetLicenseAbsent(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetLicense()
	assert.ErrorIs(t, err, ErrLicenseNotFound)
}

func TestUpdateLicensePartial(t *testing.T) {
	repo := newTestRepository(t)

	license, err := repo.GetOrCreateLicense()
	require.NoError(t, err)

	expiry := time.Now().Add(90 * 24 * time.Hour)
	err = repo.UpdateLicense(license.ID, map[string]interface{}{
		"is_active":  true,
		"owner_name": "Acme",
		"expires_at": expiry,
	})
	require.NoError(t, err)

	updated, err := repo.GetLicense()
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	require.NotNil(t, updated.OwnerName)
	assert.Equal(t, "Acme", *updated.OwnerName)
	require.NotNil(t, updated.ExpiresAt)
	// the untouched field keeps its value
	assert.Equal(t, license.ServerID, updated.ServerID)
}

func TestLicenseKeyLookup(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.CreateLicenseKey("THE-KEY", "Owner", time.Now().Add(time.Hour))
	require.NoError(t, err)

	key, err := repo.GetLicenseKeyByKey("THE-KEY")
	require.NoError(t, err)
	assert.Equal(t, "Owner", key.OwnerName)

	_, err = repo.GetLicenseKeyByKey("OTHER-KEY")
	assert.ErrorIs(t, err, ErrLicenseKeyNotFound)
}
