package license

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notesvc/internal/app/repository"
)

func newTestService(t *testing.T) (*Service, *repository.Repository) {
	t.Helper()

	// named shared-cache memory DB so the pooled connections see one store
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	return NewService(repo), repo
}

// at pins the service clock to trial start plus the given offset.
func at(t *testing.T, svc *Service, offset time.Duration) {
	t.Helper()
	license, err := svc.repo.GetOrCreateLicense()
	require.NoError(t, err)
	moment := license.TrialStartedAt.Add(offset)
	svc.now = func() time.Time { return moment }
}

func TestFreshDeploymentInfo(t *testing.T) {
	svc, _ := newTestService(t)
	at(t, svc, time.Minute)

	info, err := svc.GetInfo()
	require.NoError(t, err)

	assert.False(t, info.IsActive)
	assert.Equal(t, TrialDays, info.TrialDaysRemaining)
	assert.False(t, info.IsBlocked)
	assert.NotEmpty(t, info.ServerID)
	assert.Nil(t, info.ExpiresAt)
}

func TestTrialDaysCeilRounding(t *testing.T) {
	svc, _ := newTestService(t)

	// 9.1 days remaining still reports 10
	at(t, svc, 21*time.Hour+36*time.Minute)
	info, err := svc.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, 10, info.TrialDaysRemaining)

	// half a day left reports 1
	at(t, svc, 9*24*time.Hour+12*time.Hour)
	info, err = svc.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, 1, info.TrialDaysRemaining)
	assert.False(t, info.IsBlocked)
}

func TestTrialExpired(t *testing.T) {
	svc, _ := newTestService(t)
	at(t, svc, 11*24*time.Hour)

	info, err := svc.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, 0, info.TrialDaysRemaining)
	assert.True(t, info.IsBlocked)

	hasAccess, licenseValid, trialValid, err := svc.CheckAccess()
	require.NoError(t, err)
	assert.False(t, hasAccess)
	assert.False(t, licenseValid)
	assert.False(t, trialValid)
}

func TestActivateUnknownKey(t *testing.T) {
	svc, _ := newTestService(t)
	at(t, svc, time.Hour)

	result := svc.Activate("NOPE-0000")
	assert.False(t, result.Success)
	assert.Equal(t, MsgInvalidKey, result.Message)
}

func TestActivateStorageFailure(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)
	svc := NewService(repo)

	// materialize the license row, then break the store
	_, err = svc.GetInfo()
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// a failing key lookup is not an invalid key
	result := svc.Activate("ANY-KEY")
	assert.False(t, result.Success)
	assert.Equal(t, MsgActivationError, result.Message)
}

func TestActivateExpiredKeyDoesNotMutate(t *testing.T) {
	svc, repo := newTestService(t)
	at(t, svc, time.Hour)

	_, err := repo.GetOrCreateLicense()
	require.NoError(t, err)
	_, err = repo.CreateLicenseKey("OLD-KEY", "Stale Corp", svc.now().Add(-time.Hour))
	require.NoError(t, err)

	result := svc.Activate("OLD-KEY")
	assert.False(t, result.Success)
	assert.Equal(t, MsgKeyExpired, result.Message)

	license, err := repo.GetLicense()
	require.NoError(t, err)
	assert.False(t, license.IsActive)
	assert.Nil(t, license.OwnerName)
	assert.Nil(t, license.ExpiresAt)
}

func TestActivateValidKey(t *testing.T) {
	svc, repo := newTestService(t)
	at(t, svc, time.Hour)

	expiry := svc.now().Add(365 * 24 * time.Hour)
	_, err := repo.CreateLicenseKey("ACME-KEY", "Acme", expiry)
	require.NoError(t, err)

	result := svc.Activate("ACME-KEY")
	require.True(t, result.Success)
	assert.Equal(t, MsgActivated, result.Message)
	assert.Equal(t, "Acme", result.OwnerName)
	require.NotNil(t, result.ExpiresAt)
	assert.WithinDuration(t, expiry, *result.ExpiresAt, time.Second)

	info, err := svc.GetInfo()
	require.NoError(t, err)
	assert.True(t, info.IsActive)
	require.NotNil(t, info.OwnerName)
	assert.Equal(t, "Acme", *info.OwnerName)
	assert.Equal(t, 0, info.TrialDaysRemaining)
	assert.False(t, info.IsBlocked)
}

func TestReactivationOverwrites(t *testing.T) {
	svc, repo := newTestService(t)
	at(t, svc, time.Hour)

	firstExpiry := svc.now().Add(30 * 24 * time.Hour)
	secondExpiry := svc.now().Add(365 * 24 * time.Hour)
	_, err := repo.CreateLicenseKey("KEY-1", "First Owner", firstExpiry)
	require.NoError(t, err)
	_, err = repo.CreateLicenseKey("KEY-2", "Second Owner", secondExpiry)
	require.NoError(t, err)

	require.True(t, svc.Activate("KEY-1").Success)
	require.True(t, svc.Activate("KEY-2").Success)

	license, err := repo.GetLicense()
	require.NoError(t, err)
	require.NotNil(t, license.OwnerName)
	assert.Equal(t, "Second Owner", *license.OwnerName)
	require.NotNil(t, license.ExpiresAt)
	assert.WithinDuration(t, secondExpiry, *license.ExpiresAt, time.Second)

	// keys stay redeemable, nothing marks them consumed
	assert.True(t, svc.Activate("KEY-1").Success)
}

func TestActiveButExpiredLicense(t *testing.T) {
	svc, repo := newTestService(t)
	at(t, svc, time.Hour)

	_, err := repo.CreateLicenseKey("SHORT-KEY", "Acme", svc.now().Add(24*time.Hour))
	require.NoError(t, err)
	require.True(t, svc.Activate("SHORT-KEY").Success)

	// jump past both the license expiry and the trial window
	at(t, svc, 20*24*time.Hour)

	info, err := svc.GetInfo()
	require.NoError(t, err)
	// the one-way flag stays set, trial does not resume, access is blocked
	assert.True(t, info.IsActive)
	assert.Equal(t, 0, info.TrialDaysRemaining)
	assert.True(t, info.IsBlocked)

	hasAccess, licenseValid, _, err := svc.CheckAccess()
	require.NoError(t, err)
	assert.False(t, licenseValid)
	assert.False(t, hasAccess)
}

func TestSettingsRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	allow, err := svc.Settings()
	require.NoError(t, err)
	assert.True(t, allow)

	require.NoError(t, svc.UpdateSettings(false))

	allow, err = svc.Settings()
	require.NoError(t, err)
	assert.False(t, allow)
}
