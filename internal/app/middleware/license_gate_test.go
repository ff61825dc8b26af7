package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notesvc/internal/app/license"
	"notesvc/internal/app/repository"
)

func newGateTestRouter(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	gate := NewLicenseGate(license.NewService(repo))

	r := gin.New()
	r.Use(gate.Gate())
	r.GET("/api/notes", func(c *gin.Context) { c.JSON(200, gin.H{"status": "success"}) })
	r.GET("/api/licenses", func(c *gin.Context) { c.JSON(200, gin.H{"status": "success"}) })
	r.GET("/api/license/info", func(c *gin.Context) { c.JSON(200, gin.H{"status": "success"}) })
	r.GET("/ping", func(c *gin.Context) { c.JSON(200, gin.H{"message": "pong"}) })
	return r, repo
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// expireTrial rewinds the trial start so the evaluation window is over.
func expireTrial(t *testing.T, repo *repository.Repository) {
	t.Helper()
	lic, err := repo.GetOrCreateLicense()
	require.NoError(t, err)
	started := time.Now().Add(-11 * 24 * time.Hour)
	require.NoError(t, repo.UpdateLicense(lic.ID, map[string]interface{}{
		"trial_started_at": started,
	}))
}

func TestGatePassesDuringTrial(t *testing.T) {
	r, _ := newGateTestRouter(t)

	assert.Equal(t, http.StatusOK, get(r, "/api/notes").Code)
}

func TestGateBlocksAfterTrial(t *testing.T) {
	r, repo := newGateTestRouter(t)
	expireTrial(t, repo)

	w := get(r, "/api/notes")
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "license required")
}

func TestGateExemptPathsStayReachable(t *testing.T) {
	r, repo := newGateTestRouter(t)
	expireTrial(t, repo)

	assert.Equal(t, http.StatusOK, get(r, "/api/license/info").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ping").Code)
}

func TestGateSiblingPathStaysGated(t *testing.T) {
	r, repo := newGateTestRouter(t)
	expireTrial(t, repo)

	// only whole segments are exempt, not lookalike siblings
	assert.Equal(t, http.StatusOK, get(r, "/api/license/info").Code)
	assert.Equal(t, http.StatusPaymentRequired, get(r, "/api/licenses").Code)
}

func TestGateReopensAfterActivation(t *testing.T) {
	r, repo := newGateTestRouter(t)
	expireTrial(t, repo)
	require.Equal(t, http.StatusPaymentRequired, get(r, "/api/notes").Code)

	_, err := repo.CreateLicenseKey("GATE-KEY", "Acme Corp", time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	result := license.NewService(repo).Activate("GATE-KEY")
	require.True(t, result.Success)

	assert.Equal(t, http.StatusOK, get(r, "/api/notes").Code)
}
