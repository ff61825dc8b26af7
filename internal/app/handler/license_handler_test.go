package handler

import (
	"bytes"
	"encoding/json"
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

func newLicenseTestRouter(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	h := NewAPIHandler(repo, nil, license.NewService(repo), nil)

	r := gin.New()
	r.GET("/api/license/info", h.GetLicenseInfo)
	r.GET("/api/license/check-access", h.CheckAccess)
	r.POST("/api/license/activate", h.ActivateLicense)
	r.GET("/api/license/server-id", h.GetServerID)
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLicenseInfoEndpoint(t *testing.T) {
	r, _ := newLicenseTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/license/info", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			ServerID           string `json:"server_id"`
			IsActive           bool   `json:"is_active"`
			TrialDaysRemaining int    `json:"trial_days_remaining"`
			IsBlocked          bool   `json:"is_blocked"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "success", resp.Status)
	assert.Len(t, resp.Data.ServerID, 16)
	assert.False(t, resp.Data.IsActive)
	assert.Equal(t, license.TrialDays, resp.Data.TrialDaysRemaining)
	assert.False(t, resp.Data.IsBlocked)
}

func TestActivateUnknownKeyEndpoint(t *testing.T) {
	r, _ := newLicenseTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/license/activate", gin.H{"key": "NOPE"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fail", resp.Status)
	assert.Equal(t, license.MsgInvalidKey, resp.Message)
}

func TestActivateValidKeyEndpoint(t *testing.T) {
	r, repo := newLicenseTestRouter(t)

	_, err := repo.CreateLicenseKey("GOOD-KEY", "Acme Corp", time.Now().Add(365*24*time.Hour))
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/license/activate", gin.H{"key": "GOOD-KEY"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			OwnerName string `json:"owner_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, license.MsgActivated, resp.Message)
	assert.Equal(t, "Acme Corp", resp.Data.OwnerName)

	// state is visible on the info endpoint afterwards
	w = doJSON(t, r, http.MethodGet, "/api/license/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var info struct {
		Data struct {
			IsActive  bool    `json:"is_active"`
			OwnerName *string `json:"owner_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.True(t, info.Data.IsActive)
	require.NotNil(t, info.Data.OwnerName)
	assert.Equal(t, "Acme Corp", *info.Data.OwnerName)
}

func TestActivateMissingKeyEndpoint(t *testing.T) {
	r, _ := newLicenseTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/license/activate", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckAccessEndpoint(t *testing.T) {
	r, _ := newLicenseTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/license/check-access", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			HasAccess    bool `json:"has_access"`
			LicenseValid bool `json:"license_valid"`
			TrialValid   bool `json:"trial_valid"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.HasAccess)
	assert.False(t, resp.Data.LicenseValid)
	assert.True(t, resp.Data.TrialValid)
}
