package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notesvc/internal/app/config"
	"notesvc/internal/app/license"
	"notesvc/internal/app/repository"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *license.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Token:         "test-secret",
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
	}
	licenseService := license.NewService(repo)
	h := NewAuthHandler(repo, nil, cfg, licenseService)

	r := gin.New()
	r.POST("/api/auth/register", h.RegisterUser)
	r.POST("/api/auth/login", h.LoginUser)
	return r, licenseService
}

func register(t *testing.T, r *gin.Engine, login string) *registerResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"login":     login,
		"password":  "secret123",
		"full_name": "Test User",
	})
	var resp registerResponse
	resp.code = w.Code
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return &resp
}

type registerResponse struct {
	code   int
	Status string `json:"status"`
	User   struct {
		Login string `json:"login"`
		Role  string `json:"role"`
	} `json:"user"`
	Data string `json:"data"`
}

func TestFirstRegisteredUserBecomesAdmin(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	resp := register(t, r, "alice")
	require.Equal(t, http.StatusCreated, resp.code)
	assert.Equal(t, "admin", resp.User.Role)
	assert.NotEmpty(t, resp.Data)

	resp = register(t, r, "bob")
	require.Equal(t, http.StatusCreated, resp.code)
	assert.Equal(t, "user", resp.User.Role)
}

func TestRegistrationClosedWhenDisabled(t *testing.T) {
	r, licenseService := newAuthTestRouter(t)

	require.Equal(t, http.StatusCreated, register(t, r, "alice").code)

	require.NoError(t, licenseService.UpdateSettings(false))
	assert.Equal(t, http.StatusForbidden, register(t, r, "bob").code)

	// the switch reopens registration
	require.NoError(t, licenseService.UpdateSettings(true))
	assert.Equal(t, http.StatusCreated, register(t, r, "bob").code)
}

func TestRegisterStorageFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Token:         "test-secret",
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
	}
	h := NewAuthHandler(repo, nil, cfg, license.NewService(repo))
	r := gin.New()
	r.POST("/api/auth/register", h.RegisterUser)

	// fail filtered reads only, so the user count succeeds and the
	// login-existence lookup is the query that breaks
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("fail_filtered_query", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Clauses["WHERE"]; ok {
			_ = tx.AddError(errors.New("storage offline"))
		}
	}))

	resp := register(t, r, "alice")
	assert.Equal(t, http.StatusInternalServerError, resp.code)
}

func TestDuplicateLoginRejected(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	require.Equal(t, http.StatusCreated, register(t, r, "alice").code)
	assert.Equal(t, http.StatusBadRequest, register(t, r, "alice").code)
}

func TestLogin(t *testing.T) {
	r, _ := newAuthTestRouter(t)
	require.Equal(t, http.StatusCreated, register(t, r, "alice").code)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"login":    "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"login":    "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
