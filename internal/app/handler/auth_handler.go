package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"

	"notesvc/internal/app/config"
	"notesvc/internal/app/ds"
	"notesvc/internal/app/dto"
	"notesvc/internal/app/hash"
	"notesvc/internal/app/license"
	"notesvc/internal/app/redis"
	"notesvc/internal/app/repository"
	"notesvc/internal/app/role"
)

type AuthHandler struct {
	Repository  *repository.Repository
	RedisClient *redis.Client
	Config      *config.Config
	License     *license.Service
}

func NewAuthHandler(r *repository.Repository, redisClient *redis.Client, cfg *config.Config, licenseService *license.Service) *AuthHandler {
	return &AuthHandler{
		Repository:  r,
		RedisClient: redisClient,
		Config:      cfg,
		License:     licenseService,
	}
}

// RegisterUser registers a new user
// @Summary Register
// @Description Creates a new account. The first registered user becomes admin; afterwards registration is open only while public registration is enabled.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	userCount, err := h.Repository.CountUsers()
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	// the first account is always allowed in and becomes the admin
	userRole := role.User
	if userCount == 0 {
		userRole = role.Admin
	} else {
		allowed, err := h.License.Settings()
		if err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
		if !allowed {
			h.errorHandler(ctx, http.StatusForbidden, errors.New("public registration is disabled"))
			return
		}
	}

	exists, err := h.Repository.UserExistsByLogin(request.Login)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	if exists {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("user with this login already exists"))
		return
	}

	user, err := h.Repository.CreateUser(request.Login, hash.Hash(request.Password), request.FullName, userRole)
	if err != nil {
		logrus.Error("Error creating user: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("failed to register user"))
		return
	}

	accessToken, err := h.issueToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "user registered successfully",
		"user":    h.userResponse(user),
		"data":    accessToken,
	})
}

// LoginUser authenticates a user
// @Summary Login
// @Description Authenticates a user and returns a JWT token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	user, err := h.Repository.GetUserByLogin(request.Login)
	if err != nil || !hash.Verify(request.Password, user.Password) {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid login or password"))
		return
	}

	if err := h.Repository.UpdateUserLastSignedIn(user.ID); err != nil {
		logrus.Warnf("failed to update last_signed_in for user %d: %v", user.ID, err)
	}

	accessToken, err := h.issueToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    "user authenticated successfully",
		"user":       h.userResponse(user),
		"token":      accessToken,
		"expires_in": int(h.Config.JWT.ExpiresIn.Seconds()),
		"token_type": "Bearer",
	})
}

// LogoutUser logs the user out
// @Summary Logout
// @Description Revokes the presented JWT token by blacklisting it until expiry
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	tokenString := ctx.GetHeader("Authorization")
	if tokenString == "" {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("authorization header missing"))
		return
	}

	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid token claims"))
		return
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		// already expired, nothing to blacklist
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "user logged out successfully",
		})
		return
	}

	err = h.RedisClient.WriteJWTToBlacklist(context.Background(), tokenString, ttl)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "user logged out successfully",
	})
}

// GetUserProfile returns the current user
// @Summary Profile
// @Description Returns information about the authenticated user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetUserProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("user not authenticated"))
		return
	}

	user, err := h.Repository.GetUserByID(userID.(uint))
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, errors.New("user not found"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   h.userResponse(user),
	})
}

func (h *AuthHandler) issueToken(user *ds.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "notesvc",
		},
		UserID: user.ID,
		Login:  user.Login,
		Role:   user.Role,
	})

	return token.SignedString([]byte(h.Config.JWT.Token))
}

func (h *AuthHandler) userResponse(user *ds.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Login:    user.Login,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     string(user.Role),
	}
}

func (h *AuthHandler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}
