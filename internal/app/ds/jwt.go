package ds

import (
	"notesvc/internal/app/role"

	"github.com/golang-jwt/jwt"
)

type JWTClaims struct {
	jwt.StandardClaims
	UserID uint      `json:"user_id"`
	Login  string    `json:"login"`
	Role   role.Role `json:"role"`
}
