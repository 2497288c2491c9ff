package utils

import (
	"github.com/gin-gonic/gin"
)

// UserClaims carries the identity extracted from a Supabase-issued JWT.
// UserID is the Supabase auth UUID (the sub claim).
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (u *UserClaims) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}
