package middleware

import (
	"net/http"
	"strings"

	"github.com/toptours/api-go/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// parseUserClaims verifies an HS256 token and extracts the identity claims.
func parseUserClaims(tokenString, jwtSecret string) (*utils.UserClaims, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !parsedToken.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	email, _ := claims["email"].(string)

	// Supabase puts the application role in app_metadata; default to the
	// top-level role claim when absent.
	role, _ := claims["role"].(string)
	if appMeta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if appRole, ok := appMeta["role"].(string); ok && appRole != "" {
			role = appRole
		}
	}

	return &utils.UserClaims{UserID: sub, Email: email, Role: role}, nil
}

// AuthMiddleware verifies the Supabase-issued access token (HS256, signed with
// the project's JWT secret) and places the caller's claims in the context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header is required"})
			c.Abort()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token format"})
			c.Abort()
			return
		}

		user, err := parseUserClaims(bearerToken[1], jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), user)
		c.Next()
	}
}

// OptionalAuthMiddleware extracts claims when a valid bearer token is present
// but never rejects the request. Used on public routes whose response depends
// on whether the caller is the owner, like private travel plans.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			if bearerToken := strings.Split(authHeader, " "); len(bearerToken) == 2 {
				if user, err := parseUserClaims(bearerToken[1], jwtSecret); err == nil {
					c.Set(string(utils.UserContextKey), user)
				}
			}
		}
		c.Next()
	}
}

// AdminMiddleware gates CRM and content-admin routes. Run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := utils.GetUser(c)
		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
