package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toptours/api-go/utils"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authedRouter() (*gin.Engine, *utils.UserClaims) {
	gin.SetMode(gin.TestMode)
	captured := &utils.UserClaims{}
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		*captured = *utils.GetUser(c)
		c.Status(http.StatusOK)
	})
	return r, captured
}

func TestAuthMiddleware(t *testing.T) {
	validClaims := jwt.MapClaims{
		"sub":   "user-123",
		"email": "traveler@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "not-a-bearer-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			authHeader: "Bearer " + signToken(t, "some-other-secret", jwt.SigningMethodHS256, validClaims),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "user-123",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing sub claim",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"email": "traveler@example.com",
				"exp":   time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, validClaims),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := authedRouter()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddlewareExtractsClaims(t *testing.T) {
	r, captured := authedRouter()

	token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-456",
		"email": "owner@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-456", captured.UserID)
	assert.Equal(t, "owner@example.com", captured.Email)
	assert.Equal(t, "authenticated", captured.Role)
}

func TestAuthMiddlewareAppMetadataRoleWins(t *testing.T) {
	r, captured := authedRouter()

	token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin-1",
		"role": "authenticated",
		"app_metadata": map[string]interface{}{
			"role": "admin",
		},
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", captured.Role)
	assert.True(t, captured.IsAdmin())
}

func TestOptionalAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validToken := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-789",
		"email": "planner@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		authHeader string
		wantUserID string
	}{
		{"no header passes anonymously", "", ""},
		{"malformed header passes anonymously", "not-a-bearer-token", ""},
		{"invalid token passes anonymously", "Bearer " + signToken(t, "some-other-secret", jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-789",
			"exp": time.Now().Add(time.Hour).Unix(),
		}), ""},
		{"valid token sets claims", "Bearer " + validToken, "user-789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *utils.UserClaims
			r := gin.New()
			r.GET("/plans", OptionalAuthMiddleware(testSecret), func(c *gin.Context) {
				captured = utils.GetUser(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/plans", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			if tt.wantUserID == "" {
				assert.Nil(t, captured)
			} else {
				require.NotNil(t, captured)
				assert.Equal(t, tt.wantUserID, captured.UserID)
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		user       *utils.UserClaims
		wantStatus int
	}{
		{"no user in context", nil, http.StatusForbidden},
		{"regular user", &utils.UserClaims{UserID: "u1", Role: "authenticated"}, http.StatusForbidden},
		{"admin user", &utils.UserClaims{UserID: "a1", Role: "admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", func(c *gin.Context) {
				if tt.user != nil {
					c.Set(string(utils.UserContextKey), tt.user)
				}
			}, AdminMiddleware(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
