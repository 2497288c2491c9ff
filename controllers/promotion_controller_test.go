package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toptours/api-go/utils"
)

// postSpend runs SpendPoints directly against a controller with no database.
// Every case here must be rejected before the handler touches storage.
func postSpend(t *testing.T, user *utils.UserClaims, body string) (*httptest.ResponseRecorder, StandardResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pc := &PromotionController{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/promotion/spend", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if user != nil {
		c.Set(string(utils.UserContextKey), user)
	}

	pc.SpendPoints(c)

	var resp StandardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSpendPointsRequiresAuth(t *testing.T) {
	w, resp := postSpend(t, nil, `{"listingType":"tour","listingId":"T1","points":50}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Authentication required", resp.Error)
}

func TestSpendPointsRejectsBelowMinimum(t *testing.T) {
	user := &utils.UserClaims{UserID: "user-1"}

	tests := []struct {
		name   string
		points string
	}{
		{"one point", "1"},
		{"just under minimum", "9"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postSpend(t, user,
				`{"listingType":"tour","listingId":"T1","points":`+tt.points+`}`)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, "Minimum spend is 10 points", resp.Error)
		})
	}
}

func TestSpendPointsRejectsBadListingType(t *testing.T) {
	user := &utils.UserClaims{UserID: "user-1"}
	w, resp := postSpend(t, user, `{"listingType":"hotel","listingId":"H1","points":50}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestSpendFailureResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "allowance exhausted",
			err:        errInsufficientPoints,
			wantStatus: http.StatusBadRequest,
			wantError:  "Insufficient points: not enough daily allowance remaining",
		},
		{
			name:       "wrapped allowance error",
			err:        errors.Join(errors.New("spend failed"), errInsufficientPoints),
			wantStatus: http.StatusBadRequest,
			wantError:  "Insufficient points: not enough daily allowance remaining",
		},
		{
			name:       "storage error",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			spendFailureResponse(c, tt.err)

			var resp StandardResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}
