package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"arcade_hub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	service.InitJWT("middleware-test-secret")
}

func whoami(c *gin.Context) {
	id, ok := UserID(c)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.String(http.StatusOK, id.String())
}

func TestJWT(t *testing.T) {
	r := gin.New()
	r.GET("/me", JWT(), whoami)

	userID := uuid.New()
	token, err := service.GenerateJWT(userID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}

func TestSimpleRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/x", SimpleRateLimit(2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestPlayRateLimitFailsOpenWithoutRedis(t *testing.T) {
	UseRedis(nil)
	r := gin.New()
	r.POST("/play", JWT(), PlayRateLimit(1, time.Minute), whoami)

	token, err := service.GenerateJWT(uuid.New())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/play", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// without JWT there is no identity to key on
	r2 := gin.New()
	r2.POST("/play", PlayRateLimit(1, time.Minute), whoami)
	w := httptest.NewRecorder()
	r2.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/play", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
