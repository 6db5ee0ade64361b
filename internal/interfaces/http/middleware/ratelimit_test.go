package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealplan/backend/internal/interfaces/http/dto"
)

func rateLimitedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/api/v1/recipes", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("enforces the per-key budget", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("10.0.0.1"))
		}
		assert.False(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("keys do not share budgets", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("budget refills after the window", func(t *testing.T) {
		limiter := NewRateLimiter(1, 10*time.Millisecond)

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		time.Sleep(20 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.1"))
	})
}

func TestRateLimiter_Remaining(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)

	assert.Equal(t, 5, limiter.Remaining("10.0.0.1"), "fresh key has the full budget")

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.1")
	assert.Equal(t, 3, limiter.Remaining("10.0.0.1"))
}

func TestRateLimit(t *testing.T) {
	router := rateLimitedRouter(RateLimit(NewRateLimiter(2, time.Minute)))

	t.Run("requests within the limit pass with headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("requests past the limit get 429", func(t *testing.T) {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeRateLimited, resp.Error.Code)
	})
}

func TestAuthRateLimit(t *testing.T) {
	t.Run("blocked responses carry Retry-After", func(t *testing.T) {
		router := rateLimitedRouter(AuthRateLimit(NewRateLimiter(1, time.Minute)))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("auth keys do not drain the shared limiter", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.POST("/api/v1/auth/login", AuthRateLimit(limiter), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		router.GET("/api/v1/recipes", RateLimit(limiter), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		loginRec := httptest.NewRecorder()
		router.ServeHTTP(loginRec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
		assert.Equal(t, http.StatusOK, loginRec.Code)

		recipeRec := httptest.NewRecorder()
		router.ServeHTTP(recipeRec, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))
		assert.Equal(t, http.StatusOK, recipeRec.Code, "login attempt must not consume the recipe budget")
	})
}
