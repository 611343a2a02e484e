package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/intl-tools/translator-service/internal/domain/model"
)

func TestNewShardedRateLimiter(t *testing.T) {
	tests := []struct {
		name       string
		numShards  int
		wantShards int
	}{
		{name: "default shards when zero", numShards: 0, wantShards: defaultNumShards},
		{name: "default shards when negative", numShards: -1, wantShards: defaultNumShards},
		{name: "custom shard count", numShards: 8, wantShards: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(10, time.Minute, tt.numShards)
			defer rl.Stop()

			assert.Equal(t, tt.wantShards, rl.numShards)
			assert.Len(t, rl.shards, tt.wantShards)
		})
	}
}

func TestCheckRateLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := rl.checkRateLimit("client")
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}
	allowed, remaining := rl.checkRateLimit("client")
	assert.False(t, allowed)
	assert.Zero(t, remaining)

	t.Run("identifiers are independent", func(t *testing.T) {
		allowed, _ := rl.checkRateLimit("other")
		assert.True(t, allowed)
	})

	t.Run("window reset restores tokens", func(t *testing.T) {
		short := NewRateLimiter(1, time.Millisecond)
		defer short.Stop()

		allowed, _ := short.checkRateLimit("c")
		assert.True(t, allowed)
		allowed, _ = short.checkRateLimit("c")
		assert.False(t, allowed)

		time.Sleep(5 * time.Millisecond)
		allowed, _ = short.checkRateLimit("c")
		assert.True(t, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	router := gin.New()
	router.Use(RequestID(), rl.RateLimit())
	router.GET("/limited", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestStop(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	rl.Stop()
	rl.Stop()

	// Checks keep working after the cleanup goroutine is gone.
	allowed, _ := rl.checkRateLimit("client")
	assert.True(t, allowed)
}

func TestGetIdentifier(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	t.Run("authenticated requests keyed by user", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		user := &model.User{}
		c.Set(string(CurrentUserKey), user)

		assert.Equal(t, "user:"+user.ID.String(), rl.getIdentifier(c))
	})

	t.Run("anonymous requests keyed by ip", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Equal(t, "ip:"+c.ClientIP(), rl.getIdentifier(c))
	})
}
