package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis, *RateLimiter) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	rl := NewPlanGenerationRateLimiter(client, limit, time.Minute, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 30, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	r := gin.New()
	r.POST("/generate", rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mr, rl
}

func post(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/generate", nil)
	req.RemoteAddr = ip + ":1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	r, mr, _ := newLimitedRouter(t, 2)

	w := post(r, "10.0.0.1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1").Code)

	w = post(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
	assert.Contains(t, w.Body.String(), `"retry_after":30`)

	// Other clients have their own budget.
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.2").Code)

	key := "rate_limit:plan_generation:10.0.0.1:" + "1772366400"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	r, mr, _ := newLimitedRouter(t, 1)
	mr.Close()

	w := post(r, "10.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}
