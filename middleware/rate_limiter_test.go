package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimitedRouter(t *testing.T) (*miniredis.Miniredis, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		InitRateLimiter(nil)
	})
	InitRateLimiter(client)

	r := gin.New()
	r.Use(RateLimiter())
	r.POST("/v1/register", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	r.POST("/v1/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return mr, r
}

func postStatus(r *gin.Engine, path string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestFixedWindowDeniesOverLimit(t *testing.T) {
	_, r := newLimitedRouter(t)

	limit := rateLimitRules["register"].MaxRequests
	for i := 0; i < limit; i++ {
		if code := postStatus(r, "/v1/register"); code != http.StatusOK {
			t.Fatalf("request #%d status = %d, want 200", i+1, code)
		}
	}
	for i := 0; i < 3; i++ {
		if code := postStatus(r, "/v1/register"); code != http.StatusTooManyRequests {
			t.Fatalf("over-limit request status = %d, want 429", code)
		}
	}
}

func TestFixedWindowResets(t *testing.T) {
	mr, r := newLimitedRouter(t)

	limit := rateLimitRules["register"].MaxRequests
	for i := 0; i <= limit; i++ {
		postStatus(r, "/v1/register")
	}
	if code := postStatus(r, "/v1/register"); code != http.StatusTooManyRequests {
		t.Fatalf("saturated window status = %d, want 429", code)
	}

	mr.FastForward(rateLimitRules["register"].Window)

	if code := postStatus(r, "/v1/register"); code != http.StatusOK {
		t.Fatalf("post-window status = %d, want 200", code)
	}
}

func TestSlidingWindowDeniesOverLimit(t *testing.T) {
	_, r := newLimitedRouter(t)

	limit := rateLimitRules["login"].MaxRequests
	for i := 0; i < limit; i++ {
		if code := postStatus(r, "/v1/auth/login"); code != http.StatusOK {
			t.Fatalf("request #%d status = %d, want 200", i+1, code)
		}
	}
	if code := postStatus(r, "/v1/auth/login"); code != http.StatusTooManyRequests {
		t.Fatalf("over-limit request status = %d, want 429", code)
	}
}

func TestRateLimitHeaders(t *testing.T) {
	_, r := newLimitedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/register", nil)
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-RateLimit-Limit"); got != "3" {
		t.Errorf("X-RateLimit-Limit = %q, want 3", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "2" {
		t.Errorf("X-RateLimit-Remaining = %q, want 2", got)
	}
}

func TestRateLimiterFailsOpenWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	InitRateLimiter(nil)

	r := gin.New()
	r.Use(RateLimiter())
	r.POST("/v1/register", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	for i := 0; i < 10; i++ {
		if code := postStatus(r, "/v1/register"); code != http.StatusOK {
			t.Fatalf("status = %d, want 200 with no limiter backend", code)
		}
	}
}
