package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// RateLimitConfig defines rules for different endpoints.
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
	Algorithm   string // "fixed_window" or "sliding_window"
	Scope       string // "ip" or "user"
}

// Abuse limits for the credential endpoints. Everything else falls through to
// the default rule. The OTP 5-per-hour cap additionally lives in the OTP
// record itself, so rotating IPs does not bypass it.
var rateLimitRules = map[string]RateLimitConfig{
	"register": {
		MaxRequests: 3,
		Window:      time.Hour,
		Algorithm:   "fixed_window",
		Scope:       "ip",
	},
	"login": {
		MaxRequests: 10,
		Window:      15 * time.Minute,
		Algorithm:   "sliding_window",
		Scope:       "ip",
	},
	"otp_send": {
		MaxRequests: 5,
		Window:      time.Hour,
		Algorithm:   "fixed_window",
		Scope:       "ip",
	},
	"otp_validate": {
		MaxRequests: 10,
		Window:      10 * time.Minute,
		Algorithm:   "sliding_window",
		Scope:       "ip",
	},
	"forgot_password": {
		MaxRequests: 3,
		Window:      time.Hour,
		Algorithm:   "fixed_window",
		Scope:       "ip",
	},
	"global_ip": {
		MaxRequests: 1000,
		Window:      time.Minute,
		Algorithm:   "sliding_window",
		Scope:       "ip",
	},
}

func InitRateLimiter(redisClient *redis.Client) {
	rdb = redisClient
}

func getRateLimitRule(path string) RateLimitConfig {
	defaultRule := RateLimitConfig{
		MaxRequests: 60,
		Window:      time.Minute,
		Algorithm:   "sliding_window",
		Scope:       "ip",
	}

	switch {
	case strings.HasSuffix(path, "/otp"):
		return rateLimitRules["otp_send"]
	case strings.HasSuffix(path, "/otp-validate"):
		return rateLimitRules["otp_validate"]
	case strings.Contains(path, "/register"):
		return rateLimitRules["register"]
	case strings.HasSuffix(path, "/login"):
		return rateLimitRules["login"]
	case strings.HasSuffix(path, "/forgot-password"):
		return rateLimitRules["forgot_password"]
	default:
		return defaultRule
	}
}

func getIdentifier(c *gin.Context, scope string) string {
	if scope == "user" {
		if identity, ok := IdentityFrom(c); ok {
			return "user:" + identity.UUID
		}
	}
	return "ip:" + c.ClientIP()
}

var fixedWindowScript = redis.NewScript(`
local key = KEYS[1]
local expiry = ARGV[1]
local limit = tonumber(ARGV[2])

local current = redis.call('GET', key)
if current == false then
	redis.call('SET', key, 1, 'EX', expiry)
	return {1, limit - 1}
end

local count = tonumber(current)
if count >= limit then
	return {-1, 0}
end

local new_count = redis.call('INCR', key)
return {new_count, limit - new_count}
`)

func fixedWindowRateLimit(ctx context.Context, key string, config RateLimitConfig) (bool, int, error) {
	result, err := fixedWindowScript.Run(ctx, rdb, []string{"rate:fw:" + key},
		int(config.Window.Seconds()), config.MaxRequests).Result()
	if err != nil {
		return false, 0, err
	}

	results := result.([]interface{})
	current := results[0].(int64)
	remaining := results[1].(int64)

	// A negative count marks the saturated window.
	return current > 0, int(remaining), nil
}

var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window_start = tonumber(ARGV[2])
local max_requests = tonumber(ARGV[3])
local window_seconds = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, 0, window_start)

local current = redis.call('ZCARD', key)
if current >= max_requests then
	return {0, 0}
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window_seconds + 60)

local remaining = max_requests - current - 1
if remaining < 0 then remaining = 0 end

return {1, remaining}
`)

func slidingWindowRateLimit(ctx context.Context, key string, config RateLimitConfig) (bool, int, error) {
	now := time.Now().UnixMilli()
	windowStart := now - config.Window.Milliseconds()

	result, err := slidingWindowScript.Run(ctx, rdb, []string{"rate:sw:" + key},
		now, windowStart, config.MaxRequests, int(config.Window.Seconds())).Result()
	if err != nil {
		return false, 0, err
	}

	results := result.([]interface{})
	allowed := results[0].(int64) == 1
	remaining := int(results[1].(int64))

	return allowed, remaining, nil
}

// RateLimiter applies the per-endpoint rules plus a global per-IP safeguard.
// When Redis is unreachable the limiter fails open.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || c.Request.URL.Path == "/ping" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		globalKey := "global:ip:" + c.ClientIP()
		globalAllowed, _, err := slidingWindowRateLimit(ctx, globalKey, rateLimitRules["global_ip"])
		if err == nil && !globalAllowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Global rate limit exceeded",
			})
			c.Abort()
			return
		}

		rule := getRateLimitRule(c.Request.URL.Path)
		identifier := getIdentifier(c, rule.Scope)
		fullKey := fmt.Sprintf("%s:%s:%s", c.Request.Method, c.Request.URL.Path, identifier)

		var allowed bool
		var remaining int
		switch rule.Algorithm {
		case "fixed_window":
			allowed, remaining, err = fixedWindowRateLimit(ctx, fullKey, rule)
		default:
			allowed, remaining, err = slidingWindowRateLimit(ctx, fullKey, rule)
		}
		if err != nil {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rule.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(rule.Window).Unix()))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     fmt.Sprintf("Too many requests, please try again in %v", rule.Window),
				"retry_after": int(rule.Window.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
