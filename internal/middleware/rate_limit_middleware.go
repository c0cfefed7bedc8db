package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/yourusername/trivia-catalog/internal/config"
	"github.com/yourusername/trivia-catalog/internal/handler/response"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests: максимальное количество запросов за Window
	MaxRequests int
	// Window: временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix: префикс для ключей в Redis
	KeyPrefix string
}

// QuizRateLimitConfig: лимит на POST /quizzes
func QuizRateLimitConfig(cfg config.RateLimitConfig) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: cfg.QuizMaxRequests,
		Window:      cfg.Window(),
		KeyPrefix:   "rl:quiz",
	}
}

// WriteRateLimitConfig: лимит на изменяющие запросы каталога
func WriteRateLimitConfig(cfg config.RateLimitConfig) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: cfg.WriteMaxRequests,
		Window:      cfg.Window(),
		KeyPrefix:   "rl:write",
	}
}

// Counter считает запросы в фиксированном окне.
// Возвращает значение счётчика после инкремента и время до сброса окна.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisCounter: Counter на INCR + EXPIRE
type RedisCounter struct {
	client redis.UniversalClient
}

// NewRedisCounter создает счётчик поверх Redis
func NewRedisCounter(client redis.UniversalClient) *RedisCounter {
	return &RedisCounter{client: client}
}

// Hit реализует Counter
func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	// Первый запрос в окне, ставим TTL
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			log.Printf("[RateLimiter] Failed to set TTL for key %s: %v", key, err)
		}
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return count, ttl, nil
}

// RateLimiter создаёт middleware для rate limiting
type RateLimiter struct {
	counter Counter
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(counter Counter) *RateLimiter {
	return &RateLimiter{counter: counter}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из IP + route pattern.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, clientIP, path)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, ttl, err := rl.counter.Hit(ctx, key, cfg.Window)
		if err != nil {
			// fail-open: недоступность Redis не должна блокировать API
			log.Printf("[RateLimiter] Redis error for key %s: %v. Allowing request (fail-open).", key, err)
			c.Next()
			return
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		retryAfter := int(ttl.Seconds())

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

		if int(count) > cfg.MaxRequests {
			log.Printf("[RateLimiter] Rate limit exceeded for IP=%s path=%s. Count=%d, Limit=%d",
				clientIP, path, count, cfg.MaxRequests)

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			response.Abort(c, http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
