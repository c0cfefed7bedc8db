package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/handler/response"
)

// Pinger: зависимость, доступность которой проверяет healthcheck
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc адаптирует функцию к интерфейсу Pinger
type PingFunc func(ctx context.Context) error

// Ping реализует Pinger
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler отвечает на проверки живости сервиса
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler создает обработчик healthcheck; nil-зависимости пропускаются
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	filtered := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			filtered[name] = p
		}
	}
	return &HealthHandler{checks: filtered}
}

// Health проверяет зависимости
// GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	statuses := make(map[string]string, len(h.checks))
	healthy := true
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			log.Printf("[Health] %s недоступен: %v", name, err)
			statuses[name] = "down"
			healthy = false
			continue
		}
		statuses[name] = "up"
	}

	if !healthy {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   http.StatusServiceUnavailable,
			"message": response.NewEnvelope(http.StatusServiceUnavailable).Message,
			"checks":  statuses,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"checks":  statuses,
	})
}
