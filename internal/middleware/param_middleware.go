package middleware

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/handler/response"
)

// ExtractUintParam создает middleware для извлечения и валидации числового параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
// failStatus - HTTP статус ответа, если параметр не является числом.
func ExtractUintParam(paramName, contextKey string, failStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			log.Printf("[%s] Некорректный параметр %s=%q", c.GetString(response.RequestIDKey), paramName, idStr)
			response.Abort(c, failStatus)
			return
		}
		// Сохраняем как uint для единообразия
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
