package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourusername/trivia-catalog/internal/handler/response"
)

// RequestIDHeader: заголовок с ID запроса
const RequestIDHeader = "X-Request-ID"

// RequestID присваивает каждому запросу ID (или берет переданный клиентом)
// и возвращает его в заголовке ответа
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
