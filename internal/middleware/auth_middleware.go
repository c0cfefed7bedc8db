package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/handler/response"
	"github.com/yourusername/trivia-catalog/pkg/auth"
)

// AdminTokenParser проверяет токен администратора
type AdminTokenParser interface {
	ParseAdminToken(tokenString string) (*auth.AdminClaims, error)
}

// AuthMiddleware защищает изменяющие каталог маршруты
type AuthMiddleware struct {
	parser AdminTokenParser
}

// NewAuthMiddleware создает middleware; при nil parser защита выключена
func NewAuthMiddleware(parser AdminTokenParser) *AuthMiddleware {
	return &AuthMiddleware{parser: parser}
}

// RequireAdmin требует заголовок Authorization: Bearer {token} с ролью admin
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Authorize(c) {
			return
		}
		c.Next()
	}
}

// Authorize проверяет токен администратора и при отказе прерывает запрос с 401.
// Используется напрямую обработчиками, у которых защищена только часть операций.
func (m *AuthMiddleware) Authorize(c *gin.Context) bool {
	if m.parser == nil {
		return true
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		log.Printf("[Auth] [%s] Отсутствует или неверный заголовок Authorization", c.GetString(response.RequestIDKey))
		response.Abort(c, http.StatusUnauthorized)
		return false
	}

	claims, err := m.parser.ParseAdminToken(parts[1])
	if err != nil {
		log.Printf("[Auth] [%s] Токен отклонён: %v", c.GetString(response.RequestIDKey), err)
		response.Abort(c, http.StatusUnauthorized)
		return false
	}

	c.Set("admin_subject", claims.Subject)
	return true
}
