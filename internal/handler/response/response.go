package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// RequestIDKey: ключ контекста Gin, под которым хранится ID запроса
const RequestIDKey = "request_id"

var messages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable entity",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "internal server error",
	http.StatusServiceUnavailable:  "service unavailable",
}

// Envelope: стандартное тело ответа с ошибкой
type Envelope struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// NewEnvelope создает тело ошибки для HTTP статуса
func NewEnvelope(status int) Envelope {
	msg, ok := messages[status]
	if !ok {
		msg = http.StatusText(status)
	}
	return Envelope{Success: false, Error: status, Message: msg}
}

// Abort прерывает цепочку обработчиков и отвечает стандартной ошибкой
func Abort(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, NewEnvelope(status))
}

// StatusFor отображает ошибку сервиса в HTTP статус
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrEmptyResult):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error отвечает клиенту статусом, соответствующим ошибке.
// Детали ошибки клиенту не отдаются, только в лог.
func Error(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: [%s] %s %s: %v", c.GetString(RequestIDKey), c.Request.Method, c.Request.URL.Path, err)
	} else {
		log.Printf("[%s] %s %s -> %d: %v", c.GetString(RequestIDKey), c.Request.Method, c.Request.URL.Path, status, err)
	}
	Abort(c, status)
}

// NoRoute: обработчик неизвестных маршрутов
func NoRoute(c *gin.Context) {
	Abort(c, http.StatusNotFound)
}

// NoMethod: обработчик недопустимых методов
func NoMethod(c *gin.Context) {
	Abort(c, http.StatusMethodNotAllowed)
}
