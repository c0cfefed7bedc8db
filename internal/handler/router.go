package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/handler/response"
	"github.com/yourusername/trivia-catalog/internal/middleware"
)

// Routes: зависимости для регистрации маршрутов
type Routes struct {
	Catalog *CatalogHandler
	Quiz    *QuizHandler
	Health  *HealthHandler

	// RequireAdmin защищает изменения каталога; nil: без защиты
	RequireAdmin gin.HandlerFunc
	// QuizLimit и WriteLimit: rate limit middleware; nil: без ограничений
	QuizLimit  gin.HandlerFunc
	WriteLimit gin.HandlerFunc
}

// Register настраивает маршруты API и обработку неизвестных маршрутов/методов
func (r Routes) Register(router *gin.Engine) {
	router.HandleMethodNotAllowed = true
	router.NoRoute(response.NoRoute)
	router.NoMethod(response.NoMethod)

	questionID := middleware.ExtractUintParam("id", "questionID", http.StatusNotFound)
	categoryID := middleware.ExtractUintParam("id", "categoryID", http.StatusUnprocessableEntity)

	router.GET("/healthz", r.Health.Health)

	// Категории
	router.GET("/categories", r.Catalog.GetCategories)
	router.POST("/categories", chain(r.WriteLimit, r.RequireAdmin, r.Catalog.CreateCategory)...)
	router.GET("/categories/:id/questions", categoryID, r.Catalog.GetQuestionsByCategory)

	// Вопросы
	router.GET("/questions", r.Catalog.GetQuestions)
	router.POST("/questions", chain(r.WriteLimit, r.Catalog.PostQuestions)...)
	router.POST("/questions/search", r.Catalog.SearchQuestions)
	router.POST("/questions/create", chain(r.WriteLimit, r.RequireAdmin, r.Catalog.CreateQuestion)...)
	router.GET("/questions/export", r.Catalog.ExportQuestions)
	router.GET("/questions/:id", questionID, r.Catalog.GetQuestion)
	router.DELETE("/questions/:id", chain(r.WriteLimit, r.RequireAdmin, questionID, r.Catalog.DeleteQuestion)...)

	// Викторина
	router.POST("/quizzes", chain(r.QuizLimit, r.Quiz.PlayQuiz)...)
}

// chain собирает цепочку обработчиков, пропуская nil
func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
