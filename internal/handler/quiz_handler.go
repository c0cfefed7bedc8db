package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/handler/dto"
	"github.com/yourusername/trivia-catalog/internal/handler/response"
)

// QuestionPicker выбирает следующий вопрос викторины
type QuestionPicker interface {
	NextQuestion(ctx context.Context, categoryID uint, previousIDs []uint) (*entity.Question, error)
}

// QuizHandler обрабатывает запросы игры в викторину
type QuizHandler struct {
	picker QuestionPicker
}

// NewQuizHandler создает новый обработчик викторины
func NewQuizHandler(picker QuestionPicker) *QuizHandler {
	return &QuizHandler{picker: picker}
}

// PlayQuiz возвращает случайный непоказанный вопрос категории.
// Когда вопросы закончились, question равен null.
// POST /quizzes
func (h *QuizHandler) PlayQuiz(c *gin.Context) {
	var req dto.QuizRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	question, err := h.picker.NextQuestion(c.Request.Context(), req.CategoryID(), req.PreviousIDs())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"question": question,
	})
}
