package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
	"github.com/yourusername/trivia-catalog/internal/service"
)

// FlexUint принимает как JSON-число, так и строку с числом ("2").
// Фронтенд отправляет ID категорий из <select> строками.
type FlexUint uint

// UnmarshalJSON реализует json.Unmarshaler
func (f *FlexUint) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil {
		return err
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("%w: %s is not a valid id", apperrors.ErrValidation, string(data))
	}
	*f = FlexUint(v)
	return nil
}

// FlexInt принимает как JSON-число, так и строку с числом
type FlexInt int

// UnmarshalJSON реализует json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %s is not a valid integer", apperrors.ErrValidation, string(data))
	}
	*f = FlexInt(v)
	return nil
}

func unquoteNumber(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return strings.TrimSpace(s), nil
	}
	return string(data), nil
}

// CreateCategoryRequest: тело POST /categories
type CreateCategoryRequest struct {
	Type *string `json:"type"`
}

// QuestionRequest: тело POST /questions: либо поиск (searchTerm), либо создание вопроса.
// Указатели позволяют отличить отсутствующее поле от нулевого значения.
type QuestionRequest struct {
	SearchTerm *string   `json:"searchTerm"`
	Question   *string   `json:"question"`
	Answer     *string   `json:"answer"`
	Difficulty *FlexInt  `json:"difficulty"`
	Category   *FlexUint `json:"category"`
}

// IsSearch сообщает, что запрос является поиском
func (r *QuestionRequest) IsSearch() bool {
	return r.SearchTerm != nil
}

// ToCreateInput преобразует запрос во входные данные сервиса
func (r *QuestionRequest) ToCreateInput() service.CreateQuestionInput {
	input := service.CreateQuestionInput{
		Question: r.Question,
		Answer:   r.Answer,
	}
	if r.Difficulty != nil {
		d := int(*r.Difficulty)
		input.Difficulty = &d
	}
	if r.Category != nil {
		c := uint(*r.Category)
		input.Category = &c
	}
	return input
}

// QuizCategory: выбранная категория викторины; id 0 означает "все категории"
type QuizCategory struct {
	ID   *FlexUint `json:"id"`
	Type string    `json:"type"`
}

// QuizRequest: тело POST /quizzes
type QuizRequest struct {
	PreviousQuestions *[]FlexUint   `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// Validate проверяет наличие обязательных полей
func (r *QuizRequest) Validate() error {
	if r.PreviousQuestions == nil {
		return fmt.Errorf("%w: previous_questions is required", apperrors.ErrValidation)
	}
	if r.QuizCategory == nil || r.QuizCategory.ID == nil {
		return fmt.Errorf("%w: quiz_category.id is required", apperrors.ErrValidation)
	}
	return nil
}

// CategoryID возвращает ID категории викторины (0: все категории)
func (r *QuizRequest) CategoryID() uint {
	return uint(*r.QuizCategory.ID)
}

// PreviousIDs возвращает ID уже показанных вопросов
func (r *QuizRequest) PreviousIDs() []uint {
	ids := make([]uint, len(*r.PreviousQuestions))
	for i, id := range *r.PreviousQuestions {
		ids[i] = uint(id)
	}
	return ids
}

// QuestionList гарантирует, что пустой список сериализуется как [], а не null
func QuestionList(questions []entity.Question) []entity.Question {
	if questions == nil {
		return []entity.Question{}
	}
	return questions
}
