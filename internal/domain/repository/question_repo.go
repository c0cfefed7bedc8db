package repository

import (
	"context"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами.
// Все списки упорядочены по возрастанию ID.
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	Delete(ctx context.Context, id uint) error

	// List возвращает страницу вопросов (limit/offset) и общее количество
	List(ctx context.Context, limit, offset int) ([]entity.Question, int64, error)
	ListAll(ctx context.Context) ([]entity.Question, error)
	// Search ищет подстроку в тексте вопроса без учёта регистра
	Search(ctx context.Context, term string) ([]entity.Question, error)
	GetByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error)
}
