package repository

import (
	"context"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
}
