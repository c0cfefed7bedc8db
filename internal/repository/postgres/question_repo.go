package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос.
// Несуществующая категория (нарушение внешнего ключа) возвращается как ErrValidation.
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, question.Category)
		}
		return fmt.Errorf("create question failed: %w", err)
	}
	return nil
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// Delete удаляет вопрос. Если строки не было, возвращает ErrNotFound.
func (r *QuestionRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete question #%d failed: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question #%d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// List возвращает страницу вопросов и общее количество вопросов в каталоге
func (r *QuestionRepo) List(ctx context.Context, limit, offset int) ([]entity.Question, int64, error) {
	var questions []entity.Question
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&entity.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("id ASC").Limit(limit).Offset(offset).Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// ListAll возвращает все вопросы
func (r *QuestionRepo) ListAll(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Order("id ASC").Find(&questions).Error
	return questions, err
}

// Search ищет вопросы, текст которых содержит term (без учёта регистра).
// Ответ в поиске не участвует.
func (r *QuestionRepo) Search(ctx context.Context, term string) ([]entity.Question, error) {
	var questions []entity.Question
	pattern := "%" + escapeLike(term) + "%"
	err := r.db.WithContext(ctx).
		Where("question ILIKE ?", pattern).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}

// GetByCategory возвращает все вопросы категории
func (r *QuestionRepo) GetByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Where("category = ?", categoryID).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}

// escapeLike экранирует спецсимволы LIKE, чтобы term искался как обычная подстрока.
// В Postgres экранирующий символ по умолчанию: обратный слэш.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
