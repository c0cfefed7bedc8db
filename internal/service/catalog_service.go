package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// QuestionsPerPage: фиксированный размер страницы списка вопросов
const QuestionsPerPage = 10

const categoriesCacheKey = "categories:map"

// QuestionPage: страница списка вопросов
type QuestionPage struct {
	Questions  []entity.Question
	Total      int64
	Categories map[uint]string
}

// CreateQuestionInput: данные для создания вопроса.
// nil означает, что поле не передано клиентом.
type CreateQuestionInput struct {
	Question   *string
	Answer     *string
	Difficulty *int
	Category   *uint
}

// CreateQuestionResult: созданный вопрос и обновлённый полный список
type CreateQuestionResult struct {
	Created   *entity.Question
	Questions []entity.Question
}

// CatalogService предоставляет методы для работы с каталогом вопросов и категорий
type CatalogService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	cacheRepo    repository.CacheRepository // nil, если Redis отключен
	cacheTTL     time.Duration
}

// NewCatalogService создает новый сервис каталога. cacheRepo может быть nil.
func NewCatalogService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *CatalogService {
	return &CatalogService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
	}
}

// ListCategories возвращает карту id → type всех категорий.
// Пустой каталог категорий считается ошибкой ErrEmptyResult.
func (s *CatalogService) ListCategories(ctx context.Context) (map[uint]string, error) {
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories: %w", apperrors.ErrEmptyResult)
	}
	return categories, nil
}

// CreateCategory создает категорию и сбрасывает кеш карты категорий
func (s *CatalogService) CreateCategory(ctx context.Context, categoryType *string) (*entity.Category, error) {
	if categoryType == nil {
		return nil, fmt.Errorf("%w: type is required", apperrors.ErrValidation)
	}

	category := &entity.Category{Type: strings.TrimSpace(*categoryType)}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: type must not be blank", apperrors.ErrValidation)
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.invalidateCategories(ctx)
	log.Printf("[CatalogService] Создана категория #%d %q", category.ID, category.Type)
	return category, nil
}

// ListQuestions возвращает страницу вопросов (page начинается с 1).
// Страница без вопросов: ErrEmptyResult, а не пустой успешный ответ.
func (s *CatalogService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	if page < 1 {
		page = 1
	}
	// Смещение таких страниц не помещается в int
	if page > math.MaxInt/QuestionsPerPage {
		return nil, fmt.Errorf("page %d is out of range: %w", page, apperrors.ErrEmptyResult)
	}
	offset := (page - 1) * QuestionsPerPage

	questions, total, err := s.questionRepo.List(ctx, QuestionsPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("page %d has no questions: %w", page, apperrors.ErrEmptyResult)
	}

	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:  questions,
		Total:      total,
		Categories: categories,
	}, nil
}

// GetQuestion возвращает вопрос по ID
func (s *CatalogService) GetQuestion(ctx context.Context, id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// DeleteQuestion удаляет вопрос. Несуществующий ID: ErrNotFound.
func (s *CatalogService) DeleteQuestion(ctx context.Context, id uint) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[CatalogService] Удален вопрос #%d", id)
	return nil
}

// CreateQuestion проверяет все четыре поля и создает вопрос.
// При ошибке валидации хранилище не изменяется.
func (s *CatalogService) CreateQuestion(ctx context.Context, input CreateQuestionInput) (*CreateQuestionResult, error) {
	question, err := input.toEntity()
	if err != nil {
		return nil, err
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	log.Printf("[CatalogService] Создан вопрос #%d в категории %d", question.ID, question.Category)

	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload questions: %w", err)
	}

	return &CreateQuestionResult{
		Created:   question,
		Questions: questions,
	}, nil
}

// SearchQuestions ищет вопросы по подстроке в тексте (без учёта регистра).
// Отсутствие совпадений: успешный пустой результат.
func (s *CatalogService) SearchQuestions(ctx context.Context, term string) ([]entity.Question, error) {
	questions, err := s.questionRepo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	if questions == nil {
		questions = []entity.Question{}
	}
	return questions, nil
}

// QuestionsByCategory возвращает вопросы категории.
// Несуществующая категория и категория без вопросов не различаются: обе дают ErrEmptyResult.
func (s *CatalogService) QuestionsByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("category %d: %w", categoryID, apperrors.ErrEmptyResult)
		}
		return nil, err
	}

	questions, err := s.questionRepo.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions of category %d: %w", categoryID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("category %d has no questions: %w", categoryID, apperrors.ErrEmptyResult)
	}
	return questions, nil
}

// ExportQuestions возвращает весь каталог для выгрузки в CSV/XLSX
func (s *CatalogService) ExportQuestions(ctx context.Context) ([]entity.Question, map[uint]string, error) {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load questions for export: %w", err)
	}
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, nil, err
	}
	return questions, categories, nil
}

// categoryMap читает карту категорий из кеша, при промахе читает из БД
func (s *CatalogService) categoryMap(ctx context.Context) (map[uint]string, error) {
	if s.cacheRepo != nil {
		var cached map[uint]string
		err := s.cacheRepo.GetJSON(ctx, categoriesCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[CatalogService] WARNING: ошибка чтения кеша категорий: %v", err)
		}
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	m := entity.CategoryMap(categories)

	if s.cacheRepo != nil && len(m) > 0 {
		if err := s.cacheRepo.SetJSON(ctx, categoriesCacheKey, m, s.cacheTTL); err != nil {
			log.Printf("[CatalogService] WARNING: не удалось сохранить кеш категорий: %v", err)
		}
	}
	return m, nil
}

func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(ctx, categoriesCacheKey); err != nil {
		log.Printf("[CatalogService] WARNING: не удалось сбросить кеш категорий: %v", err)
	}
}

// toEntity проверяет обязательные поля и собирает entity.Question
func (in CreateQuestionInput) toEntity() (*entity.Question, error) {
	var missing []string
	if in.Question == nil {
		missing = append(missing, "question")
	}
	if in.Answer == nil {
		missing = append(missing, "answer")
	}
	if in.Difficulty == nil {
		missing = append(missing, "difficulty")
	}
	if in.Category == nil {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields: %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}

	question := &entity.Question{
		Question:   strings.TrimSpace(*in.Question),
		Answer:     strings.TrimSpace(*in.Answer),
		Difficulty: *in.Difficulty,
		Category:   *in.Category,
	}
	if !question.HasText() {
		return nil, fmt.Errorf("%w: question and answer must not be blank", apperrors.ErrValidation)
	}
	if !entity.IsValidDifficulty(question.Difficulty) {
		return nil, fmt.Errorf("%w: difficulty must be between %d and %d", apperrors.ErrValidation, entity.MinDifficulty, entity.MaxDifficulty)
	}
	return question, nil
}
