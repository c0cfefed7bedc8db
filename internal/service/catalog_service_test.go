package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

var testCategories = []entity.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
}

func newTestCatalogService(questionRepo *MockQuestionRepository, categoryRepo *MockCategoryRepository) *CatalogService {
	return NewCatalogService(questionRepo, categoryRepo, nil, 0)
}

// ============================================================================
// Категории
// ============================================================================

func TestCatalogService_ListCategories_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("List", mock.Anything).Return(testCategories, nil)

	svc := newTestCatalogService(new(MockQuestionRepository), categoryRepo)

	categories, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[uint]string{1: "Science", 2: "Art"}, categories)
	categoryRepo.AssertExpectations(t)
}

func TestCatalogService_ListCategories_Empty(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("List", mock.Anything).Return([]entity.Category{}, nil)

	svc := newTestCatalogService(new(MockQuestionRepository), categoryRepo)

	_, err := svc.ListCategories(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrEmptyResult, "Пустой список категорий должен быть ошибкой")
}

func TestCatalogService_ListCategories_CacheHit(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	cache := new(MockCacheRepository)
	cache.On("GetJSON", mock.Anything, categoriesCacheKey, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*map[uint]string)
			*dest = map[uint]string{3: "History"}
		}).
		Return(nil)

	svc := NewCatalogService(new(MockQuestionRepository), categoryRepo, cache, time.Minute)

	categories, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[uint]string{3: "History"}, categories)
	categoryRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestCatalogService_ListCategories_CacheMissFillsCache(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("List", mock.Anything).Return(testCategories, nil)

	cache := new(MockCacheRepository)
	cache.On("GetJSON", mock.Anything, categoriesCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	cache.On("SetJSON", mock.Anything, categoriesCacheKey, map[uint]string{1: "Science", 2: "Art"}, time.Minute).Return(nil)

	svc := NewCatalogService(new(MockQuestionRepository), categoryRepo, cache, time.Minute)

	_, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestCatalogService_ListCategories_CacheErrorFallsBackToStore(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("List", mock.Anything).Return(testCategories, nil)

	cache := new(MockCacheRepository)
	cache.On("GetJSON", mock.Anything, categoriesCacheKey, mock.Anything).Return(errors.New("redis: connection refused"))
	cache.On("SetJSON", mock.Anything, categoriesCacheKey, mock.Anything, time.Minute).Return(errors.New("redis: connection refused"))

	svc := NewCatalogService(new(MockQuestionRepository), categoryRepo, cache, time.Minute)

	categories, err := svc.ListCategories(context.Background())

	require.NoError(t, err, "Ошибки Redis не должны ломать запрос")
	assert.Len(t, categories, 2)
}

func TestCatalogService_CreateCategory_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Category")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Category).ID = 7
		}).
		Return(nil)

	cache := new(MockCacheRepository)
	cache.On("Delete", mock.Anything, categoriesCacheKey).Return(nil)

	svc := NewCatalogService(new(MockQuestionRepository), categoryRepo, cache, time.Minute)

	category, err := svc.CreateCategory(context.Background(), strPtr("  Geography "))

	require.NoError(t, err)
	assert.Equal(t, uint(7), category.ID)
	assert.Equal(t, "Geography", category.Type)
	cache.AssertExpectations(t)
}

func TestCatalogService_CreateCategory_Validation(t *testing.T) {
	testCases := []struct {
		name string
		typ  *string
	}{
		{"тип не передан", nil},
		{"пустой тип", strPtr("")},
		{"только пробелы", strPtr("   ")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			categoryRepo := new(MockCategoryRepository)
			svc := newTestCatalogService(new(MockQuestionRepository), categoryRepo)

			_, err := svc.CreateCategory(context.Background(), tc.typ)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

// ============================================================================
// Список вопросов
// ============================================================================

func TestCatalogService_ListQuestions_FirstPage(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)

	page := makeQuestions(1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	questionRepo.On("List", mock.Anything, QuestionsPerPage, 0).Return(page, int64(19), nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories, nil)

	svc := newTestCatalogService(questionRepo, categoryRepo)

	result, err := svc.ListQuestions(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, result.Questions, 10)
	assert.Equal(t, int64(19), result.Total, "total должен считаться по всем страницам")
	assert.Equal(t, "Science", result.Categories[1])
	questionRepo.AssertExpectations(t)
}

func TestCatalogService_ListQuestions_PageOffset(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)

	questionRepo.On("List", mock.Anything, QuestionsPerPage, 10).Return(makeQuestions(1, 11, 12), int64(12), nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories, nil)

	svc := newTestCatalogService(questionRepo, categoryRepo)

	result, err := svc.ListQuestions(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, []uint{11, 12}, entity.IDs(result.Questions))
	assert.Equal(t, int64(12), result.Total)
}

func TestCatalogService_ListQuestions_InvalidPageDefaultsToFirst(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)

	questionRepo.On("List", mock.Anything, QuestionsPerPage, 0).Return(makeQuestions(1, 1), int64(1), nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories, nil)

	svc := newTestCatalogService(questionRepo, categoryRepo)

	_, err := svc.ListQuestions(context.Background(), 0)

	require.NoError(t, err)
	questionRepo.AssertExpectations(t)
}

func TestCatalogService_ListQuestions_PageOutOfRange(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)

	questionRepo.On("List", mock.Anything, QuestionsPerPage, 990).Return([]entity.Question{}, int64(19), nil)

	svc := newTestCatalogService(questionRepo, categoryRepo)

	_, err := svc.ListQuestions(context.Background(), 100)

	assert.ErrorIs(t, err, apperrors.ErrEmptyResult, "Страница за пределами диапазона: ошибка")
	categoryRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestCatalogService_ListQuestions_OffsetOverflow(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := newTestCatalogService(questionRepo, new(MockCategoryRepository))

	for _, page := range []int{math.MaxInt/QuestionsPerPage + 1, 922337203685477582, math.MaxInt} {
		_, err := svc.ListQuestions(context.Background(), page)
		assert.ErrorIs(t, err, apperrors.ErrEmptyResult, "page=%d", page)
	}
	questionRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_ListQuestions_StoreFailure(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	storeErr := errors.New("connection reset")
	questionRepo.On("List", mock.Anything, QuestionsPerPage, 0).Return(nil, int64(0), storeErr)

	svc := newTestCatalogService(questionRepo, new(MockCategoryRepository))

	_, err := svc.ListQuestions(context.Background(), 1)

	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, apperrors.ErrEmptyResult)
}

// ============================================================================
// Создание / удаление вопросов
// ============================================================================

func TestCatalogService_CreateQuestion_Success(t *testing.T) {
	questionRepo := new(MockQuestionRepository)

	questionRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Question")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Question).ID = 24
		}).
		Return(nil)
	all := append(makeQuestions(1, 1, 2), entity.Question{ID: 24, Question: "Largest lake?", Answer: "Victoria", Difficulty: 2, Category: 3})
	questionRepo.On("ListAll", mock.Anything).Return(all, nil)

	svc := newTestCatalogService(questionRepo, new(MockCategoryRepository))

	result, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Question:   strPtr("Largest lake?"),
		Answer:     strPtr("Victoria"),
		Difficulty: intPtr(2),
		Category:   uintPtr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, uint(24), result.Created.ID)
	assert.Equal(t, "Largest lake?", result.Created.Question)
	assert.Equal(t, "Victoria", result.Created.Answer)
	assert.Equal(t, 2, result.Created.Difficulty)
	assert.Equal(t, uint(3), result.Created.Category)
	assert.Len(t, result.Questions, 3)
	questionRepo.AssertExpectations(t)
}

func TestCatalogService_CreateQuestion_MissingFields(t *testing.T) {
	full := CreateQuestionInput{
		Question:   strPtr("Q"),
		Answer:     strPtr("A"),
		Difficulty: intPtr(1),
		Category:   uintPtr(1),
	}

	testCases := []struct {
		name   string
		mutate func(in *CreateQuestionInput)
	}{
		{"без question", func(in *CreateQuestionInput) { in.Question = nil }},
		{"без answer", func(in *CreateQuestionInput) { in.Answer = nil }},
		{"без difficulty", func(in *CreateQuestionInput) { in.Difficulty = nil }},
		{"без category", func(in *CreateQuestionInput) { in.Category = nil }},
		{"пустой вопрос", func(in *CreateQuestionInput) { in.Question = strPtr(" ") }},
		{"сложность 0", func(in *CreateQuestionInput) { in.Difficulty = intPtr(0) }},
		{"сложность 6", func(in *CreateQuestionInput) { in.Difficulty = intPtr(6) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questionRepo := new(MockQuestionRepository)
			svc := newTestCatalogService(questionRepo, new(MockCategoryRepository))

			input := full
			tc.mutate(&input)

			_, err := svc.CreateQuestion(context.Background(), input)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			questionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCatalogService_CreateQuestion_UnknownCategory(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrValidation)

	svc := newTestCatalogService(questionRepo, new(MockCategoryRepository))

	_, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Question: strPtr("Q"), Answer: strPtr("A"), Difficulty: intPtr(1), Category: uintPtr(999),
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	questionRepo.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestCatalogService_DeleteQuestion(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("Delete", mock.Anything, uint(5)).Return(nil)
	questionRepo.On("Delete", mock.Anything, uint(1000)).Return(apperrors.ErrNotFound)

	svc := newTestCatalogService(questionRepo, new(MockCategoryRepository))

	assert.NoError(t, svc.DeleteQuestion(context.Background(), 5))
	assert.ErrorIs(t, svc.DeleteQuestion(context.Background(), 1000), apperrors.ErrNotFound)
}

// ============================================================================
// Поиск и фильтр по категории
// ============================================================================

func TestCatalogService_SearchQuestions_NoMatchesIsSuccess(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("Search", mock.Anything, "zzz").Return(nil, nil)

	svc := newTestCatalogService(questionRepo, new(MockCategoryRepository))

	questions, err := svc.SearchQuestions(context.Background(), "zzz")

	require.NoError(t, err)
	assert.NotNil(t, questions, "Пустой результат: пустой список, а не nil")
	assert.Empty(t, questions)
}

func TestCatalogService_SearchQuestions_PassesTermAsIs(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("Search", mock.Anything, "largest").Return(makeQuestions(3, 4), nil)

	svc := newTestCatalogService(questionRepo, new(MockCategoryRepository))

	questions, err := svc.SearchQuestions(context.Background(), "largest")

	require.NoError(t, err)
	assert.Equal(t, []uint{4}, entity.IDs(questions))
}

func TestCatalogService_QuestionsByCategory(t *testing.T) {
	t.Run("успех", func(t *testing.T) {
		questionRepo := new(MockQuestionRepository)
		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("GetByID", mock.Anything, uint(2)).Return(&entity.Category{ID: 2, Type: "Art"}, nil)
		questionRepo.On("GetByCategory", mock.Anything, uint(2)).Return(makeQuestions(2, 10, 11), nil)

		svc := newTestCatalogService(questionRepo, categoryRepo)

		questions, err := svc.QuestionsByCategory(context.Background(), 2)

		require.NoError(t, err)
		for _, q := range questions {
			assert.Equal(t, uint(2), q.Category)
		}
	})

	t.Run("категория не существует", func(t *testing.T) {
		questionRepo := new(MockQuestionRepository)
		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, apperrors.ErrNotFound)

		svc := newTestCatalogService(questionRepo, categoryRepo)

		_, err := svc.QuestionsByCategory(context.Background(), 99)

		assert.ErrorIs(t, err, apperrors.ErrEmptyResult)
		questionRepo.AssertNotCalled(t, "GetByCategory", mock.Anything, mock.Anything)
	})

	t.Run("категория без вопросов", func(t *testing.T) {
		questionRepo := new(MockQuestionRepository)
		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("GetByID", mock.Anything, uint(6)).Return(&entity.Category{ID: 6, Type: "Sports"}, nil)
		questionRepo.On("GetByCategory", mock.Anything, uint(6)).Return([]entity.Question{}, nil)

		svc := newTestCatalogService(questionRepo, categoryRepo)

		_, err := svc.QuestionsByCategory(context.Background(), 6)

		assert.ErrorIs(t, err, apperrors.ErrEmptyResult)
	})
}

func TestCatalogService_ExportQuestions(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)
	questionRepo.On("ListAll", mock.Anything).Return(makeQuestions(1, 1, 2, 3), nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories, nil)

	svc := newTestCatalogService(questionRepo, categoryRepo)

	questions, categories, err := svc.ExportQuestions(context.Background())

	require.NoError(t, err)
	assert.Len(t, questions, 3)
	assert.Equal(t, "Science", categories[1])
}
