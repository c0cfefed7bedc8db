package handler

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/service"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCategories(ctx context.Context) (map[uint]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]string), args.Error(1)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, categoryType *string) (*entity.Category, error) {
	args := m.Called(ctx, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCatalogService) ListQuestions(ctx context.Context, page int) (*service.QuestionPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuestionPage), args.Error(1)
}

func (m *MockCatalogService) GetQuestion(ctx context.Context, id uint) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockCatalogService) DeleteQuestion(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogService) CreateQuestion(ctx context.Context, input service.CreateQuestionInput) (*service.CreateQuestionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateQuestionResult), args.Error(1)
}

func (m *MockCatalogService) SearchQuestions(ctx context.Context, term string) ([]entity.Question, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockCatalogService) QuestionsByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockCatalogService) ExportQuestions(ctx context.Context) ([]entity.Question, map[uint]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]entity.Question), args.Get(1).(map[uint]string), args.Error(2)
}

type MockQuestionPicker struct {
	mock.Mock
}

func (m *MockQuestionPicker) NextQuestion(ctx context.Context, categoryID uint, previousIDs []uint) (*entity.Question, error) {
	args := m.Called(ctx, categoryID, previousIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}
