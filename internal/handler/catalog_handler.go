package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/handler/dto"
	"github.com/yourusername/trivia-catalog/internal/handler/response"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
	"github.com/yourusername/trivia-catalog/internal/service"
)

// CatalogService: операции каталога, нужные обработчику
type CatalogService interface {
	ListCategories(ctx context.Context) (map[uint]string, error)
	CreateCategory(ctx context.Context, categoryType *string) (*entity.Category, error)
	ListQuestions(ctx context.Context, page int) (*service.QuestionPage, error)
	GetQuestion(ctx context.Context, id uint) (*entity.Question, error)
	DeleteQuestion(ctx context.Context, id uint) error
	CreateQuestion(ctx context.Context, input service.CreateQuestionInput) (*service.CreateQuestionResult, error)
	SearchQuestions(ctx context.Context, term string) ([]entity.Question, error)
	QuestionsByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error)
	ExportQuestions(ctx context.Context) ([]entity.Question, map[uint]string, error)
}

// Authorizer проверяет права на изменение каталога.
// При отказе сам отвечает клиенту и возвращает false.
type Authorizer interface {
	Authorize(c *gin.Context) bool
}

// CatalogHandler обрабатывает запросы к каталогу вопросов и категорий
type CatalogHandler struct {
	catalog CatalogService
	authz   Authorizer
}

// NewCatalogHandler создает новый обработчик каталога; authz может быть nil
func NewCatalogHandler(catalog CatalogService, authz Authorizer) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, authz: authz}
}

// GetCategories возвращает карту всех категорий
// GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"categories":       categories,
		"total_categories": len(categories),
	})
}

// CreateCategory создает категорию
// POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.catalog.CreateCategory(c.Request.Context(), req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"category": category,
	})
}

// GetQuestions возвращает страницу вопросов
// GET /questions?page=N
func (h *CatalogHandler) GetQuestions(c *gin.Context) {
	rawPage := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(rawPage)
	// Atoi при переполнении возвращает MaxInt: такой страницы заведомо нет
	if errors.Is(err, strconv.ErrRange) && page > 0 {
		response.Error(c, fmt.Errorf("page %s is out of range: %w", rawPage, apperrors.ErrEmptyResult))
		return
	}
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.catalog.ListQuestions(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": "",
		"categories":       result.Categories,
	})
}

// GetQuestion возвращает вопрос по ID
// GET /questions/:id
func (h *CatalogHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	question, err := h.catalog.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"question": question,
	})
}

// DeleteQuestion удаляет вопрос
// DELETE /questions/:id
func (h *CatalogHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.catalog.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": questionID,
	})
}

// PostQuestions выполняет поиск, если передан searchTerm, иначе создает вопрос
// POST /questions
func (h *CatalogHandler) PostQuestions(c *gin.Context) {
	var req dto.QuestionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if req.IsSearch() {
		h.search(c, *req.SearchTerm)
		return
	}
	// Поиск открыт всем, создание требует прав администратора
	if h.authz != nil && !h.authz.Authorize(c) {
		return
	}
	h.create(c, &req)
}

// SearchQuestions: отдельный маршрут поиска
// POST /questions/search
func (h *CatalogHandler) SearchQuestions(c *gin.Context) {
	var req dto.QuestionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if !req.IsSearch() {
		response.Error(c, fmt.Errorf("%w: searchTerm is required", apperrors.ErrValidation))
		return
	}
	h.search(c, *req.SearchTerm)
}

// CreateQuestion: отдельный маршрут создания
// POST /questions/create
func (h *CatalogHandler) CreateQuestion(c *gin.Context) {
	var req dto.QuestionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	h.create(c, &req)
}

func (h *CatalogHandler) search(c *gin.Context, term string) {
	questions, err := h.catalog.SearchQuestions(c.Request.Context(), term)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        dto.QuestionList(questions),
		"total_questions":  len(questions),
		"current_category": "",
	})
}

func (h *CatalogHandler) create(c *gin.Context, req *dto.QuestionRequest) {
	result, err := h.catalog.CreateQuestion(c.Request.Context(), req.ToCreateInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"created":         result.Created.ID,
		"new_question":    result.Created,
		"questions":       dto.QuestionList(result.Questions),
		"total_questions": len(result.Questions),
	})
}

// GetQuestionsByCategory возвращает вопросы категории
// GET /categories/:id/questions
func (h *CatalogHandler) GetQuestionsByCategory(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	questions, err := h.catalog.QuestionsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        questions,
		"total_questions":  len(questions),
		"current_category": categoryID,
	})
}

// bindJSON разбирает тело запроса.
// Синтаксически неверный JSON: ErrBadRequest, неверные типы полей: ErrValidation.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrValidation) {
		return err
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("%w: field %s: %v", apperrors.ErrValidation, typeErr.Field, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
}
