package service

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
)

// AllCategories: значение фильтра категории, означающее "все вопросы"
const AllCategories uint = 0

// QuizSelector выбирает случайный ещё не показанный вопрос для сессии викторины.
// Состояние сессии (показанные ID) передаёт клиент в каждом запросе.
type QuizSelector struct {
	questionRepo repository.QuestionRepository
	intn         func(n int) int
}

// NewQuizSelector создает селектор со стандартным источником случайности
// (math/rand/v2 безопасен для конкурентного использования)
func NewQuizSelector(questionRepo repository.QuestionRepository) *QuizSelector {
	return &QuizSelector{
		questionRepo: questionRepo,
		intn:         rand.IntN,
	}
}

// WithRandom подменяет источник случайности (для детерминированных тестов).
// intn(n) должен возвращать число в [0, n).
func (s *QuizSelector) WithRandom(intn func(n int) int) *QuizSelector {
	s.intn = intn
	return s
}

// NextQuestion возвращает случайный вопрос из пула категории, которого нет в previousIDs.
// Если все вопросы пула уже показаны, возвращает (nil, nil): сессия исчерпана.
func (s *QuizSelector) NextQuestion(ctx context.Context, categoryID uint, previousIDs []uint) (*entity.Question, error) {
	pool, err := s.candidatePool(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	unseen := UnseenQuestions(pool, previousIDs)
	if len(unseen) == 0 {
		log.Printf("[QuizSelector] Категория %d исчерпана: пул=%d, показано=%d", categoryID, len(pool), len(previousIDs))
		return nil, nil
	}

	picked := unseen[s.intn(len(unseen))]
	return &picked, nil
}

func (s *QuizSelector) candidatePool(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	var (
		pool []entity.Question
		err  error
	)
	if categoryID == AllCategories {
		pool, err = s.questionRepo.ListAll(ctx)
	} else {
		pool, err = s.questionRepo.GetByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz pool for category %d: %w", categoryID, err)
	}
	return pool, nil
}

// UnseenQuestions возвращает вопросы пула, ID которых нет в seenIDs, сохраняя порядок пула
func UnseenQuestions(pool []entity.Question, seenIDs []uint) []entity.Question {
	seen := make(map[uint]struct{}, len(seenIDs))
	for _, id := range seenIDs {
		seen[id] = struct{}{}
	}

	unseen := make([]entity.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			unseen = append(unseen, q)
		}
	}
	return unseen
}
