package entity

import "strings"

const (
	// MinDifficulty и MaxDifficulty задают допустимый диапазон сложности
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question представляет вопрос каталога.
// Вопросы не редактируются: только создаются и удаляются.
type Question struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Question   string `gorm:"column:question;type:text;not null" json:"question"`
	Answer     string `gorm:"column:answer;type:text;not null" json:"answer"`
	Difficulty int    `gorm:"not null" json:"difficulty"`
	Category   uint   `gorm:"column:category;not null;index" json:"category"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsValidDifficulty проверяет, что сложность в допустимом диапазоне
func IsValidDifficulty(difficulty int) bool {
	return difficulty >= MinDifficulty && difficulty <= MaxDifficulty
}

// HasText проверяет, что у вопроса заполнены текст и ответ
func (q *Question) HasText() bool {
	return strings.TrimSpace(q.Question) != "" && strings.TrimSpace(q.Answer) != ""
}

// IDs возвращает идентификаторы вопросов в исходном порядке
func IDs(questions []Question) []uint {
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
