package entity

import "strings"

// Category представляет категорию вопросов
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"size:255;not null" json:"type"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// IsValid проверяет, что у категории есть название
func (c *Category) IsValid() bool {
	return strings.TrimSpace(c.Type) != ""
}

// CategoryMap преобразует список категорий в отображение id → type
func CategoryMap(categories []Category) map[uint]string {
	m := make(map[uint]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
