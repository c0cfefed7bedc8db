package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_TableName(t *testing.T) {
	question := Question{}
	assert.Equal(t, "questions", question.TableName(), "TableName должен возвращать 'questions'")
}

func TestIsValidDifficulty(t *testing.T) {
	testCases := []struct {
		name       string
		difficulty int
		expected   bool
	}{
		{"ноль", 0, false},
		{"минимум", 1, true},
		{"середина", 3, true},
		{"максимум", 5, true},
		{"выше максимума", 6, false},
		{"отрицательная", -1, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidDifficulty(tc.difficulty))
		})
	}
}

func TestQuestion_HasText(t *testing.T) {
	assert.True(t, (&Question{Question: "Largest lake?", Answer: "Victoria"}).HasText())
	assert.False(t, (&Question{Question: "  ", Answer: "Victoria"}).HasText(), "Пробелы не считаются текстом")
	assert.False(t, (&Question{Question: "Largest lake?", Answer: ""}).HasText(), "Пустой ответ недопустим")
}

func TestIDs_PreservesOrder(t *testing.T) {
	questions := []Question{{ID: 12}, {ID: 10}, {ID: 11}}

	assert.Equal(t, []uint{12, 10, 11}, IDs(questions))
	assert.Empty(t, IDs(nil))
}
