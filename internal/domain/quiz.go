package domain

import (
	"strings"
)

// QuestionsPerPage is the fixed page size used by every paginated listing.
const QuestionsPerPage = 10

// AllCategories selects the whole question bank when passed as a quiz category.
const AllCategories int64 = 0

// Category represents a trivia category
type Category struct {
	ID   int64
	Type string
}

// NewCategory creates a new Category instance
func NewCategory(categoryType string) *Category {
	return &Category{Type: categoryType}
}

// Validate validates the category
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Type) == "" {
		return NewUnprocessableError("category type is required", nil)
	}
	return nil
}

// CategoryMap renders categories as the id -> type mapping served to clients.
func CategoryMap(categories []*Category) map[int64]string {
	m := make(map[int64]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}

// Question represents a trivia question in the domain
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// NewQuestion creates a new Question instance
func NewQuestion(question, answer string, category int64, difficulty int) *Question {
	return &Question{
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Question == "" {
		return NewUnprocessableError("question is required", nil)
	}
	if q.Answer == "" {
		return NewUnprocessableError("answer is required", nil)
	}
	return nil
}
