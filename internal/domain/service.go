package domain

import "context"

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// GetAllCategories returns all categories ordered by id
	GetAllCategories(ctx context.Context) ([]*Category, error)

	// GetCategoryByID returns the category or nil when it does not exist
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)

	// GetByType returns the category with the given type or nil
	GetByType(ctx context.Context, categoryType string) (*Category, error)

	// SaveCategory persists a new category and sets its ID
	SaveCategory(ctx context.Context, category *Category) error
}

// QuestionRepository defines the interface for question persistence.
// Every listing is ordered by id ascending.
type QuestionRepository interface {
	// GetQuestions returns every question
	GetQuestions(ctx context.Context) ([]*Question, error)

	// GetQuestionsPage returns at most limit questions starting at offset
	GetQuestionsPage(ctx context.Context, offset, limit int) ([]*Question, error)

	// GetQuestionsByCategory returns the questions of one category
	GetQuestionsByCategory(ctx context.Context, categoryID int64) ([]*Question, error)

	// SearchQuestions matches term case-insensitively as a substring of the question text
	SearchQuestions(ctx context.Context, term string) ([]*Question, error)

	// GetQuestionByID returns the question or nil when it does not exist
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)

	// SaveQuestion persists a new question and sets its ID
	SaveQuestion(ctx context.Context, question *Question) error

	// DeleteQuestion removes the question and reports whether a row was deleted
	DeleteQuestion(ctx context.Context, id int64) (bool, error)
}

// TransactionManager runs fn inside a single store transaction
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
