package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

const questionColumns = `id "id", question "question", answer "answer", category "category", difficulty "difficulty"`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db DBTX) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

func (a *QuestionDatabaseAdapter) selectQuestions(ctx context.Context, query string, args ...any) ([]*domain.Question, error) {
	db := GetExecutor(ctx, a.db)
	var rows []models.Question
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, err
	}
	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions, nil
}

// GetQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestions(ctx context.Context) ([]*domain.Question, error) {
	questions, err := a.selectQuestions(ctx, "SELECT "+questionColumns+" FROM questions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

// GetQuestionsPage implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsPage(ctx context.Context, offset, limit int) ([]*domain.Question, error) {
	query, args := dialectOf(GetExecutor(ctx, a.db)).paginate(
		"SELECT "+questionColumns+" FROM questions ORDER BY id", nil, offset, limit)
	questions, err := a.selectQuestions(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions page (offset %d, limit %d): %w", offset, limit, err)
	}
	return questions, nil
}

// GetQuestionsByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	questions, err := a.selectQuestions(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE category = ? ORDER BY id", categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for category %d: %w", categoryID, err)
	}
	return questions, nil
}

// SearchQuestions implements domain.QuestionRepository.
// Matching relies on the driver's LOWER; sqlite3 folds ASCII letters only.
func (a *QuestionDatabaseAdapter) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	questions, err := a.selectQuestions(ctx,
		"SELECT "+questionColumns+` FROM questions WHERE LOWER(question) LIKE ? ESCAPE '\' ORDER BY id`,
		containsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return questions, nil
}

// GetQuestionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	db := GetExecutor(ctx, a.db)
	var row models.Question
	query := db.Rebind("SELECT " + questionColumns + " FROM questions WHERE id = ?")
	if err := db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %d: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// SaveQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	row := toModelQuestion(question)
	if row == nil {
		return fmt.Errorf("cannot save nil question")
	}
	db := GetExecutor(ctx, a.db)

	id, err := dialectOf(db).insertReturningID(ctx, db,
		"INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)",
		row.Question, row.Answer, row.Category, row.Difficulty)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	question.ID = id
	return nil
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	db := GetExecutor(ctx, a.db)
	result, err := db.ExecContext(ctx, db.Rebind("DELETE FROM questions WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func toDomainQuestion(row *models.Question) *domain.Question {
	if row == nil {
		return nil
	}
	return &domain.Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func toModelQuestion(question *domain.Question) *models.Question {
	if question == nil {
		return nil
	}
	return &models.Question{
		ID:         question.ID,
		Question:   question.Question,
		Answer:     question.Answer,
		Category:   question.Category,
		Difficulty: question.Difficulty,
	}
}
