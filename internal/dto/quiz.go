package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleInt decodes from a JSON number or a numeric JSON string.
// The browser client sends category ids as strings.
type FlexibleInt int64

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", s, err)
		}
		*f = FlexibleInt(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleInt(n)
	return nil
}

// Int64 returns the decoded value
func (f *FlexibleInt) Int64() int64 {
	if f == nil {
		return 0
	}
	return int64(*f)
}

// CreateQuestionRequest is the body of POST /questions.
// A non-empty SearchTerm turns the request into a search.
// @Description Create a question, or search when searchTerm is set
type CreateQuestionRequest struct {
	Question   *string      `json:"question" validate:"required"`
	Answer     *string      `json:"answer" validate:"required"`
	Category   *FlexibleInt `json:"category" validate:"required"`
	Difficulty *FlexibleInt `json:"difficulty" validate:"required"`
	SearchTerm *string      `json:"searchTerm,omitempty"`
}

// IsSearch reports whether the request asks for a search
func (r *CreateQuestionRequest) IsSearch() bool {
	return r.SearchTerm != nil && *r.SearchTerm != ""
}

// QuizCategory selects the question pool; id 0 means every category
type QuizCategory struct {
	ID   *FlexibleInt `json:"id" validate:"required"`
	Type string       `json:"type,omitempty"`
}

// QuizRequest is the body of POST /quizzes
// @Description Next quiz question request
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
	PreviousQuestions []int64       `json:"previous_questions" validate:"required"`
}

// QuestionResponse is the wire form of a question
type QuestionResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// CategoriesResponse is returned by GET /categories
type CategoriesResponse struct {
	Success    bool             `json:"success"`
	Categories map[int64]string `json:"categories"`
}

// QuestionsPageResponse is returned by GET /questions
type QuestionsPageResponse struct {
	Success        bool                `json:"success"`
	Questions      []*QuestionResponse `json:"questions"`
	TotalQuestions int                 `json:"totalQuestions"`
	Categories     map[int64]string    `json:"categories"`
}

// DeleteResponse is returned by DELETE /questions/{id}
type DeleteResponse struct {
	Success    bool  `json:"success"`
	QuestionID int64 `json:"question-id"`
}

// SuccessResponse is a bare acknowledgement
type SuccessResponse struct {
	Success bool `json:"success"`
}

// SearchResponse is returned by POST /questions with a searchTerm
type SearchResponse struct {
	Success   bool                `json:"success"`
	Questions []*QuestionResponse `json:"questions"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions
type CategoryQuestionsResponse struct {
	Success         bool                `json:"success"`
	Questions       []*QuestionResponse `json:"questions"`
	TotalQuestions  int                 `json:"total_questions"`
	CurrentCategory string              `json:"current_category"`
}

// QuizResponse is returned by POST /quizzes. Question is omitted once the pool is exhausted.
type QuizResponse struct {
	Success  bool              `json:"success"`
	Question *QuestionResponse `json:"question,omitempty"`
}

// ErrorResponse is the uniform error body
// @Description Error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}
