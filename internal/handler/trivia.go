package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/service"
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizOutcomeRecorder observes the result of every quiz draw
type QuizOutcomeRecorder interface {
	RecordQuizOutcome(exhausted bool)
}

// TriviaHandler handles question bank and quiz HTTP requests
type TriviaHandler struct {
	service   service.TriviaService
	validator *validation.Validator
	recorder  QuizOutcomeRecorder
}

// NewTriviaHandler creates a new TriviaHandler instance. recorder may be nil.
func NewTriviaHandler(service service.TriviaService, recorder QuizOutcomeRecorder) *TriviaHandler {
	return &TriviaHandler{
		service:   service,
		validator: validation.NewValidator(),
		recorder:  recorder,
	}
}

// GetCategories godoc
// @Summary List categories
// @Description Returns every category as an id to type map
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories [get]
func (h *TriviaHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoriesResponse{Success: true, Categories: categories})
}

// GetQuestions godoc
// @Summary List questions
// @Description Returns one page of ten questions ordered by id, with the category map
// @Tags questions
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} dto.QuestionsPageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [get]
func (h *TriviaHandler) GetQuestions(c *fiber.Ctx) error {
	resp, err := h.service.ListQuestions(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (h *TriviaHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return domain.NewNotFoundError("invalid question id")
	}

	if err := h.service.DeleteQuestion(c.UserContext(), int64(id)); err != nil {
		return err
	}

	logger.Get().Info("Question deleted", zap.Int("question_id", id))
	return c.JSON(dto.DeleteResponse{Success: true, QuestionID: int64(id)})
}

// CreateOrSearchQuestions godoc
// @Summary Create a question or search questions
// @Description With a non-empty searchTerm, returns every question whose text contains it (case-insensitive).
// @Description Otherwise creates a question from question, answer, category and difficulty.
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question or search term"
// @Success 200 {object} dto.SearchResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [post]
func (h *TriviaHandler) CreateOrSearchQuestions(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewUnprocessableError("invalid request body", err)
	}

	if req.IsSearch() {
		questions, err := h.service.SearchQuestions(c.UserContext(), *req.SearchTerm)
		if err != nil {
			return err
		}
		return c.JSON(dto.SearchResponse{Success: true, Questions: questions})
	}

	if fields := h.validator.Validate(&req); fields != nil {
		logger.Get().Debug("Create question rejected", zap.Any("fields", fields))
		return domain.NewUnprocessableError("missing question fields", nil)
	}

	if _, err := h.service.CreateQuestion(c.UserContext(), &req); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// GetCategoryQuestions godoc
// @Summary List the questions of a category
// @Description Returns one page of the category's questions; total_questions counts the whole category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories/{id}/questions [get]
func (h *TriviaHandler) GetCategoryQuestions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return domain.NewBadRequestError("invalid category id")
	}

	resp, err := h.service.QuestionsByCategory(c.UserContext(), int64(id), c.QueryInt("page", 1))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PlayQuiz godoc
// @Summary Draw the next quiz question
// @Description Returns a random question of the category (0 for all) that is not in previous_questions.
// @Description The question field is omitted once every question has been played.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Quiz state"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [post]
func (h *TriviaHandler) PlayQuiz(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.ErrBadRequest, "invalid request body", err)
	}
	if fields := h.validator.Validate(&req); fields != nil {
		logger.Get().Debug("Quiz request rejected", zap.Any("fields", fields))
		return domain.NewBadRequestError("quiz_category and previous_questions are required")
	}

	question, err := h.service.NextQuizQuestion(c.UserContext(), req.QuizCategory.ID.Int64(), req.PreviousQuestions)
	if err != nil {
		return err
	}

	if h.recorder != nil {
		h.recorder.RecordQuizOutcome(question == nil)
	}
	return c.JSON(dto.QuizResponse{Success: true, Question: question})
}
