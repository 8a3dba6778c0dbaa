package service

import (
	"context"
	"strings"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TriviaService defines the question bank and quiz operations served over HTTP
type TriviaService interface {
	ListCategories(ctx context.Context) (map[int64]string, error)
	ListQuestions(ctx context.Context, page int) (*dto.QuestionsPageResponse, error)
	DeleteQuestion(ctx context.Context, id int64) error
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (int64, error)
	SearchQuestions(ctx context.Context, term string) ([]*dto.QuestionResponse, error)
	QuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error)
	// NextQuizQuestion returns nil without error once every question of the pool has been played
	NextQuizQuestion(ctx context.Context, categoryID int64, previous []int64) (*dto.QuestionResponse, error)
}

// triviaService implements TriviaService
type triviaService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	catCache   CategoryCacheService
	txManager  domain.TransactionManager
	selector   *domain.QuizSelector
}

// NewTriviaService creates a new TriviaService.
// catCache and txManager may be nil; categories are then read from the repository
// and deletes run without an explicit transaction.
func NewTriviaService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	catCache CategoryCacheService,
	txManager domain.TransactionManager,
	selector *domain.QuizSelector,
) TriviaService {
	if catCache == nil {
		catCache = NewCategoryCacheService(categories, nil, 0)
	}
	if selector == nil {
		selector = domain.NewQuizSelector()
	}
	return &triviaService{
		questions:  questions,
		categories: categories,
		catCache:   catCache,
		txManager:  txManager,
		selector:   selector,
	}
}

// ListCategories implements TriviaService
func (s *triviaService) ListCategories(ctx context.Context) (map[int64]string, error) {
	categories, err := s.catCache.GetCategoryMap(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list categories", err)
	}
	if len(categories) == 0 {
		return nil, domain.NewNotFoundError("no categories")
	}
	return categories, nil
}

// ListQuestions implements TriviaService.
// The page and the category map are loaded concurrently.
func (s *triviaService) ListQuestions(ctx context.Context, page int) (*dto.QuestionsPageResponse, error) {
	p := domain.NewPage(page)

	var (
		questions  []*domain.Question
		categories map[int64]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.questions.GetQuestionsPage(gctx, p.Offset(), p.Size)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.catCache.GetCategoryMap(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}

	if len(questions) == 0 {
		return nil, domain.NewNotFoundError("no questions on page")
	}

	return &dto.QuestionsPageResponse{
		Success:        true,
		Questions:      toQuestionResponses(questions),
		TotalQuestions: len(questions),
		Categories:     categories,
	}, nil
}

// DeleteQuestion implements TriviaService
func (s *triviaService) DeleteQuestion(ctx context.Context, id int64) error {
	deleteFn := func(ctx context.Context) error {
		question, err := s.questions.GetQuestionByID(ctx, id)
		if err != nil {
			return domain.NewInternalError("failed to load question", err)
		}
		if question == nil {
			return domain.NewQuestionNotFoundError(id)
		}

		deleted, err := s.questions.DeleteQuestion(ctx, id)
		if err != nil {
			return domain.NewInternalError("failed to delete question", err)
		}
		if !deleted {
			return domain.NewQuestionNotFoundError(id)
		}
		return nil
	}

	if s.txManager == nil {
		return deleteFn(ctx)
	}
	return s.txManager.WithTransaction(ctx, deleteFn)
}

// CreateQuestion implements TriviaService. Callers validate field presence.
func (s *triviaService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (int64, error) {
	if req.Question == nil || req.Answer == nil || req.Category == nil || req.Difficulty == nil {
		return 0, domain.NewUnprocessableError("question, answer, category and difficulty are required", nil)
	}

	question := domain.NewQuestion(*req.Question, *req.Answer, req.Category.Int64(), int(req.Difficulty.Int64()))
	if err := s.questions.SaveQuestion(ctx, question); err != nil {
		logger.Get().Warn("Failed to insert question",
			zap.Int64("category", question.Category),
			zap.Error(err))
		return 0, domain.NewUnprocessableError("failed to insert question", err)
	}

	logger.Get().Info("Question created", zap.Int64("question_id", question.ID))
	return question.ID, nil
}

// SearchQuestions implements TriviaService
func (s *triviaService) SearchQuestions(ctx context.Context, term string) ([]*dto.QuestionResponse, error) {
	questions, err := s.questions.SearchQuestions(ctx, term)
	if err != nil {
		return nil, domain.NewInternalError("failed to search questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError("no questions match " + strings.TrimSpace(term))
	}
	return toQuestionResponses(questions), nil
}

// QuestionsByCategory implements TriviaService.
// total_questions counts the whole category, not just the returned page.
func (s *triviaService) QuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
	category, err := s.categories.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load category", err)
	}
	if category == nil {
		return nil, domain.NewInvalidCategoryError(categoryID)
	}

	questions, err := s.questions.GetQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list category questions", err)
	}

	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       toQuestionResponses(domain.NewPage(page).Slice(questions)),
		TotalQuestions:  len(questions),
		CurrentCategory: category.Type,
	}, nil
}

// NextQuizQuestion implements TriviaService
func (s *triviaService) NextQuizQuestion(ctx context.Context, categoryID int64, previous []int64) (*dto.QuestionResponse, error) {
	var (
		pool []*domain.Question
		err  error
	)
	if categoryID == domain.AllCategories {
		pool, err = s.questions.GetQuestions(ctx)
	} else {
		pool, err = s.questions.GetQuestionsByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz pool", err)
	}

	question, ok := s.selector.Next(pool, previous)
	if !ok {
		logger.Get().Debug("Quiz pool exhausted",
			zap.Int64("category", categoryID),
			zap.Int("pool_size", len(pool)),
			zap.Int("previous", len(previous)))
		return nil, nil
	}
	return toQuestionResponse(question), nil
}

func toQuestionResponse(q *domain.Question) *dto.QuestionResponse {
	return &dto.QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

func toQuestionResponses(questions []*domain.Question) []*dto.QuestionResponse {
	out := make([]*dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}
	return out
}
