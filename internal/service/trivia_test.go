package service

import (
	"context"
	"errors"
	"testing"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCategories = []*domain.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
}

func bank(ids ...int64) []*domain.Question {
	out := make([]*domain.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, &domain.Question{ID: id, Question: "Q", Answer: "A", Category: 1, Difficulty: 1})
	}
	return out
}

func strPtr(s string) *string { return &s }

func intPtr(n int64) *dto.FlexibleInt {
	f := dto.FlexibleInt(n)
	return &f
}

func newTestService(qr *MockQuestionRepository, cr *MockCategoryRepository, tx domain.TransactionManager) TriviaService {
	return NewTriviaService(qr, cr, nil, tx, domain.NewQuizSelector())
}

func TestTriviaService_ListCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cr := new(MockCategoryRepository)
		cr.On("GetAllCategories", mock.Anything).Return(testCategories, nil)
		svc := newTestService(new(MockQuestionRepository), cr, nil)

		categories, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[int64]string{1: "Science", 2: "Art"}, categories)
	})

	t.Run("Empty", func(t *testing.T) {
		cr := new(MockCategoryRepository)
		cr.On("GetAllCategories", mock.Anything).Return([]*domain.Category{}, nil)
		svc := newTestService(new(MockQuestionRepository), cr, nil)

		_, err := svc.ListCategories(ctx)
		assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
	})

	t.Run("StoreError", func(t *testing.T) {
		cr := new(MockCategoryRepository)
		cr.On("GetAllCategories", mock.Anything).Return(nil, errors.New("db down"))
		svc := newTestService(new(MockQuestionRepository), cr, nil)

		_, err := svc.ListCategories(ctx)
		assert.Equal(t, domain.ErrInternal, domain.CodeOf(err))
	})
}

func TestTriviaService_ListQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("PageWithCategories", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		cr := new(MockCategoryRepository)
		qr.On("GetQuestionsPage", mock.Anything, 10, 10).Return(bank(11, 12, 13), nil)
		cr.On("GetAllCategories", mock.Anything).Return(testCategories, nil)
		svc := newTestService(qr, cr, nil)

		resp, err := svc.ListQuestions(ctx, 2)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Len(t, resp.Questions, 3)
		assert.Equal(t, 3, resp.TotalQuestions)
		assert.Equal(t, "Art", resp.Categories[2])
		qr.AssertExpectations(t)
	})

	t.Run("PageBelowOneIsClamped", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		cr := new(MockCategoryRepository)
		qr.On("GetQuestionsPage", mock.Anything, 0, 10).Return(bank(1), nil)
		cr.On("GetAllCategories", mock.Anything).Return(testCategories, nil)
		svc := newTestService(qr, cr, nil)

		_, err := svc.ListQuestions(ctx, -4)
		require.NoError(t, err)
		qr.AssertExpectations(t)
	})

	t.Run("PastTheEnd", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		cr := new(MockCategoryRepository)
		qr.On("GetQuestionsPage", mock.Anything, 30, 10).Return([]*domain.Question{}, nil)
		cr.On("GetAllCategories", mock.Anything).Return(testCategories, nil)
		svc := newTestService(qr, cr, nil)

		_, err := svc.ListQuestions(ctx, 4)
		assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
	})

	t.Run("CategoryLoadFails", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		cr := new(MockCategoryRepository)
		qr.On("GetQuestionsPage", mock.Anything, 0, 10).Return(bank(1), nil)
		cr.On("GetAllCategories", mock.Anything).Return(nil, errors.New("timeout"))
		svc := newTestService(qr, cr, nil)

		_, err := svc.ListQuestions(ctx, 1)
		assert.Equal(t, domain.ErrInternal, domain.CodeOf(err))
	})
}

func TestTriviaService_DeleteQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		tx := &passthroughTxManager{}
		qr.On("GetQuestionByID", mock.Anything, int64(5)).Return(&domain.Question{ID: 5}, nil)
		qr.On("DeleteQuestion", mock.Anything, int64(5)).Return(true, nil)
		svc := newTestService(qr, new(MockCategoryRepository), tx)

		require.NoError(t, svc.DeleteQuestion(ctx, 5))
		assert.Equal(t, 1, tx.calls)
		qr.AssertExpectations(t)
	})

	t.Run("Absent", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		qr.On("GetQuestionByID", mock.Anything, int64(9)).Return(nil, nil)
		svc := newTestService(qr, new(MockCategoryRepository), nil)

		err := svc.DeleteQuestion(ctx, 9)
		assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
		qr.AssertNotCalled(t, "DeleteQuestion", mock.Anything, mock.Anything)
	})

	t.Run("DeletedConcurrently", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		qr.On("GetQuestionByID", mock.Anything, int64(5)).Return(&domain.Question{ID: 5}, nil)
		qr.On("DeleteQuestion", mock.Anything, int64(5)).Return(false, nil)
		svc := newTestService(qr, new(MockCategoryRepository), nil)

		err := svc.DeleteQuestion(ctx, 5)
		assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
	})
}

func TestTriviaService_CreateQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		qr.On("SaveQuestion", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
			return q.Question == "Who?" && q.Answer == "Me" && q.Category == 2 && q.Difficulty == 3
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Question).ID = 42
		}).Return(nil)
		svc := newTestService(qr, new(MockCategoryRepository), nil)

		id, err := svc.CreateQuestion(ctx, &dto.CreateQuestionRequest{
			Question: strPtr("Who?"), Answer: strPtr("Me"), Category: intPtr(2), Difficulty: intPtr(3),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("MissingField", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		svc := newTestService(qr, new(MockCategoryRepository), nil)

		_, err := svc.CreateQuestion(ctx, &dto.CreateQuestionRequest{Question: strPtr("Who?")})
		assert.Equal(t, domain.ErrUnprocessable, domain.CodeOf(err))
		qr.AssertNotCalled(t, "SaveQuestion", mock.Anything, mock.Anything)
	})

	t.Run("InsertFails", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		qr.On("SaveQuestion", mock.Anything, mock.Anything).Return(errors.New("foreign key violation"))
		svc := newTestService(qr, new(MockCategoryRepository), nil)

		_, err := svc.CreateQuestion(ctx, &dto.CreateQuestionRequest{
			Question: strPtr("Who?"), Answer: strPtr("Me"), Category: intPtr(99), Difficulty: intPtr(1),
		})
		assert.Equal(t, domain.ErrUnprocessable, domain.CodeOf(err))
	})
}

func TestTriviaService_SearchQuestions(t *testing.T) {
	ctx := context.Background()

	qr := new(MockQuestionRepository)
	qr.On("SearchQuestions", mock.Anything, "title").Return(bank(2, 7), nil)
	qr.On("SearchQuestions", mock.Anything, "zzz").Return([]*domain.Question{}, nil)
	svc := newTestService(qr, new(MockCategoryRepository), nil)

	found, err := svc.SearchQuestions(ctx, "title")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, int64(2), found[0].ID)

	_, err = svc.SearchQuestions(ctx, "zzz")
	assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
}

func TestTriviaService_QuestionsByCategory(t *testing.T) {
	ctx := context.Background()
	ids := make([]int64, 0, 12)
	for i := int64(1); i <= 12; i++ {
		ids = append(ids, i)
	}

	qr := new(MockQuestionRepository)
	cr := new(MockCategoryRepository)
	cr.On("GetCategoryByID", mock.Anything, int64(1)).Return(testCategories[0], nil)
	cr.On("GetCategoryByID", mock.Anything, int64(1000)).Return(nil, nil)
	qr.On("GetQuestionsByCategory", mock.Anything, int64(1)).Return(bank(ids...), nil)
	svc := newTestService(qr, cr, nil)

	first, err := svc.QuestionsByCategory(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, first.Questions, 10)
	assert.Equal(t, 12, first.TotalQuestions)
	assert.Equal(t, "Science", first.CurrentCategory)

	second, err := svc.QuestionsByCategory(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, second.Questions, 2)
	assert.Equal(t, 12, second.TotalQuestions)

	past, err := svc.QuestionsByCategory(ctx, 1, 5)
	require.NoError(t, err)
	assert.Empty(t, past.Questions)

	_, err = svc.QuestionsByCategory(ctx, 1000, 1)
	assert.Equal(t, domain.ErrBadRequest, domain.CodeOf(err))
}

func TestTriviaService_NextQuizQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("AllCategoriesNeverRepeats", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		qr.On("GetQuestions", mock.Anything).Return(bank(1, 2, 3), nil)
		svc := newTestService(qr, new(MockCategoryRepository), nil)

		for i := 0; i < 20; i++ {
			q, err := svc.NextQuizQuestion(ctx, domain.AllCategories, []int64{1, 3})
			require.NoError(t, err)
			require.NotNil(t, q)
			assert.Equal(t, int64(2), q.ID)
		}
	})

	t.Run("CategoryExhausted", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		qr.On("GetQuestionsByCategory", mock.Anything, int64(4)).Return(bank(8, 9), nil)
		svc := newTestService(qr, new(MockCategoryRepository), nil)

		q, err := svc.NextQuizQuestion(ctx, 4, []int64{9, 8, 100})
		require.NoError(t, err)
		assert.Nil(t, q)
	})

	t.Run("UnknownCategoryIsExhausted", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		qr.On("GetQuestionsByCategory", mock.Anything, int64(77)).Return([]*domain.Question{}, nil)
		svc := newTestService(qr, new(MockCategoryRepository), nil)

		q, err := svc.NextQuizQuestion(ctx, 77, []int64{})
		require.NoError(t, err)
		assert.Nil(t, q)
	})

	t.Run("StoreError", func(t *testing.T) {
		qr := new(MockQuestionRepository)
		qr.On("GetQuestions", mock.Anything).Return(nil, errors.New("db down"))
		svc := newTestService(qr, new(MockCategoryRepository), nil)

		_, err := svc.NextQuizQuestion(ctx, domain.AllCategories, nil)
		assert.Equal(t, domain.ErrInternal, domain.CodeOf(err))
	})
}
