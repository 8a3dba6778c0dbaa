package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"trivia-api/cmd/seed_initial_data/internal/seedmodels"
	"trivia-api/internal/domain"

	"go.uber.org/zap"
)

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// loadSeedFile reads the categories and their questions from a JSON seed file
func loadSeedFile(path string) ([]seedmodels.SeedCategory, error) {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seedCategories []seedmodels.SeedCategory
	if err := json.Unmarshal(byteValue, &seedCategories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	return seedCategories, nil
}

// seeder inserts seed categories, one transaction per category
type seeder struct {
	txManager  domain.TransactionManager
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	log        *zap.Logger
}

// seedCategory creates the category and its questions. A category whose type
// already exists is left untouched and reported as not created.
func (s *seeder) seedCategory(ctx context.Context, seedCat seedmodels.SeedCategory) (created bool, err error) {
	s.log.Info("Processing category", zap.String("type", seedCat.Type))

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.categories.GetByType(ctx, seedCat.Type)
		if err != nil {
			return fmt.Errorf("error checking category %s: %w", seedCat.Type, err)
		}
		if existing != nil {
			s.log.Info("Category exists, skipping.", zap.Int64("id", existing.ID), zap.String("type", existing.Type))
			return nil
		}

		category := domain.NewCategory(seedCat.Type)
		if err := category.Validate(); err != nil {
			return err
		}
		if err := s.categories.SaveCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to save category %s: %w", seedCat.Type, err)
		}
		s.log.Info("Created category.", zap.Int64("id", category.ID), zap.String("type", category.Type))

		for _, sq := range seedCat.Questions {
			question := domain.NewQuestion(sq.Question, sq.Answer, category.ID, sq.Difficulty)
			if err := question.Validate(); err != nil {
				return fmt.Errorf("invalid seed question %q: %w", firstN(sq.Question, 20), err)
			}
			if err := s.questions.SaveQuestion(ctx, question); err != nil {
				return fmt.Errorf("failed to save question %q: %w", firstN(sq.Question, 20), err)
			}
			s.log.Debug("Created question.", zap.Int64("id", question.ID), zap.String("question_preview", firstN(sq.Question, 20)))
		}
		created = true
		return nil
	})
	return created, err
}
