package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

const categoryColumns = `id "id", type "type"`

type CategoryDatabaseAdapter struct {
	db DBTX
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db DBTX) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// GetAllCategories returns all categories ordered by id
func (r *CategoryDatabaseAdapter) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []models.Category
	query := "SELECT " + categoryColumns + " FROM categories ORDER BY id"
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	domainCategories := make([]*domain.Category, len(categories))
	for i := range categories {
		domainCategories[i] = convertToDomainCategory(&categories[i])
	}
	return domainCategories, nil
}

// GetCategoryByID returns the category or nil when it does not exist
func (r *CategoryDatabaseAdapter) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	db := GetExecutor(ctx, r.db)
	var category models.Category
	query := db.Rebind("SELECT " + categoryColumns + " FROM categories WHERE id = ?")
	if err := db.GetContext(ctx, &category, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return convertToDomainCategory(&category), nil
}

// GetByType returns the category with the given type or nil
func (r *CategoryDatabaseAdapter) GetByType(ctx context.Context, categoryType string) (*domain.Category, error) {
	db := GetExecutor(ctx, r.db)
	var category models.Category
	query := db.Rebind("SELECT " + categoryColumns + " FROM categories WHERE type = ?")
	if err := db.GetContext(ctx, &category, query, categoryType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category %q: %w", categoryType, err)
	}
	return convertToDomainCategory(&category), nil
}

// SaveCategory persists a new category
func (r *CategoryDatabaseAdapter) SaveCategory(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return fmt.Errorf("cannot save nil category")
	}
	db := GetExecutor(ctx, r.db)
	model := convertToModelCategory(category)

	id, err := dialectOf(db).insertReturningID(ctx, db, "INSERT INTO categories (type) VALUES (?)", model.Type)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	category.ID = id
	return nil
}

func convertToDomainCategory(category *models.Category) *domain.Category {
	if category == nil {
		return nil
	}
	return &domain.Category{
		ID:   category.ID,
		Type: category.Type,
	}
}

func convertToModelCategory(category *domain.Category) *models.Category {
	if category == nil {
		return nil
	}
	return &models.Category{
		ID:   category.ID,
		Type: category.Type,
	}
}
