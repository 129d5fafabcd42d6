package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supaboard/internal/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts the project and its api key in one transaction.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project, apiKey *models.ApiKey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ApiKeys", "Buckets", "Databases").Create(project).Error; err != nil {
			return err
		}
		apiKey.ProjectID = project.ID
		if err := tx.Create(apiKey).Error; err != nil {
			return err
		}
		project.ApiKeys = []models.ApiKey{*apiKey}
		return nil
	})
}

func (r *ProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// ListByCreator returns the creator's projects, newest first, with api
// keys, buckets and databases loaded.
func (r *ProjectRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Preload("ApiKeys").
		Preload("Buckets").
		Preload("Databases").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// GetBySlug returns nil, nil when no project has that slug.
func (r *ProjectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("ApiKeys").
		Preload("Buckets").
		Preload("Databases").
		Where("slug = ?", slug).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByID returns nil, nil when the project does not exist.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteByIDAndCreator removes the project; dependent rows go with it via
// ON DELETE CASCADE. Reports whether a row was deleted.
func (r *ProjectRepository) DeleteByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND creator_id = ?", id, creatorID).
		Delete(&models.Project{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
