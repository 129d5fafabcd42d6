package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supaboard/internal/models"
)

type DatabaseRepository struct {
	db *gorm.DB
}

func NewDatabaseRepository(db *gorm.DB) *DatabaseRepository {
	return &DatabaseRepository{db: db}
}

func (r *DatabaseRepository) Create(ctx context.Context, database *models.Database) error {
	return r.db.WithContext(ctx).Omit("Tables").Create(database).Error
}

// NameExists looks across every project; names are compared exactly.
func (r *DatabaseRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Database{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *DatabaseRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Database, error) {
	var databases []models.Database
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&databases).Error
	return databases, err
}

// GetByID returns nil, nil when the database does not exist.
func (r *DatabaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Database, error) {
	var database models.Database
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&database).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &database, nil
}

// GetWithTables eager-loads tables and their columns.
func (r *DatabaseRepository) GetWithTables(ctx context.Context, id uuid.UUID) (*models.Database, error) {
	var database models.Database
	err := r.db.WithContext(ctx).
		Preload("Tables", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Tables.Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&database).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &database, nil
}
