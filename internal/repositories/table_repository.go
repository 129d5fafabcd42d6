package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supaboard/internal/models"
)

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

// Create inserts the table and its columns in one transaction.
func (r *TableRepository) Create(ctx context.Context, table *models.Table) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		columns := table.Columns
		if err := tx.Omit("Columns").Create(table).Error; err != nil {
			return err
		}
		for i := range columns {
			columns[i].TableID = table.ID
			columns[i].Position = i
		}
		if len(columns) > 0 {
			if err := tx.Create(&columns).Error; err != nil {
				return err
			}
		}
		table.Columns = columns
		return nil
	})
}

func (r *TableRepository) ListByDatabase(ctx context.Context, databaseID uuid.UUID) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("database_id = ?", databaseID).
		Order("created_at ASC").
		Find(&tables).Error
	return tables, err
}

// GetByID returns nil, nil when the table does not exist.
func (r *TableRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// ColumnBelongsTo reports whether columnID is a column of tableID and
// tableID is a table of databaseID.
func (r *TableRepository) ColumnBelongsTo(ctx context.Context, databaseID, tableID, columnID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Column{}).
		Joins("JOIN tables ON tables.id = columns.table_id").
		Where("columns.id = ? AND tables.id = ? AND tables.database_id = ?", columnID, tableID, databaseID).
		Count(&count).Error
	return count > 0, err
}
