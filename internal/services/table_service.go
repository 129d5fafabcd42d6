package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supaboard/internal/apperrors"
	"supaboard/internal/models"
	"supaboard/internal/schema"
	"supaboard/internal/utils"
)

type TableService struct {
	projects  ProjectStore
	databases DatabaseStore
	tables    TableStore
	logger    *zap.Logger
}

func NewTableService(projects ProjectStore, databases DatabaseStore, tables TableStore, logger *zap.Logger) *TableService {
	return &TableService{
		projects:  projects,
		databases: databases,
		tables:    tables,
		logger:    logger,
	}
}

// ValidateDraft runs the table rules without touching the store.
func (s *TableService) ValidateDraft(draft schema.TableDraft) []apperrors.FieldError {
	return schema.Validate(draft)
}

// CreateTable validates the definition again on the server, checks every
// foreign-key target lives in the same database and stores the table with
// its columns.
func (s *TableService) CreateTable(ctx context.Context, creatorID, databaseID uuid.UUID, name string, columns []schema.ColumnDraft) (*models.Table, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("table name is required",
			apperrors.FieldError{Position: -1, Field: "name", Message: "Table name is required"})
	}
	if len(columns) == 0 {
		return nil, apperrors.Validation("at least one column is required",
			apperrors.FieldError{Position: -1, Field: "columns", Message: "At least one column is required"})
	}
	if fields := schema.Validate(schema.TableDraft{Name: name, Columns: columns}); len(fields) > 0 {
		return nil, apperrors.Validation("table definition is invalid", fields...)
	}

	database, err := ownedDatabase(ctx, s.projects, s.databases, creatorID, databaseID, false)
	if err != nil {
		return nil, err
	}

	table := &models.Table{
		Name:       strings.TrimSpace(name),
		DatabaseID: database.ID,
		Columns:    make([]models.Column, 0, len(columns)),
	}
	for i, draft := range columns {
		column, err := s.buildColumn(ctx, database.ID, i, draft)
		if err != nil {
			return nil, err
		}
		table.Columns = append(table.Columns, column)
	}

	if err := s.tables.Create(ctx, table); err != nil {
		s.logger.Error("Failed to create table",
			zap.String("database_id", database.ID.String()),
			zap.String("name", table.Name),
			zap.Error(err))
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.DuplicateName(fmt.Sprintf("a table named %q already exists in this database", table.Name))
		}
		return nil, apperrors.Internal("Failed to create table", err)
	}

	s.logger.Info("Table created",
		zap.String("table_id", table.ID.String()),
		zap.Int("columns", len(table.Columns)))
	return table, nil
}

func (s *TableService) buildColumn(ctx context.Context, databaseID uuid.UUID, i int, draft schema.ColumnDraft) (models.Column, error) {
	column := models.Column{
		Name:         strings.TrimSpace(draft.Name),
		Type:         models.ColumnType(draft.Type),
		IsNullable:   draft.IsNullable,
		IsPrimary:    draft.IsPrimary,
		IsForeignKey: draft.IsForeignKey,
	}
	if !draft.IsForeignKey {
		return column, nil
	}

	tableID, err := utils.ParseUUID(draft.ForeignTableID)
	if err != nil {
		return column, invalidReference(i, "foreignTableId", "Referenced table does not exist")
	}
	columnID, err := utils.ParseUUID(draft.ForeignColumnID)
	if err != nil {
		return column, invalidReference(i, "foreignColumnId", "Referenced column does not exist")
	}

	ok, err := s.tables.ColumnBelongsTo(ctx, databaseID, tableID, columnID)
	if err != nil {
		s.logger.Error("Failed to check foreign key target", zap.Error(err))
		return column, apperrors.Internal("Failed to create table", err)
	}
	if !ok {
		return column, invalidReference(i, "foreignColumnId", "Referenced column does not belong to the selected table in this database")
	}

	column.ForeignTableID = &tableID
	column.ForeignColumnID = &columnID
	return column, nil
}

func invalidReference(i int, field, message string) *apperrors.Error {
	return apperrors.Validation("table definition is invalid",
		apperrors.FieldError{Position: i, Field: field, Message: message})
}

// ListTables returns the database's tables with columns. A database the
// user cannot see yields an empty list.
func (s *TableService) ListTables(ctx context.Context, creatorID, databaseID uuid.UUID) ([]models.Table, error) {
	if _, err := ownedDatabase(ctx, s.projects, s.databases, creatorID, databaseID, false); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return []models.Table{}, nil
		}
		return nil, err
	}

	tables, err := s.tables.ListByDatabase(ctx, databaseID)
	if err != nil {
		s.logger.Error("Failed to list tables", zap.String("database_id", databaseID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to load tables", err)
	}
	if tables == nil {
		tables = []models.Table{}
	}
	return tables, nil
}

func (s *TableService) GetTable(ctx context.Context, creatorID, tableID uuid.UUID) (*models.Table, error) {
	table, err := s.tables.GetByID(ctx, tableID)
	if err != nil {
		s.logger.Error("Failed to load table", zap.String("table_id", tableID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to load table", err)
	}
	if table == nil {
		return nil, apperrors.NotFound("table not found")
	}
	if _, err := ownedDatabase(ctx, s.projects, s.databases, creatorID, table.DatabaseID, false); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.NotFound("table not found")
		}
		return nil, err
	}
	return table, nil
}
