package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supaboard/internal/apperrors"
	"supaboard/internal/models"
	"supaboard/internal/schema"
)

type DatabaseService struct {
	projects  ProjectStore
	databases DatabaseStore
	logger    *zap.Logger
}

func NewDatabaseService(projects ProjectStore, databases DatabaseStore, logger *zap.Logger) *DatabaseService {
	return &DatabaseService{projects: projects, databases: databases, logger: logger}
}

// CreateDatabase adds a database to a project. Database names are unique
// across every project and are stored exactly as given.
func (s *DatabaseService) CreateDatabase(ctx context.Context, creatorID, projectID uuid.UUID, name string) (*models.Database, error) {
	switch {
	case strings.TrimSpace(name) == "":
		return nil, apperrors.Validation("database name is required",
			apperrors.FieldError{Position: -1, Field: "name", Message: "Database name is required"})
	case utf8.RuneCountInString(name) > schema.MaxNameLength:
		msg := fmt.Sprintf("Database name must be %d characters or less", schema.MaxNameLength)
		return nil, apperrors.Validation(msg, apperrors.FieldError{Position: -1, Field: "name", Message: msg})
	}

	if _, err := ownedProject(ctx, s.projects, creatorID, projectID); err != nil {
		return nil, err
	}

	exists, err := s.databases.NameExists(ctx, name)
	if err != nil {
		s.logger.Error("Failed to check database name", zap.Error(err))
		return nil, apperrors.Internal("Failed to create database", err)
	}
	if exists {
		return nil, duplicateDatabase(name)
	}

	database := &models.Database{Name: name, ProjectID: projectID}
	if err := s.databases.Create(ctx, database); err != nil {
		s.logger.Error("Failed to create database",
			zap.String("project_id", projectID.String()),
			zap.String("name", name),
			zap.Error(err))
		if apperrors.IsUniqueViolation(err) {
			return nil, duplicateDatabase(name)
		}
		return nil, apperrors.Internal("Failed to create database", err)
	}

	s.logger.Info("Database created", zap.String("database_id", database.ID.String()))
	return database, nil
}

func duplicateDatabase(name string) *apperrors.Error {
	return apperrors.DuplicateName(fmt.Sprintf("a database named %q already exists", name))
}

func (s *DatabaseService) ListDatabases(ctx context.Context, creatorID, projectID uuid.UUID) ([]models.Database, error) {
	if _, err := ownedProject(ctx, s.projects, creatorID, projectID); err != nil {
		return nil, err
	}
	databases, err := s.databases.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("Failed to list databases", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to load databases", err)
	}
	if databases == nil {
		databases = []models.Database{}
	}
	return databases, nil
}

// GetDatabaseWithTables returns the database with its tables and their
// columns.
func (s *DatabaseService) GetDatabaseWithTables(ctx context.Context, creatorID, databaseID uuid.UUID) (*models.Database, error) {
	return ownedDatabase(ctx, s.projects, s.databases, creatorID, databaseID, true)
}

// ownedDatabase resolves a database through its project's creator.
func ownedDatabase(ctx context.Context, projects ProjectStore, databases DatabaseStore, creatorID, databaseID uuid.UUID, withTables bool) (*models.Database, error) {
	var (
		database *models.Database
		err      error
	)
	if withTables {
		database, err = databases.GetWithTables(ctx, databaseID)
	} else {
		database, err = databases.GetByID(ctx, databaseID)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load database", err)
	}
	if database == nil {
		return nil, apperrors.NotFound("database not found")
	}

	if _, err := ownedProject(ctx, projects, creatorID, database.ProjectID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.NotFound("database not found")
		}
		return nil, err
	}
	return database, nil
}
