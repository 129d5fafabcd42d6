package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"supaboard/internal/models"
)

// The stores below are satisfied by the types in internal/repositories.
// Lookups return nil, nil when the record does not exist.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindWithProjects(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type SessionStore interface {
	Store(ctx context.Context, jti string, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, jti string) (string, bool, error)
	Delete(ctx context.Context, jti string) error
}

type ProjectStore interface {
	Create(ctx context.Context, project *models.Project, apiKey *models.ApiKey) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	DeleteByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (bool, error)
}

type DatabaseStore interface {
	Create(ctx context.Context, database *models.Database) error
	NameExists(ctx context.Context, name string) (bool, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Database, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Database, error)
	GetWithTables(ctx context.Context, id uuid.UUID) (*models.Database, error)
}

type TableStore interface {
	Create(ctx context.Context, table *models.Table) error
	ListByDatabase(ctx context.Context, databaseID uuid.UUID) ([]models.Table, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	ColumnBelongsTo(ctx context.Context, databaseID, tableID, columnID uuid.UUID) (bool, error)
}
