package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supaboard/internal/apperrors"
	"supaboard/internal/models"
	"supaboard/internal/utils"
)

type ProjectService struct {
	projects ProjectStore
	logger   *zap.Logger
}

func NewProjectService(projects ProjectStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

// CreateProject stores a project under the first free slug derived from
// its name, together with a freshly minted api key.
func (s *ProjectService) CreateProject(ctx context.Context, creatorID uuid.UUID, name, description string) (*models.Project, error) {
	if creatorID == uuid.Nil {
		return nil, apperrors.Validation("creator is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("project name is required",
			apperrors.FieldError{Position: -1, Field: "name", Message: "Project name is required"})
	}

	slug, err := s.freeSlug(ctx, utils.GenerateSlug(name))
	if err != nil {
		s.logger.Error("Failed to check project slug", zap.Error(err))
		return nil, apperrors.Internal("Failed to create project", err)
	}

	key, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, apperrors.Internal("Failed to create project", err)
	}

	project := &models.Project{
		Name:        name,
		Description: description,
		Slug:        slug,
		CreatorID:   creatorID,
	}
	apiKey := &models.ApiKey{Name: name + " Api Key", Key: key}

	if err := s.projects.Create(ctx, project, apiKey); err != nil {
		s.logger.Error("Failed to create project",
			zap.String("creator_id", creatorID.String()),
			zap.String("slug", slug),
			zap.Error(err))
		return nil, apperrors.FromStore(err, "", "a project with this slug already exists", "Failed to create project")
	}

	s.logger.Info("Project created", zap.String("project_id", project.ID.String()), zap.String("slug", slug))
	return project, nil
}

func (s *ProjectService) freeSlug(ctx context.Context, base string) (string, error) {
	for n := 0; ; n++ {
		candidate := utils.NthSlug(base, n)
		exists, err := s.projects.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func (s *ProjectService) ListProjects(ctx context.Context, creatorID uuid.UUID) ([]models.Project, error) {
	projects, err := s.projects.ListByCreator(ctx, creatorID)
	if err != nil {
		s.logger.Error("Failed to list projects", zap.String("creator_id", creatorID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to load projects", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// GetProjectBySlug only returns projects owned by creatorID.
func (s *ProjectService) GetProjectBySlug(ctx context.Context, creatorID uuid.UUID, slug string) (*models.Project, error) {
	project, err := s.projects.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("Failed to load project", zap.String("slug", slug), zap.Error(err))
		return nil, apperrors.Internal("Failed to load project", err)
	}
	if project == nil || project.CreatorID != creatorID {
		return nil, apperrors.NotFound("project not found")
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, creatorID, projectID uuid.UUID) error {
	deleted, err := s.projects.DeleteByIDAndCreator(ctx, projectID, creatorID)
	if err != nil {
		s.logger.Error("Failed to delete project", zap.String("project_id", projectID.String()), zap.Error(err))
		return apperrors.Internal("Failed to delete project", err)
	}
	if !deleted {
		return apperrors.NotFound("project not found")
	}
	s.logger.Info("Project deleted", zap.String("project_id", projectID.String()))
	return nil
}

// ownedProject resolves a project by id for its creator.
func ownedProject(ctx context.Context, projects ProjectStore, creatorID, projectID uuid.UUID) (*models.Project, error) {
	project, err := projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load project", err)
	}
	if project == nil || project.CreatorID != creatorID {
		return nil, apperrors.NotFound("project not found")
	}
	return project, nil
}
