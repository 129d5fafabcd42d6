package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supaboard/internal/models"
	"supaboard/internal/responses"
)

type ProjectResolver interface {
	GetProjectBySlug(ctx context.Context, creatorID uuid.UUID, slug string) (*models.Project, error)
}

type DatabaseService interface {
	CreateDatabase(ctx context.Context, creatorID, projectID uuid.UUID, name string) (*models.Database, error)
	ListDatabases(ctx context.Context, creatorID, projectID uuid.UUID) ([]models.Database, error)
	GetDatabaseWithTables(ctx context.Context, creatorID, databaseID uuid.UUID) (*models.Database, error)
}

type DatabaseHandler struct {
	projects        ProjectResolver
	databaseService DatabaseService
}

func NewDatabaseHandler(projects ProjectResolver, databaseService DatabaseService) *DatabaseHandler {
	return &DatabaseHandler{projects: projects, databaseService: databaseService}
}

// CreateDatabase handles POST /api/v1/projects/:slug/databases
func (h *DatabaseHandler) CreateDatabase(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req struct {
		Name string `form:"name" json:"name"`
	}
	if err := c.ShouldBind(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	project, err := h.projects.GetProjectBySlug(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		responses.Error(c, err)
		return
	}

	database, err := h.databaseService.CreateDatabase(c.Request.Context(), userID, project.ID, req.Name)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusCreated, database, "Database created successfully")
}

// ListDatabases handles GET /api/v1/projects/:slug/databases
func (h *DatabaseHandler) ListDatabases(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	project, err := h.projects.GetProjectBySlug(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		responses.Error(c, err)
		return
	}

	databases, err := h.databaseService.ListDatabases(c.Request.Context(), userID, project.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, databases, "Databases retrieved successfully")
}

// GetDatabase handles GET /api/v1/databases/:databaseId
func (h *DatabaseHandler) GetDatabase(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	databaseID, ok := uuidParam(c, "databaseId")
	if !ok {
		return
	}

	database, err := h.databaseService.GetDatabaseWithTables(c.Request.Context(), userID, databaseID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, database, "Database retrieved successfully")
}
