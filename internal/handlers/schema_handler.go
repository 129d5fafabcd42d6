package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supaboard/internal/responses"
)

type SchemaService interface {
	VisualizeDatabase(ctx context.Context, creatorID, databaseID uuid.UUID) (string, error)
}

type SchemaHandler struct {
	schemaService SchemaService
}

func NewSchemaHandler(schemaService SchemaService) *SchemaHandler {
	return &SchemaHandler{
		schemaService: schemaService,
	}
}

// VisualizeSchema handles GET /api/v1/databases/:databaseId/schema
func (h *SchemaHandler) VisualizeSchema(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	databaseID, ok := uuidParam(c, "databaseId")
	if !ok {
		return
	}

	diagram, err := h.schemaService.VisualizeDatabase(c.Request.Context(), userID, databaseID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"mermaid": diagram,
	}, "Schema visualization generated successfully")
}
