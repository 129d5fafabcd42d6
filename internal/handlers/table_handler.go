package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supaboard/internal/apperrors"
	"supaboard/internal/models"
	"supaboard/internal/responses"
	"supaboard/internal/schema"
)

type TableService interface {
	CreateTable(ctx context.Context, creatorID, databaseID uuid.UUID, name string, columns []schema.ColumnDraft) (*models.Table, error)
	ListTables(ctx context.Context, creatorID, databaseID uuid.UUID) ([]models.Table, error)
	GetTable(ctx context.Context, creatorID, tableID uuid.UUID) (*models.Table, error)
	ValidateDraft(draft schema.TableDraft) []apperrors.FieldError
}

type TableHandler struct {
	tableService TableService
}

func NewTableHandler(tableService TableService) *TableHandler {
	return &TableHandler{
		tableService: tableService,
	}
}

// bindDraft reads the name and columns form fields. columns holds a JSON
// array of column definitions.
func bindDraft(c *gin.Context) (schema.TableDraft, bool) {
	columns, err := schema.ParseColumns(c.PostForm("columns"))
	if err != nil {
		responses.Error(c, apperrors.Validation("columns must be a JSON array",
			apperrors.FieldError{Position: -1, Field: "columns", Message: "Columns could not be read"}))
		return schema.TableDraft{}, false
	}
	return schema.TableDraft{Name: c.PostForm("name"), Columns: columns}, true
}

// CreateTable handles POST /api/v1/databases/:databaseId/tables
func (h *TableHandler) CreateTable(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	databaseID, ok := uuidParam(c, "databaseId")
	if !ok {
		return
	}
	draft, ok := bindDraft(c)
	if !ok {
		return
	}

	table, err := h.tableService.CreateTable(c.Request.Context(), userID, databaseID, draft.Name, draft.Columns)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusCreated, table, "Table created successfully")
}

// ValidateTable handles POST /api/v1/databases/:databaseId/tables/validate.
// Nothing is stored; the field errors are returned as data.
func (h *TableHandler) ValidateTable(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	if _, ok := uuidParam(c, "databaseId"); !ok {
		return
	}
	draft, ok := bindDraft(c)
	if !ok {
		return
	}

	fields := h.tableService.ValidateDraft(draft)
	if fields == nil {
		fields = []apperrors.FieldError{}
	}
	responses.Success(c, http.StatusOK, gin.H{
		"valid":  len(fields) == 0,
		"fields": fields,
	}, "Table definition checked")
}

// ListTables handles GET /api/v1/databases/:databaseId/tables
func (h *TableHandler) ListTables(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	databaseID, ok := uuidParam(c, "databaseId")
	if !ok {
		return
	}

	tables, err := h.tableService.ListTables(c.Request.Context(), userID, databaseID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, tables, "Tables retrieved successfully")
}

// GetTable handles GET /api/v1/tables/:tableId
func (h *TableHandler) GetTable(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	tableID, ok := uuidParam(c, "tableId")
	if !ok {
		return
	}

	table, err := h.tableService.GetTable(c.Request.Context(), userID, tableID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, table, "Table retrieved successfully")
}
