package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"supaboard/internal/apperrors"
	"supaboard/internal/models"
	"supaboard/internal/schema"
)

func TestSchemaService_VisualizeDatabase(t *testing.T) {
	env := setupTableTest(t)
	ctx := context.Background()
	customers := env.customers(t)

	_, err := env.svc.CreateTable(ctx, env.owner, env.database.ID, "orders", []schema.ColumnDraft{
		{Name: "id", Type: "INTEGER", IsPrimary: true},
		{
			Name:            "customer_id",
			Type:            "INTEGER",
			IsForeignKey:    true,
			ForeignTableID:  customers.ID.String(),
			ForeignColumnID: customers.Columns[0].ID.String(),
		},
		{Name: "placed on", Type: "DATE"},
	})
	require.NoError(t, err)

	svc := NewSchemaService(env.stores.projects, env.stores.databases, zap.NewNop())
	diagram, err := svc.VisualizeDatabase(ctx, env.owner, env.database.ID)
	require.NoError(t, err)

	want := "erDiagram\n" +
		"    ORDERS ||--o{ CUSTOMERS : \"customer_id\"\n" +
		"\n" +
		"    CUSTOMERS {\n" +
		"        int id PK\n" +
		"        text email\n" +
		"    }\n" +
		"\n" +
		"    ORDERS {\n" +
		"        int id PK\n" +
		"        int customer_id FK\n" +
		"        date placed_on\n" +
		"    }\n" +
		"\n"
	assert.Equal(t, want, diagram)

	_, err = svc.VisualizeDatabase(ctx, uuid.New(), env.database.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBuildRelationships(t *testing.T) {
	parentID := uuid.New()
	parent := models.Table{ID: parentID, Name: "users"}
	profile := models.Table{
		ID:   uuid.New(),
		Name: "profiles",
		Columns: []models.Column{
			{Name: "user_id", IsPrimary: true, IsForeignKey: true, ForeignTableID: &parentID},
		},
	}
	dangling := uuid.New()
	orphan := models.Table{
		ID:   uuid.New(),
		Name: "orphans",
		Columns: []models.Column{
			{Name: "gone_id", IsForeignKey: true, ForeignTableID: &dangling},
			{Name: "null_id", IsForeignKey: true},
		},
	}

	rels := buildRelationships([]models.Table{parent, profile, orphan})
	require.Len(t, rels, 1)
	assert.Equal(t, models.Relationship{FromTable: "profiles", ToTable: "users", Type: oneToOne, Label: "user_id"}, rels[0])
}

func TestGenerateMermaid_DeduplicatesAndAnnotates(t *testing.T) {
	tables := []models.Table{{
		Name: "links",
		Columns: []models.Column{
			{Name: "id", Type: models.ColumnTypeInteger, IsPrimary: true, IsForeignKey: true},
		},
	}}
	rel := models.Relationship{FromTable: "links", ToTable: "links", Type: oneToOne, Label: "id"}

	diagram := generateMermaid(tables, []models.Relationship{rel, rel})
	assert.Equal(t, "erDiagram\n"+
		"    LINKS ||--|| LINKS : \"id\"\n"+
		"\n"+
		"    LINKS {\n"+
		"        int id PK, FK\n"+
		"    }\n"+
		"\n", diagram)
}
