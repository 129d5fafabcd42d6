package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supaboard/internal/models"
)

const (
	oneToMany = "||--o{"
	oneToOne  = "||--||"
)

var nonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]+`)

type SchemaService struct {
	projects  ProjectStore
	databases DatabaseStore
	logger    *zap.Logger
}

func NewSchemaService(projects ProjectStore, databases DatabaseStore, logger *zap.Logger) *SchemaService {
	return &SchemaService{projects: projects, databases: databases, logger: logger}
}

// VisualizeDatabase renders the stored table definitions of a database as
// a Mermaid ER diagram.
func (s *SchemaService) VisualizeDatabase(ctx context.Context, creatorID, databaseID uuid.UUID) (string, error) {
	database, err := ownedDatabase(ctx, s.projects, s.databases, creatorID, databaseID, true)
	if err != nil {
		return "", err
	}

	relationships := buildRelationships(database.Tables)
	s.logger.Debug("Rendering schema diagram",
		zap.String("database_id", databaseID.String()),
		zap.Int("tables", len(database.Tables)),
		zap.Int("relationships", len(relationships)))
	return generateMermaid(database.Tables, relationships), nil
}

// buildRelationships derives one edge per foreign-key column. A foreign key
// that is also the table's primary column is one-to-one.
func buildRelationships(tables []models.Table) []models.Relationship {
	names := make(map[uuid.UUID]string, len(tables))
	for _, table := range tables {
		names[table.ID] = table.Name
	}

	var relationships []models.Relationship
	for _, table := range tables {
		for _, col := range table.Columns {
			if !col.IsForeignKey || col.ForeignTableID == nil {
				continue
			}
			target, ok := names[*col.ForeignTableID]
			if !ok {
				continue
			}
			relType := oneToMany
			if col.IsPrimary {
				relType = oneToOne
			}
			relationships = append(relationships, models.Relationship{
				FromTable: table.Name,
				ToTable:   target,
				Type:      relType,
				Label:     col.Name,
			})
		}
	}
	return relationships
}

func generateMermaid(tables []models.Table, relationships []models.Relationship) string {
	var sb strings.Builder

	sb.WriteString("erDiagram\n")

	if len(relationships) > 0 {
		seen := make(map[string]bool)
		for _, rel := range relationships {
			key := fmt.Sprintf("%s:%s:%s:%s", rel.FromTable, rel.Type, rel.ToTable, rel.Label)
			if seen[key] {
				continue
			}
			seen[key] = true

			sb.WriteString(fmt.Sprintf("    %s %s %s : %q\n",
				entityName(rel.FromTable),
				rel.Type,
				entityName(rel.ToTable),
				rel.Label))
		}
		sb.WriteString("\n")
	}

	for _, table := range tables {
		sb.WriteString(fmt.Sprintf("    %s {\n", entityName(table.Name)))

		for _, col := range table.Columns {
			annotations := ""
			if col.IsPrimary {
				annotations = " PK"
			}
			if col.IsForeignKey {
				if annotations == "" {
					annotations = " FK"
				} else {
					annotations += ", FK"
				}
			}

			sb.WriteString(fmt.Sprintf("        %s %s%s\n",
				simplifyDataType(col.Type),
				identifier(col.Name),
				annotations))
		}

		sb.WriteString("    }\n\n")
	}

	return sb.String()
}

func entityName(name string) string {
	return strings.ToUpper(identifier(name))
}

// identifier makes a table or column name safe for Mermaid.
func identifier(name string) string {
	return strings.Trim(nonIdentifier.ReplaceAllString(name, "_"), "_")
}

func simplifyDataType(t models.ColumnType) string {
	switch t {
	case models.ColumnTypeInteger:
		return "int"
	case models.ColumnTypeText:
		return "text"
	case models.ColumnTypeBoolean:
		return "boolean"
	case models.ColumnTypeDate:
		return "date"
	case models.ColumnTypeFloat:
		return "float"
	default:
		return strings.ToLower(string(t))
	}
}
