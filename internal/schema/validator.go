// Package schema holds the table-definition draft submitted by the table
// editor and the rules a draft must satisfy before it is persisted.
//
// Validate is what the table endpoints run on every create and validate
// request. Editor is the reference model of the client-side authoring flow
// (edit, validate on every change, submit once, reset or keep the draft);
// clients mirror its states and use POST .../tables/validate as the
// per-edit check. The server itself holds no editor state between requests.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"supaboard/internal/apperrors"
	"supaboard/internal/models"
)

// MaxNameLength bounds table and database names.
const MaxNameLength = 100

// ColumnDraft is one column of a table being authored. Foreign references
// are raw form values; an empty string means unset.
type ColumnDraft struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	IsNullable      bool   `json:"isNullable"`
	IsPrimary       bool   `json:"isPrimary"`
	IsForeignKey    bool   `json:"isForeignKey"`
	ForeignTableID  string `json:"foreignTableId,omitempty"`
	ForeignColumnID string `json:"foreignColumnId,omitempty"`
}

// TableDraft is the not-yet-persisted definition of a table.
type TableDraft struct {
	Name    string        `json:"name"`
	Columns []ColumnDraft `json:"columns"`
}

// NewColumn returns the column the editor appends by default.
func NewColumn() ColumnDraft {
	return ColumnDraft{
		Type:       string(models.ColumnTypeText),
		IsNullable: true,
	}
}

// ParseColumns decodes the JSON-encoded columns form field.
func ParseColumns(raw string) ([]ColumnDraft, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var columns []ColumnDraft
	if err := json.Unmarshal([]byte(raw), &columns); err != nil {
		return nil, fmt.Errorf("columns must be a JSON array: %w", err)
	}
	return columns, nil
}

// Validate checks a draft and returns every problem found, ordered by
// rule and then by column position. A nil result means the draft is valid.
//
// When more than one column is marked primary, every primary column is
// reported, not only the ones after the first.
func Validate(draft TableDraft) []apperrors.FieldError {
	var errs []apperrors.FieldError

	name := strings.TrimSpace(draft.Name)
	switch {
	case name == "":
		errs = append(errs, tableError("name", "Table name is required"))
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs = append(errs, tableError("name", fmt.Sprintf("Table name must be %d characters or less", MaxNameLength)))
	}

	if len(draft.Columns) == 0 {
		errs = append(errs, tableError("columns", "At least one column is required"))
		return errs
	}

	for i, col := range draft.Columns {
		if strings.TrimSpace(col.Name) == "" {
			errs = append(errs, columnError(i, "name", "Column name is required"))
		}
		if !models.ColumnType(col.Type).Valid() {
			errs = append(errs, columnError(i, "type", fmt.Sprintf("Unsupported column type %q", col.Type)))
		}
	}

	errs = append(errs, primaryKeyErrors(draft.Columns)...)

	for i, col := range draft.Columns {
		errs = append(errs, foreignKeyErrors(i, col)...)
	}

	return errs
}

func primaryKeyErrors(columns []ColumnDraft) []apperrors.FieldError {
	var primaries []int
	for i, col := range columns {
		if col.IsPrimary {
			primaries = append(primaries, i)
		}
	}
	if len(primaries) <= 1 {
		return nil
	}
	errs := make([]apperrors.FieldError, 0, len(primaries))
	for _, i := range primaries {
		errs = append(errs, columnError(i, "isPrimary", "Only one column can be the primary key"))
	}
	return errs
}

func foreignKeyErrors(i int, col ColumnDraft) []apperrors.FieldError {
	if !col.IsForeignKey {
		return nil
	}
	var errs []apperrors.FieldError
	if strings.TrimSpace(col.ForeignTableID) == "" {
		errs = append(errs, columnError(i, "foreignTableId", "Select the table this foreign key references"))
	}
	if strings.TrimSpace(col.ForeignColumnID) == "" {
		errs = append(errs, columnError(i, "foreignColumnId", "Select the column this foreign key references"))
	}
	return errs
}

func tableError(field, message string) apperrors.FieldError {
	return apperrors.FieldError{Position: -1, Field: field, Message: message}
}

func columnError(position int, field, message string) apperrors.FieldError {
	return apperrors.FieldError{Position: position, Field: field, Message: message}
}
