package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColumnType is the closed set of column types offered by the table editor.
type ColumnType string

const (
	ColumnTypeText    ColumnType = "TEXT"
	ColumnTypeInteger ColumnType = "INTEGER"
	ColumnTypeBoolean ColumnType = "BOOLEAN"
	ColumnTypeDate    ColumnType = "DATE"
	ColumnTypeFloat   ColumnType = "FLOAT"
)

var ColumnTypes = []ColumnType{
	ColumnTypeText,
	ColumnTypeInteger,
	ColumnTypeBoolean,
	ColumnTypeDate,
	ColumnTypeFloat,
}

func (t ColumnType) Valid() bool {
	for _, ct := range ColumnTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// Table is a table definition. Name is unique within its database.
type Table struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"type:text;not null;uniqueIndex:idx_tables_database_name" json:"name"`
	DatabaseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tables_database_name" json:"database_id"`
	Columns    []Column  `gorm:"foreignKey:TableID;constraint:OnDelete:CASCADE" json:"columns"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Table) TableName() string {
	return "tables"
}

func (t *Table) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// PrimaryColumn returns the table's primary column, if any.
func (t *Table) PrimaryColumn() *Column {
	for i := range t.Columns {
		if t.Columns[i].IsPrimary {
			return &t.Columns[i]
		}
	}
	return nil
}

// Column is a typed column of a Table. ForeignTableID and ForeignColumnID
// are both set when IsForeignKey is true. Position keeps the order the
// columns were defined in. The JSON form uses the same field names as
// schema.ColumnDraft so a stored column can be sent back as a draft.
type Column struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string     `gorm:"type:text;not null" json:"name"`
	Type            ColumnType `gorm:"type:text;not null" json:"type"`
	IsNullable      bool       `gorm:"not null" json:"isNullable"`
	IsPrimary       bool       `gorm:"not null" json:"isPrimary"`
	IsForeignKey    bool       `gorm:"not null" json:"isForeignKey"`
	Position        int        `gorm:"not null" json:"position"`
	ForeignTableID  *uuid.UUID `gorm:"type:uuid" json:"foreignTableId,omitempty"`
	ForeignColumnID *uuid.UUID `gorm:"type:uuid" json:"foreignColumnId,omitempty"`
	TableID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"tableId"`
	CreatedAt       time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (Column) TableName() string {
	return "columns"
}

func (c *Column) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
