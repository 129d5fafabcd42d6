package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Database is a named container of table definitions inside a project.
// Name is unique across all projects.
type Database struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Tables    []Table   `gorm:"foreignKey:DatabaseID;constraint:OnDelete:CASCADE" json:"tables,omitempty"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Database) TableName() string {
	return "databases"
}

func (d *Database) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
