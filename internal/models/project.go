package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project matches the projects table. Slug is globally unique.
type Project struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:text;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Slug        string     `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	CreatorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"creator_id"`
	ApiKeys     []ApiKey   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"api_keys,omitempty"`
	Buckets     []Bucket   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"buckets,omitempty"`
	Databases   []Database `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"databases,omitempty"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// ApiKey is the opaque credential minted for a project at creation time.
type ApiKey struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Key       string    `gorm:"type:text;not null;uniqueIndex" json:"key"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}

func (k *ApiKey) BeforeCreate(tx *gorm.DB) (err error) {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return
}

// Bucket is listed with its project; nothing in this service creates one.
type Bucket struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Public    bool      `gorm:"not null;default:false" json:"public"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Bucket) TableName() string {
	return "buckets"
}
