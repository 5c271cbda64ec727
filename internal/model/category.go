package model

import (
	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	// NeedsRefrigeration flags cold-chain products for branch logistics.
	NeedsRefrigeration bool `gorm:"not null;default:false"`
}

// TableName overrides GORM's pluralization (categorys → categories).
func (Category) TableName() string { return "categories" }
