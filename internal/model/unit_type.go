package model

import "github.com/google/uuid"

// UnitType is the unit of measure a product is sold in ("unidad", "kg", "lt").
type UnitType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"uniqueIndex;not null"`
}
