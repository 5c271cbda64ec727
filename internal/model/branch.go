package model

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a physical store. Immutable reference entity once inventory or
// sales point at it — there is no delete endpoint.
type Branch struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Code is the 3-digit prefix embedded in invoice numbers.
	Code         int    `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"uniqueIndex;not null"`
	Address      string `gorm:"not null"`
	Phone        *string
	OpeningHours *string
	CreatedAt    time.Time
}

func (Branch) TableName() string { return "branches" }
