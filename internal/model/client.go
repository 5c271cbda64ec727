package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is referenced, never owned, by sales.
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// CINIT is the client's tax/identity number.
	CINIT     string `gorm:"column:ci_nit;uniqueIndex;not null"`
	FullName  string `gorm:"not null"`
	Email     *string
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
