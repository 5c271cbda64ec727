package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are never physically removed: Active
// is cleared instead so historical sale details keep a valid reference.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Barcode     string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	UnitTypeID  *uuid.UUID      `gorm:"type:uuid"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cost        decimal.Decimal `gorm:"type:decimal(10,2)"`
	// MinStock is the per-product threshold the low-stock cron compares
	// ledger quantities against.
	MinStock  decimal.Decimal `gorm:"type:decimal(10,3);not null;default:5"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	UnitType *UnitType `gorm:"foreignKey:UnitTypeID"`
}
