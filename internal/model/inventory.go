package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryRecord is the Inventory Ledger row for one (product, branch) pair.
// Invariants: exactly one row per pair (composite unique index, upsert on
// first write) and Quantity >= 0 at all times — the repository enforces the
// latter with a conditional UPDATE and the schema backs it with a CHECK
// constraint.
type InventoryRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_branch"`
	BranchID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_branch"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	ExpiryDate  *time.Time      `gorm:"type:date"`
	LastUpdated time.Time       `gorm:"not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Branch  *Branch  `gorm:"foreignKey:BranchID"`
}

func (InventoryRecord) TableName() string { return "inventory" }
