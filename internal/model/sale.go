package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const SaleStatusCompleted = "completed"

// Sale is created atomically with its details and never updated afterwards.
// Invariants: Total = Subtotal - Discount and Subtotal = Σ qty*unit_price
// over the details.
type Sale struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber   string          `gorm:"type:varchar(25);uniqueIndex;not null"`
	ClientID        *uuid.UUID      `gorm:"type:uuid;index"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null"`
	BranchID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentMethodID uuid.UUID       `gorm:"type:uuid;not null"`
	SaleDate        time.Time       `gorm:"not null;index"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'completed'"`
	CreatedAt       time.Time

	Client        *Client        `gorm:"foreignKey:ClientID"`
	User          *User          `gorm:"foreignKey:UserID"`
	Branch        *Branch        `gorm:"foreignKey:BranchID"`
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID"`
	Details       []SaleDetail   `gorm:"foreignKey:SaleID"`
}

// SaleDetail is one line item. TotalLine = Quantity*UnitPrice - Discount.
type SaleDetail struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalLine decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
