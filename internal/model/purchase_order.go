package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus values for purchase orders. DELIVERED and CANCELLED are
// terminal: no further status change is accepted from either.
const (
	OrderStatusPending            = "PENDING"
	OrderStatusApproved           = "APPROVED"
	OrderStatusDelivered          = "DELIVERED"
	OrderStatusCancelled          = "CANCELLED"
	OrderStatusPartiallyDelivered = "PARTIALLY_DELIVERED"
)

type PurchaseOrder struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	BranchID             uuid.UUID  `gorm:"type:uuid;not null"`
	OrderDate            time.Time  `gorm:"not null"`
	ExpectedDeliveryDate *time.Time
	Status               string          `gorm:"type:varchar(25);not null;default:'PENDING';index"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes                *string         `gorm:"type:text"`
	CreatedBy            uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Supplier *Supplier           `gorm:"foreignKey:SupplierID"`
	Branch   *Branch             `gorm:"foreignKey:BranchID"`
	Creator  *User               `gorm:"foreignKey:CreatedBy"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:OrderID"`
}

type PurchaseOrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
