package dto

import "github.com/shopspring/decimal"

// InventoryFilter is bound from the query string of GET /v1/inventory.
type InventoryFilter struct {
	BranchID  string `form:"branch_id"  validate:"omitempty,uuid"`
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
}

// AdjustInventoryRequest applies a signed delta to one ledger record.
// Negative deltas that would drive the quantity below zero are rejected.
type AdjustInventoryRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	BranchID  string          `json:"branch_id"  validate:"required,uuid"`
	Delta     decimal.Decimal `json:"delta"      validate:"required"`
	Reason    string          `json:"reason"     validate:"required,min=5"`
}

type InventoryRecordResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	BranchID    string          `json:"branch_id"`
	BranchName  string          `json:"branch_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	LastUpdated string          `json:"last_updated"`
}

// LowStockAlertResponse pairs a ledger record with the product threshold it
// undercuts.
type LowStockAlertResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	BranchID    string          `json:"branch_id"`
	BranchName  string          `json:"branch_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinStock    decimal.Decimal `json:"min_stock"`
}
