package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date     string `form:"date"`      // YYYY-MM-DD; empty = no date filter
	BranchID string `form:"branch_id"` // optional UUID
	Status   string `form:"status"`    // completed | all
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaleItemRequest carries the unit price the cashier saw at the moment of
// sale; the product itself must exist and be active.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
	Discount  decimal.Decimal `json:"discount"   validate:"min=0"`
}

type CreateSaleRequest struct {
	BranchID        string            `json:"branch_id"         validate:"required,uuid"`
	ClientID        *string           `json:"client_id"         validate:"omitempty,uuid"`
	PaymentMethodID string            `json:"payment_method_id" validate:"required,uuid"`
	Discount        decimal.Decimal   `json:"discount"          validate:"min=0"`
	Items           []SaleItemRequest `json:"items"             validate:"required,min=1,dive"`
	// ClientEmail: optional — when present, the receipt worker mails the PDF.
	ClientEmail *string `json:"client_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleDetailResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalLine   decimal.Decimal `json:"total_line"`
}

type SaleResponse struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	BranchID      string               `json:"branch_id"`
	BranchName    string               `json:"branch_name,omitempty"`
	ClientID      *string              `json:"client_id,omitempty"`
	ClientName    string               `json:"client_name,omitempty"`
	UserID        string               `json:"user_id"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	SaleDate      string               `json:"sale_date"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Discount      decimal.Decimal      `json:"discount"`
	Total         decimal.Decimal      `json:"total"`
	Status        string               `json:"status"`
	Details       []SaleDetailResponse `json:"details"`
}
