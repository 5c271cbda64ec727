package dto

import "github.com/shopspring/decimal"

type ProductFilter struct {
	Barcode    string `form:"barcode"`
	Name       string `form:"name"`
	CategoryID string `form:"category_id" validate:"omitempty,uuid"`
	// Active filter: "false" = inactive only, "all" = everything, default active
	Active string `form:"active"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateProductRequest struct {
	Barcode     string           `json:"barcode"     validate:"required,min=4,max=20"`
	Name        string           `json:"name"        validate:"required,min=2,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	UnitTypeID  *string          `json:"unit_type_id" validate:"omitempty,uuid"`
	Price       decimal.Decimal  `json:"price"       validate:"required"`
	Cost        decimal.Decimal  `json:"cost"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest applies only non-absent fields — every pointer that is
// nil leaves the stored value untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	UnitTypeID  *string          `json:"unit_type_id" validate:"omitempty,uuid"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	UnitType    string          `json:"unit_type,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	MinStock    decimal.Decimal `json:"min_stock"`
	Active      bool            `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceCheckResponse is served by the public barcode endpoint (Redis-cached).
type PriceCheckResponse struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category,omitempty"`
	// Stock is the ledger total across branches, or the branch quantity when
	// branch_id is given.
	Stock decimal.Decimal `json:"stock"`
}
