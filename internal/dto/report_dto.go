package dto

import "github.com/shopspring/decimal"

// SalesReportFilter bounds a report to a closed date range (inclusive days,
// YYYY-MM-DD) and optionally one branch.
type SalesReportFilter struct {
	From     string `form:"from"      validate:"required"`
	To       string `form:"to"        validate:"required"`
	BranchID string `form:"branch_id" validate:"omitempty,uuid"`
}

type ProductSalesRow struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

type SalesReportResponse struct {
	From            string                     `json:"from"`
	To              string                     `json:"to"`
	BranchID        string                     `json:"branch_id,omitempty"`
	SaleCount       int                        `json:"sale_count"`
	TotalAmount     decimal.Decimal            `json:"total_amount"`
	TotalDiscount   decimal.Decimal            `json:"total_discount"`
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
	TopProducts     []ProductSalesRow          `json:"top_products"`
}
