package dto

import "github.com/shopspring/decimal"

type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"  validate:"required"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID           string                     `json:"supplier_id" validate:"required,uuid"`
	BranchID             string                     `json:"branch_id"   validate:"required,uuid"`
	ExpectedDeliveryDate *string                    `json:"expected_delivery_date" validate:"omitempty"`
	Notes                *string                    `json:"notes"`
	Items                []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest drives the status state machine. Notes, when
// present, replace the order's notes in the same transaction.
type UpdateOrderStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=PENDING APPROVED DELIVERED CANCELLED PARTIALLY_DELIVERED"`
	Notes  *string `json:"notes"`
}

type PurchaseOrderFilter struct {
	Status   string `form:"status"`
	BranchID string `form:"branch_id"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PurchaseOrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	SupplierID           string                      `json:"supplier_id"`
	SupplierName         string                      `json:"supplier_name,omitempty"`
	BranchID             string                      `json:"branch_id"`
	OrderDate            string                      `json:"order_date"`
	ExpectedDeliveryDate *string                     `json:"expected_delivery_date,omitempty"`
	Status               string                      `json:"status"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	Notes                *string                     `json:"notes,omitempty"`
	CreatedBy            string                      `json:"created_by"`
	Items                []PurchaseOrderItemResponse `json:"items"`
}

type PurchaseOrderListResponse struct {
	Data  []PurchaseOrderResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
