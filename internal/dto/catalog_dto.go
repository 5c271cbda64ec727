package dto

// catalog_dto.go — reference-data DTOs: categories, unit types, payment
// methods and branches.

type CreateCategoryRequest struct {
	Name               string  `json:"name"        validate:"required,min=2,max=100"`
	Description        *string `json:"description" validate:"omitempty,max=500"`
	NeedsRefrigeration bool    `json:"needs_refrigeration"`
}

type CategoryResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        *string `json:"description,omitempty"`
	NeedsRefrigeration bool    `json:"needs_refrigeration"`
}

type CreateUnitTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type UnitTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreatePaymentMethodRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=20"`
	Description *string `json:"description" validate:"omitempty,max=100"`
}

type PaymentMethodResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Active      bool    `json:"active"`
}

type CreateBranchRequest struct {
	Code         int     `json:"code"    validate:"required,min=1,max=999"`
	Name         string  `json:"name"    validate:"required,min=2,max=100"`
	Address      string  `json:"address" validate:"required"`
	Phone        *string `json:"phone"`
	OpeningHours *string `json:"opening_hours"`
}

type BranchResponse struct {
	ID           string  `json:"id"`
	Code         int     `json:"code"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Phone        *string `json:"phone,omitempty"`
	OpeningHours *string `json:"opening_hours,omitempty"`
}
