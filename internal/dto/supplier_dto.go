package dto

type CreateSupplierRequest struct {
	Name        string  `json:"name"         validate:"required,min=2,max=100"`
	ContactName *string `json:"contact_name" validate:"omitempty,max=100"`
	Phone       *string `json:"phone"        validate:"omitempty,max=20"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Address     *string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name        *string `json:"name"         validate:"omitempty,min=2,max=100"`
	ContactName *string `json:"contact_name" validate:"omitempty,max=100"`
	Phone       *string `json:"phone"        validate:"omitempty,max=20"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Address     *string `json:"address"`
}

type SupplierResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	Active      bool    `json:"active"`
}
