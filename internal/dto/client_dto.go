package dto

type CreateClientRequest struct {
	CINIT    string  `json:"ci_nit"    validate:"required,min=5,max=20"`
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"     validate:"omitempty,max=20"`
	Address  *string `json:"address"`
}

type UpdateClientRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"     validate:"omitempty,max=20"`
	Address  *string `json:"address"`
}

type ClientResponse struct {
	ID       string  `json:"id"`
	CINIT    string  `json:"ci_nit"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}
