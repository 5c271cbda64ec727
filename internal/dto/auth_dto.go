package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	Username string  `json:"username"  validate:"required,min=3,max=50"`
	Password string  `json:"password"  validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"omitempty,max=100"`
	RoleID   *string `json:"role_id"   validate:"omitempty,uuid"`
	Superuser bool   `json:"superuser"`
}

type UpdateUserRequest struct {
	Password *string `json:"password"  validate:"omitempty,min=6"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	RoleID   *string `json:"role_id"   validate:"omitempty,uuid"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name,omitempty"`
	Role      string `json:"role,omitempty"`
	Active    bool   `json:"active"`
	Superuser bool   `json:"superuser"`
}

type CreateRoleRequest struct {
	Name        string          `json:"name"        validate:"required,min=2,max=50"`
	Permissions map[string]bool `json:"permissions" validate:"required"`
}

type RoleResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Permissions map[string]bool `json:"permissions"`
}
