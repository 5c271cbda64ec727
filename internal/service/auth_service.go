package service

import (
	"context"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)

	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) error

	CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*dto.RoleResponse, error)
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)

	// ParseToken validates an access or refresh token and returns its claims.
	ParseToken(raw string) (*TokenClaims, error)
}

type authService struct {
	users      repository.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users repository.UserRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// TokenClaims travel inside the JWT so permission checks need no DB hit.
type TokenClaims struct {
	Username    string          `json:"username"`
	Superuser   bool            `json:"superuser"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	Refresh     bool            `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		// Same message for unknown user and bad password.
		return nil, apierror.InvalidInput("usuario o contrasena incorrectos")
	}
	if !user.Active {
		return nil, apierror.InvalidInput("usuario inactivo")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.InvalidInput("usuario o contrasena incorrectos")
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil || !claims.Refresh {
		return nil, apierror.InvalidInput("refresh token invalido")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apierror.InvalidInput("refresh token invalido")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil || !user.Active {
		return nil, apierror.InvalidInput("refresh token invalido")
	}
	return s.issueTokens(user)
}

// ParseToken validates signature and expiry and returns the claims.
// The middleware calls this on every authenticated request.
func (s *authService) ParseToken(raw string) (*TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

func (s *authService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	now := time.Now().UTC()

	perms := map[string]bool{}
	if user.Role != nil {
		perms = user.Role.Permissions
	}

	access := TokenClaims{
		Username:    user.Username,
		Superuser:   user.Superuser,
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, access).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	refresh := TokenClaims{
		Username: user.Username,
		Refresh:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refresh).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         *userToResponse(user),
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Active:       true,
		Superuser:    req.Superuser,
	}
	if req.RoleID != nil {
		rid, err := uuid.Parse(*req.RoleID)
		if err != nil {
			return nil, apierror.InvalidInput("role_id invalido: %s", *req.RoleID)
		}
		if _, err := s.users.FindRoleByID(ctx, rid); err != nil {
			return nil, apierror.NotFound("rol", *req.RoleID)
		}
		user.RoleID = &rid
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if repository.IsUniqueViolation(err, "username") {
			return nil, apierror.InvalidInput("el usuario %s ya existe", req.Username)
		}
		return nil, err
	}
	return userToResponse(&user), nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("usuario", id)
	}
	return userToResponse(user), nil
}

func (s *authService) ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *userToResponse(&users[i]))
	}
	return out, nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("usuario", id)
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.RoleID != nil {
		rid, err := uuid.Parse(*req.RoleID)
		if err != nil {
			return nil, apierror.InvalidInput("role_id invalido: %s", *req.RoleID)
		}
		if _, err := s.users.FindRoleByID(ctx, rid); err != nil {
			return nil, apierror.NotFound("rol", *req.RoleID)
		}
		user.RoleID = &rid
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *authService) SetUserActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return apierror.NotFound("usuario", id)
	}
	return s.users.SetActive(ctx, id, active)
}

func (s *authService) CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	role := model.Role{
		Name:        req.Name,
		Permissions: model.PermissionMap(req.Permissions),
	}
	if err := s.users.CreateRole(ctx, &role); err != nil {
		if repository.IsUniqueViolation(err, "name") {
			return nil, apierror.InvalidInput("el rol %s ya existe", req.Name)
		}
		return nil, err
	}
	return roleToResponse(&role), nil
}

func (s *authService) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.users.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, *roleToResponse(&roles[i]))
	}
	return out, nil
}

func userToResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		FullName:  u.FullName,
		Active:    u.Active,
		Superuser: u.Superuser,
	}
	if u.Role != nil {
		resp.Role = u.Role.Name
	}
	return resp
}

func roleToResponse(r *model.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Permissions: r.Permissions,
	}
}
