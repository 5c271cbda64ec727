package service

import (
	"context"
	"testing"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
	roles map[uuid.UUID]*model.Role
}

func newStubUsers() *stubUserRepo {
	return &stubUserRepo{
		users: map[uuid.UUID]*model.User{},
		roles: map[uuid.UUID]*model.Role{},
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if includeInactive || u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	if u, ok := r.users[id]; ok {
		u.Active = active
	}
	return nil
}

func (r *stubUserRepo) CreateRole(_ context.Context, role *model.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	r.roles[role.ID] = role
	return nil
}

func (r *stubUserRepo) FindRoleByID(_ context.Context, id uuid.UUID) (*model.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (r *stubUserRepo) ListRoles(_ context.Context) ([]model.Role, error) {
	var out []model.Role
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func newAuthFixture(t *testing.T) (AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUsers()
	svc := NewAuthService(repo, "secreto-de-prueba", time.Hour, 24*time.Hour)
	return svc, repo
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, role *model.Role) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Active:       true,
		Role:         role,
	}
	if role != nil {
		u.RoleID = &role.ID
	}
	repo.users[u.ID] = u
	return u
}

func TestLoginIssuesTokensWithPermissions(t *testing.T) {
	svc, repo := newAuthFixture(t)
	role := &model.Role{ID: uuid.New(), Name: "cajero", Permissions: model.PermissionMap{"sales:create": true}}
	repo.roles[role.ID] = role
	seedUser(t, repo, "maria", "clave123", role)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave123"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "maria", resp.User.Username)

	claims, err := svc.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Username)
	assert.True(t, claims.Permissions["sales:create"])
	assert.False(t, claims.Refresh)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "maria", "clave123", nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "otra"})
	require.Error(t, err)
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "maria", "clave123", nil)

	_, errUnknown := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	_, errBadPass := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "x"})
	require.Error(t, errUnknown)
	require.Error(t, errBadPass)
	// Same message so the response does not leak which usernames exist.
	assert.Equal(t, errBadPass.Error(), errUnknown.Error())
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newAuthFixture(t)
	u := seedUser(t, repo, "maria", "clave123", nil)
	u.Active = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave123"})
	require.Error(t, err)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "maria", "clave123", nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "maria", refreshed.User.Username)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "maria", "clave123", nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave123"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	require.Error(t, err)
}

func TestAccessTokenRejectedAsRefreshAfterExpiry(t *testing.T) {
	repo := newStubUsers()
	svc := NewAuthService(repo, "secreto-de-prueba", -time.Minute, 24*time.Hour)
	seedUser(t, repo, "maria", "clave123", nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave123"})
	require.NoError(t, err)

	_, err = svc.ParseToken(login.AccessToken)
	require.Error(t, err, "un token expirado no debe validar")
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "nuevo",
		Password: "clave123",
	})
	require.NoError(t, err)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	stored := repo.users[id]
	assert.NotEqual(t, "clave123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave123")))
}

func TestSuperuserClaimsBypassPermissionMap(t *testing.T) {
	svc, repo := newAuthFixture(t)
	u := seedUser(t, repo, "root", "clave123", nil)
	u.Superuser = true

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "root", Password: "clave123"})
	require.NoError(t, err)

	claims, err := svc.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.Superuser)
}
