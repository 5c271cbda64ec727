package service

import (
	"context"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"

	"github.com/google/uuid"
)

// CatalogService groups the small reference-data entities: categories, unit
// types, payment methods and branches.
type CatalogService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateUnitType(ctx context.Context, req dto.CreateUnitTypeRequest) (*dto.UnitTypeResponse, error)
	ListUnitTypes(ctx context.Context) ([]dto.UnitTypeResponse, error)
	DeleteUnitType(ctx context.Context, id uuid.UUID) error

	CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest) (*dto.PaymentMethodResponse, error)
	ListPaymentMethods(ctx context.Context) ([]dto.PaymentMethodResponse, error)
	DeactivatePaymentMethod(ctx context.Context, id uuid.UUID) error

	CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*dto.BranchResponse, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*dto.BranchResponse, error)
	ListBranches(ctx context.Context) ([]dto.BranchResponse, error)
	UpdateBranch(ctx context.Context, id uuid.UUID, req dto.CreateBranchRequest) (*dto.BranchResponse, error)
}

type catalogService struct {
	categories repository.CategoryRepository
	unitTypes  repository.UnitTypeRepository
	payments   repository.PaymentMethodRepository
	branches   repository.BranchRepository
}

func NewCatalogService(
	categories repository.CategoryRepository,
	unitTypes repository.UnitTypeRepository,
	payments repository.PaymentMethodRepository,
	branches repository.BranchRepository,
) CatalogService {
	return &catalogService{
		categories: categories,
		unitTypes:  unitTypes,
		payments:   payments,
		branches:   branches,
	}
}

// ─── Categories ──────────────────────────────────────────────────────────────

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := model.Category{
		Name:               req.Name,
		Description:        req.Description,
		NeedsRefrigeration: req.NeedsRefrigeration,
	}
	if err := s.categories.Create(ctx, &c); err != nil {
		if repository.IsUniqueViolation(err, "name") {
			return nil, apierror.InvalidInput("ya existe la categoria %s", req.Name)
		}
		return nil, err
	}
	return categoryToResponse(&c), nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *categoryToResponse(&categories[i]))
	}
	return out, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("categoria", id)
	}
	c.Name = req.Name
	c.Description = req.Description
	c.NeedsRefrigeration = req.NeedsRefrigeration
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return categoryToResponse(c), nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return apierror.NotFound("categoria", id)
	}
	return s.categories.Delete(ctx, id)
}

// ─── Unit types ──────────────────────────────────────────────────────────────

func (s *catalogService) CreateUnitType(ctx context.Context, req dto.CreateUnitTypeRequest) (*dto.UnitTypeResponse, error) {
	u := model.UnitType{Name: req.Name}
	if err := s.unitTypes.Create(ctx, &u); err != nil {
		if repository.IsUniqueViolation(err, "name") {
			return nil, apierror.InvalidInput("ya existe la unidad %s", req.Name)
		}
		return nil, err
	}
	return &dto.UnitTypeResponse{ID: u.ID.String(), Name: u.Name}, nil
}

func (s *catalogService) ListUnitTypes(ctx context.Context) ([]dto.UnitTypeResponse, error) {
	unitTypes, err := s.unitTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitTypeResponse, 0, len(unitTypes))
	for _, u := range unitTypes {
		out = append(out, dto.UnitTypeResponse{ID: u.ID.String(), Name: u.Name})
	}
	return out, nil
}

func (s *catalogService) DeleteUnitType(ctx context.Context, id uuid.UUID) error {
	return s.unitTypes.Delete(ctx, id)
}

// ─── Payment methods ─────────────────────────────────────────────────────────

func (s *catalogService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	m := model.PaymentMethod{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.payments.Create(ctx, &m); err != nil {
		if repository.IsUniqueViolation(err, "name") {
			return nil, apierror.InvalidInput("ya existe el metodo de pago %s", req.Name)
		}
		return nil, err
	}
	return paymentMethodToResponse(&m), nil
}

func (s *catalogService) ListPaymentMethods(ctx context.Context) ([]dto.PaymentMethodResponse, error) {
	methods, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentMethodResponse, 0, len(methods))
	for i := range methods {
		out = append(out, *paymentMethodToResponse(&methods[i]))
	}
	return out, nil
}

func (s *catalogService) DeactivatePaymentMethod(ctx context.Context, id uuid.UUID) error {
	if _, err := s.payments.FindByID(ctx, id); err != nil {
		return apierror.NotFound("metodo de pago", id)
	}
	return s.payments.SoftDelete(ctx, id)
}

// ─── Branches ────────────────────────────────────────────────────────────────

func (s *catalogService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	b := model.Branch{
		Code:         req.Code,
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		OpeningHours: req.OpeningHours,
	}
	if err := s.branches.Create(ctx, &b); err != nil {
		if repository.IsUniqueViolation(err, "code") {
			return nil, apierror.InvalidInput("ya existe una sucursal con codigo %d", req.Code)
		}
		if repository.IsUniqueViolation(err, "name") {
			return nil, apierror.InvalidInput("ya existe la sucursal %s", req.Name)
		}
		return nil, err
	}
	return branchToResponse(&b), nil
}

func (s *catalogService) GetBranch(ctx context.Context, id uuid.UUID) (*dto.BranchResponse, error) {
	b, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("sucursal", id)
	}
	return branchToResponse(b), nil
}

func (s *catalogService) ListBranches(ctx context.Context) ([]dto.BranchResponse, error) {
	branches, err := s.branches.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(branches))
	for i := range branches {
		out = append(out, *branchToResponse(&branches[i]))
	}
	return out, nil
}

func (s *catalogService) UpdateBranch(ctx context.Context, id uuid.UUID, req dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	b, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("sucursal", id)
	}
	// The code is frozen: it prefixes every invoice already issued here.
	if req.Code != b.Code {
		return nil, apierror.InvalidInput("el codigo de sucursal no puede cambiarse")
	}
	b.Name = req.Name
	b.Address = req.Address
	b.Phone = req.Phone
	b.OpeningHours = req.OpeningHours
	if err := s.branches.Update(ctx, b); err != nil {
		return nil, err
	}
	return branchToResponse(b), nil
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:                 c.ID.String(),
		Name:               c.Name,
		Description:        c.Description,
		NeedsRefrigeration: c.NeedsRefrigeration,
	}
}

func paymentMethodToResponse(m *model.PaymentMethod) *dto.PaymentMethodResponse {
	return &dto.PaymentMethodResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Active:      m.Active,
	}
}

func branchToResponse(b *model.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:           b.ID.String(),
		Code:         b.Code,
		Name:         b.Name,
		Address:      b.Address,
		Phone:        b.Phone,
		OpeningHours: b.OpeningHours,
	}
}
