package service

import (
	"context"
	"errors"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type InventoryService interface {
	Get(ctx context.Context, productID, branchID uuid.UUID) (*dto.InventoryRecordResponse, error)
	List(ctx context.Context, filter dto.InventoryFilter) ([]dto.InventoryRecordResponse, error)
	// Adjust applies a signed manual correction (merma, recount, breakage).
	Adjust(ctx context.Context, userID uuid.UUID, req dto.AdjustInventoryRequest) (*dto.InventoryRecordResponse, error)
	LowStock(ctx context.Context) ([]dto.LowStockAlertResponse, error)
}

type inventoryService struct {
	repo     repository.InventoryRepository
	products repository.ProductRepository
	branches repository.BranchRepository
}

func NewInventoryService(
	repo repository.InventoryRepository,
	products repository.ProductRepository,
	branches repository.BranchRepository,
) InventoryService {
	return &inventoryService{repo: repo, products: products, branches: branches}
}

func (s *inventoryService) Get(ctx context.Context, productID, branchID uuid.UUID) (*dto.InventoryRecordResponse, error) {
	rec, err := s.repo.Find(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	return inventoryToResponse(rec), nil
}

func (s *inventoryService) List(ctx context.Context, filter dto.InventoryFilter) ([]dto.InventoryRecordResponse, error) {
	var branchID, productID *uuid.UUID
	if filter.BranchID != "" {
		id, err := uuid.Parse(filter.BranchID)
		if err != nil {
			return nil, apierror.InvalidInput("branch_id invalido: %s", filter.BranchID)
		}
		branchID = &id
	}
	if filter.ProductID != "" {
		id, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return nil, apierror.InvalidInput("product_id invalido: %s", filter.ProductID)
		}
		productID = &id
	}

	recs, err := s.repo.List(ctx, branchID, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(recs))
	for i := range recs {
		out = append(out, *inventoryToResponse(&recs[i]))
	}
	return out, nil
}

func (s *inventoryService) Adjust(ctx context.Context, userID uuid.UUID, req dto.AdjustInventoryRequest) (*dto.InventoryRecordResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.InvalidInput("product_id invalido: %s", req.ProductID)
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, apierror.InvalidInput("branch_id invalido: %s", req.BranchID)
	}
	if req.Delta.IsZero() {
		return nil, apierror.InvalidInput("el ajuste no puede ser cero")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apierror.NotFound("producto", req.ProductID)
	}
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return nil, apierror.NotFound("sucursal", req.BranchID)
	}

	delta := qty(req.Delta)
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.AdjustTx(tx, productID, branchID, delta)
	})
	if err != nil {
		var stockErr *apierror.InsufficientStockError
		if errors.As(err, &stockErr) {
			stockErr.ProductName = product.Name
		}
		return nil, err
	}

	// The reason is audit trail, not state: log it structured.
	log.Info().
		Str("product_id", productID.String()).
		Str("branch_id", branchID.String()).
		Str("delta", delta.String()).
		Str("reason", req.Reason).
		Str("user_id", userID.String()).
		Msg("ajuste manual de inventario")

	rec, err := s.repo.Find(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	return inventoryToResponse(rec), nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]dto.LowStockAlertResponse, error) {
	recs, err := s.repo.ListBelowMinStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockAlertResponse, 0, len(recs))
	for _, rec := range recs {
		alert := dto.LowStockAlertResponse{
			ProductID: rec.ProductID.String(),
			BranchID:  rec.BranchID.String(),
			Quantity:  rec.Quantity,
		}
		if rec.Product != nil {
			alert.ProductName = rec.Product.Name
			alert.MinStock = rec.Product.MinStock
		}
		if rec.Branch != nil {
			alert.BranchName = rec.Branch.Name
		}
		out = append(out, alert)
	}
	return out, nil
}

func inventoryToResponse(rec *model.InventoryRecord) *dto.InventoryRecordResponse {
	resp := &dto.InventoryRecordResponse{
		ProductID:   rec.ProductID.String(),
		BranchID:    rec.BranchID.String(),
		Quantity:    rec.Quantity,
		LastUpdated: rec.LastUpdated.Format("2006-01-02T15:04:05Z07:00"),
	}
	if rec.Product != nil {
		resp.ProductName = rec.Product.Name
		resp.Barcode = rec.Product.Barcode
	}
	if rec.Branch != nil {
		resp.BranchName = rec.Branch.Name
	}
	return resp
}
