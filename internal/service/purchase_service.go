package service

import (
	"context"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.PurchaseOrderResponse, error)
	ListOrders(ctx context.Context, filter dto.PurchaseOrderFilter) (*dto.PurchaseOrderListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.PurchaseOrderResponse, error)
}

type purchaseService struct {
	repo      repository.PurchaseOrderRepository
	inventory repository.InventoryRepository
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	branches  repository.BranchRepository
}

func NewPurchaseService(
	repo repository.PurchaseOrderRepository,
	inventory repository.InventoryRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	branches repository.BranchRepository,
) PurchaseService {
	return &purchaseService{
		repo:      repo,
		inventory: inventory,
		products:  products,
		suppliers: suppliers,
		branches:  branches,
	}
}

// allowedTransitions encodes the order lifecycle. APPROVED is one-way: the
// ledger increment it triggers is never reverted by a later transition.
var allowedTransitions = map[string]map[string]bool{
	model.OrderStatusPending: {
		model.OrderStatusApproved:  true,
		model.OrderStatusCancelled: true,
		model.OrderStatusDelivered: true,
	},
	model.OrderStatusApproved: {
		model.OrderStatusCancelled:          true,
		model.OrderStatusDelivered:          true,
		model.OrderStatusPartiallyDelivered: true,
	},
	model.OrderStatusPartiallyDelivered: {
		model.OrderStatusDelivered: true,
		model.OrderStatusCancelled: true,
	},
	// Terminal states allow nothing.
	model.OrderStatusDelivered: {},
	model.OrderStatusCancelled: {},
}

func (s *purchaseService) CreateOrder(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, apierror.InvalidInput("supplier_id invalido: %s", req.SupplierID)
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, apierror.InvalidInput("branch_id invalido: %s", req.BranchID)
	}

	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, apierror.NotFound("proveedor", req.SupplierID)
	}
	if !supplier.Active {
		return nil, apierror.InvalidInput("el proveedor %s esta inactivo", supplier.Name)
	}
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return nil, apierror.NotFound("sucursal", req.BranchID)
	}

	var expected *time.Time
	if req.ExpectedDeliveryDate != nil && *req.ExpectedDeliveryDate != "" {
		t, err := time.Parse("2006-01-02", *req.ExpectedDeliveryDate)
		if err != nil {
			return nil, apierror.InvalidInput("expected_delivery_date invalida: %s", *req.ExpectedDeliveryDate)
		}
		expected = &t
	}

	// Resolve all products in one round trip; reject the whole order if any
	// is missing.
	ids := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.InvalidInput("product_id invalido: %s", item.ProductID)
		}
		if !item.Quantity.IsPositive() {
			return nil, apierror.InvalidInput("cantidad invalida para producto %s", item.ProductID)
		}
		if item.UnitCost.IsNegative() {
			return nil, apierror.InvalidInput("costo unitario invalido para producto %s", item.ProductID)
		}
		if seen[pid] {
			return nil, apierror.InvalidInput("producto duplicado en la orden: %s", item.ProductID)
		}
		seen[pid] = true
		ids = append(ids, pid)
	}
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	var missing []uuid.UUID
	for _, id := range ids {
		if byID[id] == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &apierror.MissingProductsError{IDs: missing}
	}

	total := decimal.Zero
	order := model.PurchaseOrder{
		SupplierID:           supplierID,
		BranchID:             branchID,
		OrderDate:            time.Now().UTC(),
		ExpectedDeliveryDate: expected,
		Status:               model.OrderStatusPending,
		Notes:                req.Notes,
		CreatedBy:            userID,
	}
	for _, item := range req.Items {
		pid, _ := uuid.Parse(item.ProductID)
		quantity := qty(item.Quantity)
		cost := money(item.UnitCost)
		total = total.Add(quantity.Mul(cost))
		order.Items = append(order.Items, model.PurchaseOrderItem{
			ProductID: pid,
			Quantity:  quantity,
			UnitCost:  cost,
		})
	}
	order.TotalAmount = money(total)

	// Creation never touches inventory; only approval does.
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &order)
	})
	if err != nil {
		return nil, err
	}

	resp := orderToResponse(&order)
	resp.SupplierName = supplier.Name
	for i, item := range order.Items {
		if p := byID[item.ProductID]; p != nil {
			resp.Items[i].ProductName = p.Name
		}
	}
	return resp, nil
}

func (s *purchaseService) GetOrder(ctx context.Context, id uuid.UUID) (*dto.PurchaseOrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden de compra", id)
	}
	return orderToResponse(order), nil
}

func (s *purchaseService) ListOrders(ctx context.Context, filter dto.PurchaseOrderFilter) (*dto.PurchaseOrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.PurchaseOrderListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// UpdateStatus re-reads the order under FOR UPDATE, validates the transition
// and, on PENDING→APPROVED, increments the destination branch's ledger for
// every item inside the same transaction. A failed increment rolls back the
// status change too.
func (s *purchaseService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.PurchaseOrderResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return apierror.NotFound("orden de compra", id)
		}

		if order.Status == req.Status {
			// Approval is one-shot: repeating it must fail loudly rather
			// than risk a second ledger increment. Other same-status
			// updates are idempotent no-ops (notes still updatable).
			if order.Status == model.OrderStatusApproved {
				return &apierror.InvalidTransitionError{From: order.Status, To: req.Status}
			}
			if req.Notes == nil {
				return nil
			}
			return s.repo.UpdateStatusTx(tx, id, order.Status, req.Notes)
		}
		if !allowedTransitions[order.Status][req.Status] {
			return &apierror.InvalidTransitionError{From: order.Status, To: req.Status}
		}

		if order.Status == model.OrderStatusPending && req.Status == model.OrderStatusApproved {
			for _, item := range order.Items {
				if err := s.inventory.AdjustTx(tx, item.ProductID, order.BranchID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return s.repo.UpdateStatusTx(tx, id, req.Status, req.Notes)
	})
	if err != nil {
		if repository.IsSerializationFailure(err) {
			return nil, apierror.ErrTransactionConflict
		}
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

func orderToResponse(o *model.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		items = append(items, dto.PurchaseOrderItemResponse{
			ProductID:   it.ProductID.String(),
			ProductName: name,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
		})
	}

	resp := &dto.PurchaseOrderResponse{
		ID:          o.ID.String(),
		SupplierID:  o.SupplierID.String(),
		BranchID:    o.BranchID.String(),
		OrderDate:   o.OrderDate.Format(time.RFC3339),
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		Notes:       o.Notes,
		CreatedBy:   o.CreatedBy.String(),
		Items:       items,
	}
	if o.ExpectedDeliveryDate != nil {
		d := o.ExpectedDeliveryDate.Format("2006-01-02")
		resp.ExpectedDeliveryDate = &d
	}
	if o.Supplier != nil {
		resp.SupplierName = o.Supplier.Name
	}
	return resp
}
