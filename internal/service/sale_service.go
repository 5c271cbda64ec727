package service

import (
	"context"
	"errors"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"
	"github.com/leaox77/Inventory-System-Backend/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	inventory  repository.InventoryRepository
	products   repository.ProductRepository
	clients    repository.ClientRepository
	branches   repository.BranchRepository
	payments   repository.PaymentMethodRepository
	dispatcher *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	inventory repository.InventoryRepository,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	branches repository.BranchRepository,
	payments repository.PaymentMethodRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:       repo,
		inventory:  inventory,
		products:   products,
		clients:    clients,
		branches:   branches,
		payments:   payments,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// money and qty normalize fixed-point scale: 2 decimals for currency,
// 3 for quantities. All arithmetic stays in decimal — never float.
func money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
func qty(d decimal.Decimal) decimal.Decimal   { return d.Round(3) }

// ── CreateSale ────────────────────────────────────────────────────────────────
// One ACID unit:
//   1. Resolve references (client if given, payment method, branch, products)
//   2. Pre-flight stock check per line at the sale's branch
//   3. Compute line totals / subtotal / total in fixed-point decimal
//   4. BEGIN TX: insert header + details, decrement the ledger per line
//   5. COMMIT — or roll back everything on the first failure
//   6. (async) dispatch receipt job
//
// The pre-flight check in step 2 gives a user-actionable error without
// touching the DB for writes; the conditional decrement inside the tx is the
// authoritative guard against concurrent exhaustion.

func (s *saleService) CreateSale(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, apierror.InvalidInput("branch_id invalido: %s", req.BranchID)
	}
	branch, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		return nil, apierror.NotFound("sucursal", req.BranchID)
	}

	// 1. Optional client
	var clientID *uuid.UUID
	if req.ClientID != nil {
		cid, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, apierror.InvalidInput("client_id invalido: %s", *req.ClientID)
		}
		if _, err := s.clients.FindByID(ctx, cid); err != nil {
			return nil, apierror.NotFound("cliente", *req.ClientID)
		}
		clientID = &cid
	}

	// 2. Payment method must resolve
	pmID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		return nil, apierror.InvalidInput("payment_method_id invalido: %s", req.PaymentMethodID)
	}
	if _, err := s.payments.FindByID(ctx, pmID); err != nil {
		return nil, apierror.NotFound("metodo de pago", req.PaymentMethodID)
	}

	if req.Discount.IsNegative() {
		return nil, apierror.InvalidInput("el descuento no puede ser negativo")
	}

	// 3. Resolve products, validate lines, pre-flight stock check
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		quantity  decimal.Decimal
		unitPrice decimal.Decimal
		discount  decimal.Decimal
		totalLine decimal.Decimal
	}

	resolved := make([]resolvedItem, 0, len(req.Items))
	subtotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.InvalidInput("product_id invalido: %s", item.ProductID)
		}
		if !item.Quantity.IsPositive() {
			return nil, apierror.InvalidInput("cantidad invalida para producto %s", item.ProductID)
		}
		if !item.UnitPrice.IsPositive() {
			return nil, apierror.InvalidInput("precio unitario invalido para producto %s", item.ProductID)
		}
		if item.Discount.IsNegative() {
			return nil, apierror.InvalidInput("descuento de linea invalido para producto %s", item.ProductID)
		}

		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("producto", item.ProductID)
		}
		if !p.Active {
			return nil, apierror.InvalidInput("el producto %s esta inactivo y no puede venderse", p.Name)
		}

		quantity := qty(item.Quantity)
		available, err := s.inventory.GetQuantity(ctx, pid, branchID)
		if err != nil {
			return nil, err
		}
		if available.LessThan(quantity) {
			return nil, &apierror.InsufficientStockError{
				ProductID:   pid,
				ProductName: p.Name,
				BranchID:    branchID,
				Available:   available,
				Requested:   quantity,
			}
		}

		unitPrice := money(item.UnitPrice)
		lineBase := money(quantity.Mul(unitPrice))
		lineDiscount := money(item.Discount)
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			quantity:  quantity,
			unitPrice: unitPrice,
			discount:  lineDiscount,
			totalLine: lineBase.Sub(lineDiscount),
		})
		// Subtotal sums line totals BEFORE discounts; the sale-level
		// discount is applied once at the bottom.
		subtotal = subtotal.Add(lineBase)
	}

	discount := money(req.Discount)
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return nil, apierror.InvalidInput("el descuento excede el subtotal")
	}

	// 4. ACID transaction, with one invoice-number regeneration on collision
	var sale model.Sale
	for attempt := 0; ; attempt++ {
		now := time.Now().UTC()
		sale = model.Sale{
			InvoiceNumber:   generateInvoiceNumber(branch.Code, now, attempt),
			ClientID:        clientID,
			UserID:          userID,
			BranchID:        branchID,
			PaymentMethodID: pmID,
			SaleDate:        now,
			Subtotal:        subtotal,
			Discount:        discount,
			Total:           total,
			Status:          model.SaleStatusCompleted,
		}
		for _, r := range resolved {
			sale.Details = append(sale.Details, model.SaleDetail{
				ProductID: r.productID,
				Quantity:  r.quantity,
				UnitPrice: r.unitPrice,
				Discount:  r.discount,
				TotalLine: r.totalLine,
			})
		}

		txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if err := s.repo.Create(ctx, tx, &sale); err != nil {
				return err
			}
			for _, r := range resolved {
				if err := s.inventory.AdjustTx(tx, r.productID, branchID, r.quantity.Neg()); err != nil {
					// Re-attach the product name lost at the repository layer.
					var stockErr *apierror.InsufficientStockError
					if errors.As(err, &stockErr) {
						stockErr.ProductName = r.name
					}
					return err
				}
			}
			return nil
		})
		if txErr == nil {
			break
		}
		if repository.IsUniqueViolation(txErr, "invoice_number") {
			if attempt == 0 {
				continue // regenerate and retry once
			}
			return nil, apierror.ErrTransactionConflict
		}
		if repository.IsSerializationFailure(txErr) {
			return nil, apierror.ErrTransactionConflict
		}
		return nil, txErr
	}

	// 5. Async receipt — best effort, never fails the sale
	if s.dispatcher != nil {
		payload := worker.ReceiptJobPayload{SaleID: sale.ID.String()}
		if req.ClientEmail != nil && *req.ClientEmail != "" {
			payload.ClientEmail = *req.ClientEmail
		}
		_ = s.dispatcher.EnqueueReceipt(ctx, payload)
	}

	resp := saleToResponse(&sale)
	resp.BranchName = branch.Name
	for i, r := range resolved {
		resp.Details[i].ProductName = r.name
	}
	return resp, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("venta", id)
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = model.SaleStatusCompleted
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	details := make([]dto.SaleDetailResponse, 0, len(s.Details))
	for _, d := range s.Details {
		name := ""
		if d.Product != nil {
			name = d.Product.Name
		}
		details = append(details, dto.SaleDetailResponse{
			ProductID:   d.ProductID.String(),
			ProductName: name,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Discount:    d.Discount,
			TotalLine:   d.TotalLine,
		})
	}

	resp := &dto.SaleResponse{
		ID:            s.ID.String(),
		InvoiceNumber: s.InvoiceNumber,
		BranchID:      s.BranchID.String(),
		UserID:        s.UserID.String(),
		SaleDate:      s.SaleDate.Format(time.RFC3339),
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		Status:        s.Status,
		Details:       details,
	}
	if s.ClientID != nil {
		cid := s.ClientID.String()
		resp.ClientID = &cid
	}
	if s.Client != nil {
		resp.ClientName = s.Client.FullName
	}
	if s.Branch != nil {
		resp.BranchName = s.Branch.Name
	}
	if s.PaymentMethod != nil {
		resp.PaymentMethod = s.PaymentMethod.Name
	}
	return resp
}
