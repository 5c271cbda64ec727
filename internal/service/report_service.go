package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/infra"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReportService interface {
	SalesSummary(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error)
	// SalesCSV exports one row per sale detail line in the range.
	SalesCSV(ctx context.Context, filter dto.SalesReportFilter) ([]byte, error)
	// InventoryCSV exports the current ledger, optionally for one branch.
	InventoryCSV(ctx context.Context, branchID *uuid.UUID) ([]byte, error)
	// InvoicePDF re-renders the receipt for an existing sale.
	InvoicePDF(ctx context.Context, saleID uuid.UUID) ([]byte, string, error)
}

type reportService struct {
	sales     repository.SaleRepository
	inventory repository.InventoryRepository
}

func NewReportService(sales repository.SaleRepository, inventory repository.InventoryRepository) ReportService {
	return &reportService{sales: sales, inventory: inventory}
}

func (s *reportService) parseRange(filter dto.SalesReportFilter) (time.Time, time.Time, *uuid.UUID, error) {
	from, err := time.Parse("2006-01-02", filter.From)
	if err != nil {
		return time.Time{}, time.Time{}, nil, apierror.InvalidInput("fecha 'from' invalida: %s", filter.From)
	}
	to, err := time.Parse("2006-01-02", filter.To)
	if err != nil {
		return time.Time{}, time.Time{}, nil, apierror.InvalidInput("fecha 'to' invalida: %s", filter.To)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, nil, apierror.InvalidInput("el rango de fechas esta invertido")
	}
	var branchID *uuid.UUID
	if filter.BranchID != "" {
		id, err := uuid.Parse(filter.BranchID)
		if err != nil {
			return time.Time{}, time.Time{}, nil, apierror.InvalidInput("branch_id invalido: %s", filter.BranchID)
		}
		branchID = &id
	}
	// 'to' is inclusive as a day
	return from, to.AddDate(0, 0, 1), branchID, nil
}

func (s *reportService) SalesSummary(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error) {
	from, to, branchID, err := s.parseRange(filter)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListRange(ctx, from, to, branchID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{
		From:            filter.From,
		To:              filter.To,
		BranchID:        filter.BranchID,
		SaleCount:       len(sales),
		TotalAmount:     decimal.Zero,
		TotalDiscount:   decimal.Zero,
		ByPaymentMethod: map[string]decimal.Decimal{},
	}

	type productAgg struct {
		name     string
		quantity decimal.Decimal
		amount   decimal.Decimal
	}
	byProduct := map[uuid.UUID]*productAgg{}

	for i := range sales {
		sale := &sales[i]
		resp.TotalAmount = resp.TotalAmount.Add(sale.Total)
		resp.TotalDiscount = resp.TotalDiscount.Add(sale.Discount)

		method := "desconocido"
		if sale.PaymentMethod != nil {
			method = sale.PaymentMethod.Name
		}
		resp.ByPaymentMethod[method] = resp.ByPaymentMethod[method].Add(sale.Total)

		for _, d := range sale.Details {
			agg := byProduct[d.ProductID]
			if agg == nil {
				agg = &productAgg{quantity: decimal.Zero, amount: decimal.Zero}
				if d.Product != nil {
					agg.name = d.Product.Name
				}
				byProduct[d.ProductID] = agg
			}
			agg.quantity = agg.quantity.Add(d.Quantity)
			agg.amount = agg.amount.Add(d.TotalLine)
		}
	}

	for id, agg := range byProduct {
		resp.TopProducts = append(resp.TopProducts, dto.ProductSalesRow{
			ProductID:   id.String(),
			ProductName: agg.name,
			Quantity:    agg.quantity,
			Amount:      agg.amount,
		})
	}
	sort.Slice(resp.TopProducts, func(i, j int) bool {
		return resp.TopProducts[i].Amount.GreaterThan(resp.TopProducts[j].Amount)
	})
	if len(resp.TopProducts) > 10 {
		resp.TopProducts = resp.TopProducts[:10]
	}
	return resp, nil
}

func (s *reportService) SalesCSV(ctx context.Context, filter dto.SalesReportFilter) ([]byte, error) {
	from, to, branchID, err := s.parseRange(filter)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListRange(ctx, from, to, branchID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"invoice_number", "sale_date", "branch", "payment_method",
		"product", "quantity", "unit_price", "line_discount", "total_line",
	})
	for i := range sales {
		sale := &sales[i]
		branch := sale.BranchID.String()
		if sale.Branch != nil {
			branch = sale.Branch.Name
		}
		method := ""
		if sale.PaymentMethod != nil {
			method = sale.PaymentMethod.Name
		}
		for _, d := range sale.Details {
			product := d.ProductID.String()
			if d.Product != nil {
				product = d.Product.Name
			}
			_ = w.Write([]string{
				sale.InvoiceNumber,
				sale.SaleDate.Format(time.RFC3339),
				branch,
				method,
				product,
				d.Quantity.StringFixed(3),
				d.UnitPrice.StringFixed(2),
				d.Discount.StringFixed(2),
				d.TotalLine.StringFixed(2),
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportService) InventoryCSV(ctx context.Context, branchID *uuid.UUID) ([]byte, error) {
	recs, err := s.inventory.List(ctx, branchID, nil)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"product", "barcode", "branch", "quantity", "min_stock", "last_updated"})
	for _, rec := range recs {
		product, barcode, minStock := rec.ProductID.String(), "", ""
		if rec.Product != nil {
			product = rec.Product.Name
			barcode = rec.Product.Barcode
			minStock = rec.Product.MinStock.StringFixed(3)
		}
		branch := rec.BranchID.String()
		if rec.Branch != nil {
			branch = rec.Branch.Name
		}
		_ = w.Write([]string{
			product, barcode, branch,
			rec.Quantity.StringFixed(3),
			minStock,
			rec.LastUpdated.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportService) InvoicePDF(ctx context.Context, saleID uuid.UUID) ([]byte, string, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, "", apierror.NotFound("venta", saleID)
	}
	pdf, err := infra.BuildInvoicePDF(sale)
	if err != nil {
		return nil, "", err
	}
	return pdf, sale.InvoiceNumber + ".pdf", nil
}
