package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReportSales(t *testing.T) (*stubSaleRepo, uuid.UUID, uuid.UUID) {
	t.Helper()
	repo := &stubSaleRepo{}

	arroz := uuid.New()
	leche := uuid.New()
	cash := &model.PaymentMethod{ID: uuid.New(), Name: "Efectivo", Active: true}
	card := &model.PaymentMethod{ID: uuid.New(), Name: "Tarjeta", Active: true}
	when := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(context.Background(), nil, &model.Sale{
		InvoiceNumber: "001-2026-081510000001",
		BranchID:      uuid.New(),
		UserID:        uuid.New(),
		SaleDate:      when,
		Subtotal:      dec("102.00"),
		Discount:      dec("2.00"),
		Total:         dec("100.00"),
		Status:        model.SaleStatusCompleted,
		PaymentMethod: cash,
		Details: []model.SaleDetail{{
			ProductID: arroz,
			Quantity:  dec("4.000"),
			UnitPrice: dec("25.50"),
			TotalLine: dec("102.00"),
			Product:   &model.Product{ID: arroz, Name: "Arroz 1kg"},
		}},
	}))
	require.NoError(t, repo.Create(context.Background(), nil, &model.Sale{
		InvoiceNumber: "001-2026-081511000002",
		BranchID:      uuid.New(),
		UserID:        uuid.New(),
		SaleDate:      when.Add(time.Hour),
		Subtotal:      dec("45.00"),
		Discount:      decimal.Zero,
		Total:         dec("45.00"),
		Status:        model.SaleStatusCompleted,
		PaymentMethod: card,
		Details: []model.SaleDetail{
			{
				ProductID: leche,
				Quantity:  dec("4.000"),
				UnitPrice: dec("7.50"),
				TotalLine: dec("30.00"),
				Product:   &model.Product{ID: leche, Name: "Leche 1lt"},
			},
			{
				ProductID: arroz,
				Quantity:  dec("1.000"),
				UnitPrice: dec("15.00"),
				TotalLine: dec("15.00"),
				Product:   &model.Product{ID: arroz, Name: "Arroz 1kg"},
			},
		},
	}))
	return repo, arroz, leche
}

func TestSalesSummaryAggregates(t *testing.T) {
	repo, arroz, _ := seedReportSales(t)
	svc := NewReportService(repo, newStubInventory())

	resp, err := svc.SalesSummary(context.Background(), dto.SalesReportFilter{
		From: "2026-08-01", To: "2026-08-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.SaleCount)
	assert.True(t, resp.TotalAmount.Equal(dec("145.00")), "total = %s", resp.TotalAmount)
	assert.True(t, resp.TotalDiscount.Equal(dec("2.00")))
	assert.True(t, resp.ByPaymentMethod["Efectivo"].Equal(dec("100.00")))
	assert.True(t, resp.ByPaymentMethod["Tarjeta"].Equal(dec("45.00")))

	// Products ranked by amount, highest first
	require.Len(t, resp.TopProducts, 2)
	assert.Equal(t, arroz.String(), resp.TopProducts[0].ProductID)
	assert.Equal(t, "Arroz 1kg", resp.TopProducts[0].ProductName)
	assert.True(t, resp.TopProducts[0].Amount.Equal(dec("117.00")), "amount = %s", resp.TopProducts[0].Amount)
	assert.True(t, resp.TopProducts[0].Quantity.Equal(dec("5.000")))
	assert.Equal(t, "Leche 1lt", resp.TopProducts[1].ProductName)
}

func TestSalesSummaryRejectsBadRange(t *testing.T) {
	svc := NewReportService(&stubSaleRepo{}, newStubInventory())

	var inv *apierror.InvalidInputError

	_, err := svc.SalesSummary(context.Background(), dto.SalesReportFilter{From: "gibberish", To: "2026-08-31"})
	require.ErrorAs(t, err, &inv)

	_, err = svc.SalesSummary(context.Background(), dto.SalesReportFilter{From: "2026-08-31", To: "2026-08-01"})
	require.ErrorAs(t, err, &inv)

	_, err = svc.SalesSummary(context.Background(), dto.SalesReportFilter{From: "2026-08-01", To: "2026-08-31", BranchID: "no-uuid"})
	require.ErrorAs(t, err, &inv)
}

func TestSalesCSVOneRowPerLine(t *testing.T) {
	repo, _, _ := seedReportSales(t)
	svc := NewReportService(repo, newStubInventory())

	out, err := svc.SalesCSV(context.Background(), dto.SalesReportFilter{
		From: "2026-08-01", To: "2026-08-31",
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	// header + three detail lines across the two sales
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "invoice_number,"))
	assert.Contains(t, string(out), "Arroz 1kg")
	assert.Contains(t, string(out), "Leche 1lt")
}

func TestInventoryCSV(t *testing.T) {
	inventory := newStubInventory()
	inventory.set(uuid.New(), uuid.New(), dec("12.000"))
	inventory.set(uuid.New(), uuid.New(), dec("3.500"))
	svc := NewReportService(&stubSaleRepo{}, inventory)

	out, err := svc.InventoryCSV(context.Background(), nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "product,barcode,branch,"))
}

func TestInvoicePDFForExistingSale(t *testing.T) {
	repo, _, _ := seedReportSales(t)
	svc := NewReportService(repo, newStubInventory())

	repo.mu.Lock()
	saleID := repo.sales[0].ID
	repo.mu.Unlock()

	pdf, filename, err := svc.InvoicePDF(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, "001-2026-081510000001.pdf", filename)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"), "payload is not a PDF")
}

func TestInvoicePDFUnknownSale(t *testing.T) {
	svc := NewReportService(&stubSaleRepo{}, newStubInventory())

	_, _, err := svc.InvoicePDF(context.Background(), uuid.New())
	var nf *apierror.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "venta", nf.Entity)
}
