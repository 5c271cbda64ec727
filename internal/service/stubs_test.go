package service

// stubs_test.go — in-memory repository implementations backing the unit
// tests. They honor the same contracts as the GORM versions (absent ledger
// row reads as zero, conditional decrement, DB() returning nil to signal
// no real transaction).

import (
	"context"
	"sync"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type invKey struct {
	product uuid.UUID
	branch  uuid.UUID
}

type stubInventoryRepo struct {
	mu       sync.Mutex
	stock    map[invKey]decimal.Decimal
	belowMin []model.InventoryRecord
}

func newStubInventory() *stubInventoryRepo {
	return &stubInventoryRepo{stock: map[invKey]decimal.Decimal{}}
}

func (r *stubInventoryRepo) set(product, branch uuid.UUID, q decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stock[invKey{product, branch}] = q
}

func (r *stubInventoryRepo) quantity(product, branch uuid.UUID) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stock[invKey{product, branch}]
}

func (r *stubInventoryRepo) GetQuantity(_ context.Context, product, branch uuid.UUID) (decimal.Decimal, error) {
	return r.quantity(product, branch), nil
}

func (r *stubInventoryRepo) Find(_ context.Context, product, branch uuid.UUID) (*model.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.stock[invKey{product, branch}]
	if !ok {
		return nil, apierror.NotFound("registro de inventario", product)
	}
	return &model.InventoryRecord{ProductID: product, BranchID: branch, Quantity: q}, nil
}

func (r *stubInventoryRepo) List(_ context.Context, branchID, productID *uuid.UUID) ([]model.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.InventoryRecord
	for k, q := range r.stock {
		if branchID != nil && k.branch != *branchID {
			continue
		}
		if productID != nil && k.product != *productID {
			continue
		}
		out = append(out, model.InventoryRecord{ProductID: k.product, BranchID: k.branch, Quantity: q})
	}
	return out, nil
}

func (r *stubInventoryRepo) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.InventoryRecord, error) {
	return r.List(ctx, &branchID, nil)
}

func (r *stubInventoryRepo) ListBelowMinStock(_ context.Context) ([]model.InventoryRecord, error) {
	return r.belowMin, nil
}

func (r *stubInventoryRepo) AdjustTx(_ *gorm.DB, product, branch uuid.UUID, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := invKey{product, branch}
	next := r.stock[key].Add(delta)
	if next.IsNegative() {
		return &apierror.InsufficientStockError{
			ProductID: product,
			BranchID:  branch,
			Available: r.stock[key],
			Requested: delta.Neg(),
		}
	}
	r.stock[key] = next
	return nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

type stubSaleRepo struct {
	mu    sync.Mutex
	sales []*model.Sale
	// createErrs is consumed FIFO: each Create pops one (nil = success).
	createErrs []error
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Details {
		if s.Details[i].ID == uuid.Nil {
			s.Details[i].ID = uuid.New()
		}
	}
	copied := *s
	r.sales = append(r.sales, &copied)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) ListRange(_ context.Context, _, _ time.Time, _ *uuid.UUID) ([]model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProducts(products ...*model.Product) *stubProductRepo {
	m := map[uuid.UUID]*model.Product{}
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubProductRepo{products: m}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode && p.Active {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = true
	}
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

func newStubClients(clients ...*model.Client) *stubClientRepo {
	m := map[uuid.UUID]*model.Client{}
	for _, c := range clients {
		m[c.ID] = c
	}
	return &stubClientRepo{clients: m}
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClientRepo) FindByCINIT(_ context.Context, ciNIT string) (*model.Client, error) {
	for _, c := range r.clients {
		if c.CINIT == ciNIT {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClientRepo) List(_ context.Context, _, _ int) ([]model.Client, int64, error) {
	var out []model.Client
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClientRepo) Update(_ context.Context, c *model.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

type stubBranchRepo struct {
	branches map[uuid.UUID]*model.Branch
}

func newStubBranches(branches ...*model.Branch) *stubBranchRepo {
	m := map[uuid.UUID]*model.Branch{}
	for _, b := range branches {
		m[b.ID] = b
	}
	return &stubBranchRepo{branches: m}
}

func (r *stubBranchRepo) Create(_ context.Context, b *model.Branch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.branches[b.ID] = b
	return nil
}

func (r *stubBranchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBranchRepo) List(_ context.Context) ([]model.Branch, error) {
	var out []model.Branch
	for _, b := range r.branches {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBranchRepo) Update(_ context.Context, b *model.Branch) error {
	r.branches[b.ID] = b
	return nil
}

type stubPaymentRepo struct {
	methods map[uuid.UUID]*model.PaymentMethod
}

func newStubPayments(methods ...*model.PaymentMethod) *stubPaymentRepo {
	m := map[uuid.UUID]*model.PaymentMethod{}
	for _, pm := range methods {
		m[pm.ID] = pm
	}
	return &stubPaymentRepo{methods: m}
}

func (r *stubPaymentRepo) Create(_ context.Context, m *model.PaymentMethod) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.methods[m.ID] = m
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PaymentMethod, error) {
	m, ok := r.methods[id]
	if !ok || !m.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubPaymentRepo) List(_ context.Context) ([]model.PaymentMethod, error) {
	var out []model.PaymentMethod
	for _, m := range r.methods {
		if m.Active {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m, ok := r.methods[id]; ok {
		m.Active = false
	}
	return nil
}

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSuppliers(suppliers ...*model.Supplier) *stubSupplierRepo {
	m := map[uuid.UUID]*model.Supplier{}
	for _, s := range suppliers {
		m[s.ID] = s
	}
	return &stubSupplierRepo{suppliers: m}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context, includeInactive bool) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		if includeInactive || s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if s, ok := r.suppliers[id]; ok {
		s.Active = false
	}
	return nil
}

type stubPurchaseRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*model.PurchaseOrder
}

func newStubPurchases() *stubPurchaseRepo {
	return &stubPurchaseRepo{orders: map[uuid.UUID]*model.PurchaseOrder{}}
}

func (r *stubPurchaseRepo) Create(_ context.Context, _ *gorm.DB, o *model.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	copied := *o
	r.orders[o.ID] = &copied
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubPurchaseRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubPurchaseRepo) List(_ context.Context, _ dto.PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PurchaseOrder
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string, notes *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	if notes != nil {
		o.Notes = notes
	}
	return nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }
