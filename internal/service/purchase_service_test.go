package service

import (
	"context"
	"testing"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type purchaseFixture struct {
	svc       PurchaseService
	inventory *stubInventoryRepo
	orders    *stubPurchaseRepo
	supplier  *model.Supplier
	branch    *model.Branch
	product   *model.Product
	userID    uuid.UUID
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()

	supplier := &model.Supplier{ID: uuid.New(), Name: "Distribuidora Sur", Active: true}
	branch := &model.Branch{ID: uuid.New(), Code: 7, Name: "Norte"}
	product := &model.Product{
		ID:      uuid.New(),
		Barcode: "7798888888888",
		Name:    "Azucar 1kg",
		Price:   decimal.RequireFromString("9.50"),
		Active:  true,
	}

	inventory := newStubInventory()
	orders := newStubPurchases()

	svc := NewPurchaseService(
		orders,
		inventory,
		newStubProducts(product),
		newStubSuppliers(supplier),
		newStubBranches(branch),
	)

	return &purchaseFixture{
		svc:       svc,
		inventory: inventory,
		orders:    orders,
		supplier:  supplier,
		branch:    branch,
		product:   product,
		userID:    uuid.New(),
	}
}

func (f *purchaseFixture) createOrder(t *testing.T, quantity string) *dto.PurchaseOrderResponse {
	t.Helper()
	resp, err := f.svc.CreateOrder(context.Background(), f.userID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseOrderItemRequest{{
			ProductID: f.product.ID.String(),
			Quantity:  dec(quantity),
			UnitCost:  dec("6.00"),
		}},
	})
	require.NoError(t, err)
	return resp
}

func (f *purchaseFixture) setStatus(t *testing.T, id string, status string) (*dto.PurchaseOrderResponse, error) {
	t.Helper()
	oid, err := uuid.Parse(id)
	require.NoError(t, err)
	return f.svc.UpdateStatus(context.Background(), oid, dto.UpdateOrderStatusRequest{Status: status})
}

func TestCreateOrderStartsPendingWithoutInventoryEffect(t *testing.T) {
	f := newPurchaseFixture(t)

	resp := f.createOrder(t, "20.000")

	assert.Equal(t, model.OrderStatusPending, resp.Status)
	assert.True(t, dec("120.00").Equal(resp.TotalAmount))
	assert.True(t, f.inventory.quantity(f.product.ID, f.branch.ID).IsZero(),
		"crear la orden no debe tocar el inventario")
}

func TestCreateOrderRejectsMissingProductsAsSet(t *testing.T) {
	f := newPurchaseFixture(t)
	ghost1, ghost2 := uuid.New(), uuid.New()

	_, err := f.svc.CreateOrder(context.Background(), f.userID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: f.product.ID.String(), Quantity: dec("1.000"), UnitCost: dec("6.00")},
			{ProductID: ghost1.String(), Quantity: dec("1.000"), UnitCost: dec("6.00")},
			{ProductID: ghost2.String(), Quantity: dec("1.000"), UnitCost: dec("6.00")},
		},
	})

	var missing *apierror.MissingProductsError
	require.ErrorAs(t, err, &missing)
	assert.Len(t, missing.IDs, 2)
}

func TestCreateOrderRejectsDuplicateProduct(t *testing.T) {
	f := newPurchaseFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), f.userID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: f.product.ID.String(), Quantity: dec("1.000"), UnitCost: dec("6.00")},
			{ProductID: f.product.ID.String(), Quantity: dec("2.000"), UnitCost: dec("6.00")},
		},
	})
	var ii *apierror.InvalidInputError
	require.ErrorAs(t, err, &ii)
}

func TestCreateOrderInactiveSupplier(t *testing.T) {
	f := newPurchaseFixture(t)
	f.supplier.Active = false

	_, err := f.svc.CreateOrder(context.Background(), f.userID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseOrderItemRequest{{
			ProductID: f.product.ID.String(), Quantity: dec("1.000"), UnitCost: dec("6.00"),
		}},
	})
	var ii *apierror.InvalidInputError
	require.ErrorAs(t, err, &ii)
}

func TestApproveIncrementsLedger(t *testing.T) {
	f := newPurchaseFixture(t)
	f.inventory.set(f.product.ID, f.branch.ID, dec("5.000"))
	order := f.createOrder(t, "20.000")

	resp, err := f.setStatus(t, order.ID, model.OrderStatusApproved)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusApproved, resp.Status)
	assert.True(t, dec("25.000").Equal(f.inventory.quantity(f.product.ID, f.branch.ID)))
}

func TestApproveCreatesLedgerRowWhenAbsent(t *testing.T) {
	f := newPurchaseFixture(t)
	order := f.createOrder(t, "12.500")

	_, err := f.setStatus(t, order.ID, model.OrderStatusApproved)
	require.NoError(t, err)

	assert.True(t, dec("12.500").Equal(f.inventory.quantity(f.product.ID, f.branch.ID)))
}

func TestReApproveIsRejectedWithoutDoubleIncrement(t *testing.T) {
	f := newPurchaseFixture(t)
	order := f.createOrder(t, "20.000")

	_, err := f.setStatus(t, order.ID, model.OrderStatusApproved)
	require.NoError(t, err)

	// Approval happens exactly once: the repeat fails and the ledger holds.
	_, err = f.setStatus(t, order.ID, model.OrderStatusApproved)
	var it *apierror.InvalidTransitionError
	require.ErrorAs(t, err, &it)
	assert.True(t, dec("20.000").Equal(f.inventory.quantity(f.product.ID, f.branch.ID)))
}

func TestInvalidTransitions(t *testing.T) {
	f := newPurchaseFixture(t)

	cases := []struct {
		name string
		via  []string
		to   string
	}{
		{"delivered_to_pending", []string{model.OrderStatusDelivered}, model.OrderStatusPending},
		{"cancelled_to_approved", []string{model.OrderStatusCancelled}, model.OrderStatusApproved},
		{"pending_to_partially_delivered", nil, model.OrderStatusPartiallyDelivered},
		{"delivered_to_cancelled", []string{model.OrderStatusApproved, model.OrderStatusDelivered}, model.OrderStatusCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := f.createOrder(t, "1.000")
			for _, status := range tc.via {
				_, err := f.setStatus(t, order.ID, status)
				require.NoError(t, err)
			}
			_, err := f.setStatus(t, order.ID, tc.to)
			var it *apierror.InvalidTransitionError
			require.ErrorAs(t, err, &it)
		})
	}
}

func TestApprovedTransitionsToPartiallyDeliveredThenDelivered(t *testing.T) {
	f := newPurchaseFixture(t)
	order := f.createOrder(t, "10.000")

	_, err := f.setStatus(t, order.ID, model.OrderStatusApproved)
	require.NoError(t, err)
	_, err = f.setStatus(t, order.ID, model.OrderStatusPartiallyDelivered)
	require.NoError(t, err)
	resp, err := f.setStatus(t, order.ID, model.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, resp.Status)
}

func TestCancelPendingOrderSkipsLedger(t *testing.T) {
	f := newPurchaseFixture(t)
	order := f.createOrder(t, "10.000")

	resp, err := f.setStatus(t, order.ID, model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, resp.Status)
	assert.True(t, f.inventory.quantity(f.product.ID, f.branch.ID).IsZero())
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newPurchaseFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), uuid.New(), dto.UpdateOrderStatusRequest{
		Status: model.OrderStatusApproved,
	})
	var nf *apierror.NotFoundError
	require.ErrorAs(t, err, &nf)
}
