package repository

import (
	"context"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository is the Inventory Ledger: one quantity record per
// (product, branch) pair.
//
// Concurrency contract: AdjustTx never does a read-check-write. Negative
// deltas are applied with a single conditional UPDATE whose WHERE clause
// re-checks `quantity + delta >= 0` at the row, so two concurrent sales
// against the last unit cannot both pass a stock check on stale data —
// the loser sees zero rows affected and gets InsufficientStock.
type InventoryRepository interface {
	GetQuantity(ctx context.Context, productID, branchID uuid.UUID) (decimal.Decimal, error)
	Find(ctx context.Context, productID, branchID uuid.UUID) (*model.InventoryRecord, error)
	List(ctx context.Context, branchID, productID *uuid.UUID) ([]model.InventoryRecord, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.InventoryRecord, error)
	// ListBelowMinStock returns ledger rows whose quantity undercuts the
	// product's min_stock threshold, hydrated with product and branch.
	ListBelowMinStock(ctx context.Context) ([]model.InventoryRecord, error)

	// AdjustTx applies delta inside the caller's transaction. A missing row
	// counts as quantity 0: positive deltas upsert, negative deltas fail.
	AdjustTx(tx *gorm.DB, productID, branchID uuid.UUID, delta decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) DB() *gorm.DB { return r.db }

// GetQuantity returns 0 when no record exists — absence means zero stock,
// not an error.
func (r *inventoryRepo) GetQuantity(ctx context.Context, productID, branchID uuid.UUID) (decimal.Decimal, error) {
	var rec model.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return rec.Quantity, nil
}

func (r *inventoryRepo) Find(ctx context.Context, productID, branchID uuid.UUID) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Branch").
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apierror.NotFound("registro de inventario", productID)
	}
	return &rec, err
}

func (r *inventoryRepo) List(ctx context.Context, branchID, productID *uuid.UUID) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	q := r.db.WithContext(ctx).Preload("Product").Preload("Branch")
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	err := q.Find(&recs).Error
	return recs, err
}

func (r *inventoryRepo) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Branch").
		Where("branch_id = ?", branchID).
		Find(&recs).Error
	return recs, err
}

func (r *inventoryRepo) ListBelowMinStock(ctx context.Context) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Branch").
		Joins("JOIN products ON products.id = inventory.product_id AND products.active = true").
		Where("inventory.quantity < products.min_stock").
		Find(&recs).Error
	return recs, err
}

func (r *inventoryRepo) AdjustTx(tx *gorm.DB, productID, branchID uuid.UUID, delta decimal.Decimal) error {
	now := time.Now().UTC()

	if delta.IsNegative() {
		res := tx.Model(&model.InventoryRecord{}).
			Where("product_id = ? AND branch_id = ? AND quantity + ? >= 0", productID, branchID, delta).
			Updates(map[string]interface{}{
				"quantity":     gorm.Expr("quantity + ?", delta),
				"last_updated": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the row does not exist (quantity 0) or the decrement
			// would go negative — both are insufficient stock.
			return &apierror.InsufficientStockError{
				ProductID: productID,
				BranchID:  branchID,
				Requested: delta.Neg(),
			}
		}
		return nil
	}

	rec := model.InventoryRecord{
		ProductID:   productID,
		BranchID:    branchID,
		Quantity:    delta,
		LastUpdated: now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "branch_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":     gorm.Expr("inventory.quantity + ?", delta),
			"last_updated": now,
		}),
	}).Create(&rec).Error
}
