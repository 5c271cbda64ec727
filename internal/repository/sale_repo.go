package repository

import (
	"context"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// Create persists the sale header and its details inside the caller's tx.
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	// FindByID returns the sale fully hydrated: client, branch, payment
	// method and each detail's product.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	// ListRange feeds reports: all completed sales in [from, to), optionally
	// restricted to one branch, unpaginated.
	ListRange(ctx context.Context, from, to time.Time, branchID *uuid.UUID) ([]model.Sale, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Branch").
		Preload("PaymentMethod").
		Preload("Details.Product").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(sale_date) = ?", filter.Date)
	}
	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Client").
		Preload("Branch").
		Preload("PaymentMethod").
		Preload("Details.Product").
		Order("sale_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepo) ListRange(ctx context.Context, from, to time.Time, branchID *uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.WithContext(ctx).
		Where("status = ?", model.SaleStatusCompleted).
		Where("sale_date >= ? AND sale_date < ?", from, to)
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	err := q.Preload("Branch").
		Preload("PaymentMethod").
		Preload("Details.Product").
		Order("sale_date ASC").
		Find(&sales).Error
	return sales, err
}
