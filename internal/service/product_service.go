package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/model"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const priceCheckTTL = 5 * time.Minute

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	// PriceCheck serves the in-store price scanner: barcode in, name/price/stock
	// out, cached in Redis for a short TTL.
	PriceCheck(ctx context.Context, barcode string, branchID *uuid.UUID) (*dto.PriceCheckResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	inventory repository.InventoryRepository
	rdb       *redis.Client
}

func NewProductService(repo repository.ProductRepository, inventory repository.InventoryRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, inventory: inventory, rdb: rdb}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !req.Price.IsPositive() {
		return nil, apierror.InvalidInput("el precio debe ser mayor a cero")
	}
	if req.Cost.IsNegative() {
		return nil, apierror.InvalidInput("el costo no puede ser negativo")
	}

	p := model.Product{
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		Price:       money(req.Price),
		Cost:        money(req.Cost),
		Active:      true,
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.InvalidInput("category_id invalido: %s", *req.CategoryID)
		}
		p.CategoryID = &id
	}
	if req.UnitTypeID != nil {
		id, err := uuid.Parse(*req.UnitTypeID)
		if err != nil {
			return nil, apierror.InvalidInput("unit_type_id invalido: %s", *req.UnitTypeID)
		}
		p.UnitTypeID = &id
	}
	if req.MinStock != nil {
		if req.MinStock.IsNegative() {
			return nil, apierror.InvalidInput("min_stock no puede ser negativo")
		}
		p.MinStock = qty(*req.MinStock)
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		if repository.IsUniqueViolation(err, "barcode") {
			return nil, apierror.InvalidInput("ya existe un producto con el codigo de barras %s", req.Barcode)
		}
		return nil, err
	}
	return productToResponse(&p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto", id)
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto", id)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.InvalidInput("category_id invalido: %s", *req.CategoryID)
		}
		p.CategoryID = &cid
	}
	if req.UnitTypeID != nil {
		uid, err := uuid.Parse(*req.UnitTypeID)
		if err != nil {
			return nil, apierror.InvalidInput("unit_type_id invalido: %s", *req.UnitTypeID)
		}
		p.UnitTypeID = &uid
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, apierror.InvalidInput("el precio debe ser mayor a cero")
		}
		p.Price = money(*req.Price)
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, apierror.InvalidInput("el costo no puede ser negativo")
		}
		p.Cost = money(*req.Cost)
	}
	if req.MinStock != nil {
		if req.MinStock.IsNegative() {
			return nil, apierror.InvalidInput("min_stock no puede ser negativo")
		}
		p.MinStock = qty(*req.MinStock)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidatePriceCache(ctx, p.Barcode)
	return productToResponse(p), nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("producto", id)
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidatePriceCache(ctx, p.Barcode)
	return nil
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("producto", id)
	}
	return s.repo.Reactivate(ctx, id)
}

func (s *productService) PriceCheck(ctx context.Context, barcode string, branchID *uuid.UUID) (*dto.PriceCheckResponse, error) {
	key := priceCheckKey(barcode, branchID)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached dto.PriceCheckResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("cache de precios no disponible")
		}
	}

	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, apierror.NotFound("producto", barcode)
	}

	stock := decimal.Zero
	if branchID != nil {
		stock, err = s.inventory.GetQuantity(ctx, p.ID, *branchID)
		if err != nil {
			return nil, err
		}
	} else {
		recs, err := s.inventory.List(ctx, nil, &p.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			stock = stock.Add(rec.Quantity)
		}
	}

	resp := &dto.PriceCheckResponse{
		Name:  p.Name,
		Price: p.Price,
		Stock: stock,
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, key, raw, priceCheckTTL)
		}
	}
	return resp, nil
}

func priceCheckKey(barcode string, branchID *uuid.UUID) string {
	if branchID != nil {
		return "pricecheck:" + barcode + ":" + branchID.String()
	}
	return "pricecheck:" + barcode
}

// invalidatePriceCache drops the branch-agnostic entry; per-branch entries
// expire on their own TTL.
func (s *productService) invalidatePriceCache(ctx context.Context, barcode string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, "pricecheck:"+barcode).Err(); err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Msg("no se pudo invalidar cache de precios")
	}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID.String(),
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		MinStock:    p.MinStock,
		Active:      p.Active,
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}
	if p.UnitType != nil {
		resp.UnitType = p.UnitType.Name
	}
	return resp
}
