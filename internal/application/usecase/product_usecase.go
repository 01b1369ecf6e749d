package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var productSortFields = map[string]bool{"name": true, "salePrice": true, "stockQuantity": true, "createdAt": true}

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía inventario.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto validando salePrice >= costPrice.
func (uc *ProductUseCase) Create(ctx context.Context, businessID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now().UTC()
	p := &entity.Product{
		ID:                uuid.New().String(),
		BusinessID:        businessID,
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		Category:          strings.TrimSpace(in.Category),
		CostPrice:         in.CostPrice,
		SalePrice:         in.SalePrice,
		SKU:               strings.TrimSpace(in.SKU),
		StockQuantity:     in.StockQuantity,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.LowStockThreshold != nil {
		p.LowStockThreshold = *in.LowStockThreshold
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

func validateProduct(p *entity.Product) error {
	verr := &domain.ValidationError{}
	if p.Name == "" {
		verr.Add("name", "es requerido", nil)
	}
	if p.Category == "" {
		verr.Add("category", "es requerida", nil)
	}
	if p.StockQuantity < 0 {
		verr.Add("stockQuantity", "debe ser mayor o igual a 0", p.StockQuantity)
	}
	if p.LowStockThreshold < 0 {
		verr.Add("lowStockThreshold", "debe ser mayor o igual a 0", p.LowStockThreshold)
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	return p.CheckPrices()
}

// GetByID obtiene un producto del negocio.
func (uc *ProductUseCase) GetByID(ctx context.Context, businessID, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// Update actualiza los campos enviados. No modifica el stock.
func (uc *ProductUseCase) Update(ctx context.Context, businessID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.CostPrice != nil {
		p.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		p.SalePrice = *in.SalePrice
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.LowStockThreshold != nil {
		p.LowStockThreshold = *in.LowStockThreshold
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// Delete borra el producto. Las líneas de transacciones históricas no se tocan.
func (uc *ProductUseCase) Delete(ctx context.Context, businessID, id string) error {
	ok, err := uc.repo.Delete(ctx, businessID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con filtros, orden y paginación.
func (uc *ProductUseCase) List(ctx context.Context, businessID string, q dto.ProductListQuery) (*dto.Page[dto.ProductResponse], error) {
	q.Normalize()
	f := repository.ProductFilter{
		Category: strings.TrimSpace(q.Category),
		Search:   strings.TrimSpace(q.Search),
		SortBy:   "name",
		Order:    "asc",
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if q.IsActive != "" {
		active, err := strconv.ParseBool(q.IsActive)
		if err != nil {
			return nil, domain.NewValidationError("isActive", "debe ser true o false", q.IsActive)
		}
		f.IsActive = &active
	}
	if q.SortBy != "" {
		if !productSortFields[q.SortBy] {
			return nil, domain.NewValidationError("sortBy", "campo de orden no soportado", q.SortBy)
		}
		f.SortBy = q.SortBy
	}
	if q.Order != "" {
		if q.Order != "asc" && q.Order != "desc" {
			return nil, domain.NewValidationError("order", "debe ser asc o desc", q.Order)
		}
		f.Order = q.Order
	}

	list, total, err := uc.repo.List(ctx, businessID, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &dto.Page[dto.ProductResponse]{
		Items:      dto.ToProductResponses(list),
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Categories categorías de producto del negocio.
func (uc *ProductUseCase) Categories(ctx context.Context, businessID string) ([]string, error) {
	return uc.repo.Categories(ctx, businessID)
}

// LowStock productos activos con stock <= umbral, ascendente por stock.
func (uc *ProductUseCase) LowStock(ctx context.Context, businessID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	return dto.ToProductResponses(list), nil
}
