package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/inventory"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, business_id, name, description, category, cost_price, sale_price, COALESCE(sku, ''),
	stock_quantity, low_stock_threshold, is_active, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var productOrderColumns = map[string]string{
	"name":          "name",
	"salePrice":     "sale_price",
	"stockQuantity": "stock_quantity",
	"createdAt":     "created_at",
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Description, &p.Category, &p.CostPrice, &p.SalePrice, &p.SKU,
		&p.StockQuantity, &p.LowStockThreshold, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// mapWriteError traduce SKU duplicado y CHECK de precios a errores de dominio.
func mapWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("sku: %w", domain.ErrDuplicate)
	}
	if isCheckViolation(err) {
		return domain.ErrPriceBelowCost
	}
	return fmt.Errorf("%s product: %w", op, err)
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, business_id, name, description, category, cost_price, sale_price, sku,
			stock_quantity, low_stock_threshold, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.BusinessID, p.Name, p.Description, p.Category, p.CostPrice, p.SalePrice, nullIfEmpty(p.SKU),
		p.StockQuantity, p.LowStockThreshold, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert", err)
	}
	return nil
}

// GetByID obtiene un producto del negocio.
func (r *ProductRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND business_id = $2`, id, businessID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No toca stock_quantity.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products
		SET name = $3, description = $4, category = $5, cost_price = $6, sale_price = $7, sku = $8,
			low_stock_threshold = $9, is_active = $10, updated_at = $11
		WHERE id = $1 AND business_id = $2`,
		p.ID, p.BusinessID, p.Name, p.Description, p.Category, p.CostPrice, p.SalePrice, nullIfEmpty(p.SKU),
		p.LowStockThreshold, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto. Las líneas de transacciones no se tocan.
func (r *ProductRepo) Delete(ctx context.Context, businessID, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List filtra por categoría, estado y texto; ordena por columna permitida y pagina.
func (r *ProductRepo) List(ctx context.Context, businessID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := []string{"business_id = $1"}
	args := []any{businessID}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	col, ok := productOrderColumns[f.SortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if f.Order == "desc" {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s %s, id`, productColumns, cond, col, dir)
	if f.Limit > 0 {
		args = append(args, f.Limit, (f.Page-1)*f.Limit)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Categories categorías distintas del catálogo, ascendentes.
func (r *ProductRepo) Categories(ctx context.Context, businessID string) ([]string, error) {
	return distinctStrings(ctx, r.q,
		`SELECT DISTINCT category FROM products WHERE business_id = $1 AND category <> '' ORDER BY category`, businessID)
}

// ListLowStock productos activos con stock en o bajo el umbral.
func (r *ProductRepo) ListLowStock(ctx context.Context, businessID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE business_id = $1 AND is_active AND stock_quantity <= low_stock_threshold
		ORDER BY stock_quantity ASC, name`, businessID)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	return collectProducts(rows)
}

// Count productos del negocio.
func (r *ProductRepo) Count(ctx context.Context, businessID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE business_id = $1`, businessID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// DecrementStock descuento condicional en una sola sentencia: no hay lectura previa que pueda quedar vieja.
func (r *ProductRepo) DecrementStock(ctx context.Context, businessID, id string, qty int) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock_quantity = stock_quantity - $3, updated_at = now()
		WHERE id = $1 AND business_id = $2 AND stock_quantity >= $3`, id, businessID, qty)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// IncrementStock devuelve unidades al producto, esté activo o no.
func (r *ProductRepo) IncrementStock(ctx context.Context, businessID, id string, qty int) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock_quantity = stock_quantity + $3, updated_at = now()
		WHERE id = $1 AND business_id = $2`, id, businessID, qty)
	if err != nil {
		return false, fmt.Errorf("increment stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// AdjustStock aplica la expresión SQL de la operación y devuelve el producto actualizado.
func (r *ProductRepo) AdjustStock(ctx context.Context, businessID, id string, op inventory.Operation, qty int) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	query := fmt.Sprintf(`
		UPDATE products SET stock_quantity = %s, updated_at = now()
		WHERE id = $1 AND business_id = $2
		RETURNING %s`, inventory.Lookup(op).SetExpr(3), productColumns)
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, businessID, qty))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return p, nil
}

func distinctStrings(ctx context.Context, q Querier, query string, args ...any) ([]string, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("distinct: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("distinct scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
