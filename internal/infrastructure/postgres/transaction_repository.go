package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo transacciones y sus líneas (transaction_items) sobre PostgreSQL.
// Con pool, Create/Update deben ir dentro de un TxRunner para que cabecera y líneas sean atómicas.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, business_id, type, category, amount, description, date, payment_method, reference, tags, created_at, updated_at`

var transactionOrderColumns = map[string]string{
	"date":      "date",
	"amount":    "amount",
	"category":  "category",
	"createdAt": "created_at",
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var typ string
	err := row.Scan(&t.ID, &t.BusinessID, &typ, &t.Category, &t.Amount, &t.Description, &t.Date,
		&t.PaymentMethod, &t.Reference, &t.Tags, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Type = entity.TransactionType(typ)
	return &t, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// Create inserta cabecera y líneas.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.BusinessID, string(t.Type), t.Category, t.Amount, t.Description, t.Date,
		t.PaymentMethod, t.Reference, nonNilTags(t.Tags), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return r.insertItems(ctx, t)
}

func (r *TransactionRepo) insertItems(ctx context.Context, t *entity.Transaction) error {
	for i, li := range t.Products {
		_, err := r.q.Exec(ctx, `
			INSERT INTO transaction_items (transaction_id, position, product_id, variant_name, quantity, unit_price, total_price, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			t.ID, i, li.ProductID, li.VariantName, li.Quantity, li.UnitPrice, li.TotalPrice, li.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la transacción con sus líneas y el nombre actual de cada producto.
func (r *TransactionRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Transaction, error) {
	if !validID(id) {
		return nil, nil
	}
	t, err := scanTransaction(r.q.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND business_id = $2`, id, businessID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Transaction{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// loadItems completa Products de cada transacción con una sola consulta.
func (r *TransactionRepo) loadItems(ctx context.Context, list []*entity.Transaction) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Transaction, len(list))
	ids := make([]string, 0, len(list))
	for _, t := range list {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT ti.transaction_id, ti.product_id, COALESCE(p.name, ''), ti.variant_name,
			ti.quantity, ti.unit_price, ti.total_price, ti.unit_cost
		FROM transaction_items ti
		LEFT JOIN products p ON p.id::text = ti.product_id
		WHERE ti.transaction_id = ANY($1::uuid[])
		ORDER BY ti.transaction_id, ti.position`, ids)
	if err != nil {
		return fmt.Errorf("load transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var txID string
		var li entity.LineItem
		if err := rows.Scan(&txID, &li.ProductID, &li.ProductName, &li.VariantName,
			&li.Quantity, &li.UnitPrice, &li.TotalPrice, &li.UnitCost); err != nil {
			return fmt.Errorf("scan transaction item: %w", err)
		}
		if t, ok := byID[txID]; ok {
			t.Products = append(t.Products, li)
		}
	}
	return rows.Err()
}

// Update reemplaza cabecera y líneas.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE transactions
		SET type = $3, category = $4, amount = $5, description = $6, date = $7, payment_method = $8,
			reference = $9, tags = $10, updated_at = $11
		WHERE id = $1 AND business_id = $2`,
		t.ID, t.BusinessID, string(t.Type), t.Category, t.Amount, t.Description, t.Date, t.PaymentMethod,
		t.Reference, nonNilTags(t.Tags), t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update transaction %s: no encontrada", t.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, t.ID); err != nil {
		return fmt.Errorf("replace transaction items: %w", err)
	}
	return r.insertItems(ctx, t)
}

// Delete borra la transacción (las líneas caen por ON DELETE CASCADE).
func (r *TransactionRepo) Delete(ctx context.Context, businessID, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List filtra, ordena y pagina; las líneas se cargan solo para la página devuelta.
func (r *TransactionRepo) List(ctx context.Context, businessID string, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	where := []string{"business_id = $1"}
	args := []any{businessID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.PaymentMethod != "" {
		add("payment_method = $%d", f.PaymentMethod)
	}
	if f.Start != nil {
		add("date >= $%d", *f.Start)
	}
	if f.End != nil {
		add("date < $%d", *f.End)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	col, ok := transactionOrderColumns[f.SortBy]
	if !ok {
		col = "date"
	}
	dir := "DESC"
	if f.Order == "asc" {
		dir = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY %s %s, created_at %s`,
		transactionColumns, cond, col, dir, dir)
	if f.Limit > 0 {
		args = append(args, f.Limit, (f.Page-1)*f.Limit)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	list := []*entity.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Categories categorías usadas, opcionalmente por tipo.
func (r *TransactionRepo) Categories(ctx context.Context, businessID string, txType entity.TransactionType) ([]string, error) {
	return distinctStrings(ctx, r.q, `
		SELECT DISTINCT category FROM transactions
		WHERE business_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY category`, businessID, string(txType))
}
