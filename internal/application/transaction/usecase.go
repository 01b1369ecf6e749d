package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/ports"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var sortFields = map[string]bool{"date": true, "amount": true, "category": true, "createdAt": true}

// UseCase registro de transacciones con conciliación de stock.
// Las escrituras corren dentro de txRunner: stock y transacción se confirman juntos.
type UseCase struct {
	txRunner ports.TxRunner
	repo     repository.TransactionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repo repository.TransactionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo}
}

// fromRequest construye y valida la entidad a partir del request.
func fromRequest(businessID string, in dto.TransactionRequest) (*entity.Transaction, error) {
	t := &entity.Transaction{
		BusinessID:    businessID,
		Type:          entity.TransactionType(strings.TrimSpace(in.Type)),
		Category:      in.Category,
		Amount:        in.Amount,
		Description:   strings.TrimSpace(in.Description),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Reference:     strings.TrimSpace(in.Reference),
		Tags:          in.Tags,
	}
	if in.Date != "" {
		d, _, err := dto.ParseDate(in.Date)
		if err != nil {
			return nil, domain.NewValidationError("date", "formato inválido (YYYY-MM-DD o RFC3339)", in.Date)
		}
		t.Date = d
	}
	for _, li := range in.Products {
		t.Products = append(t.Products, entity.LineItem{
			ProductID:   strings.TrimSpace(li.ProductID),
			VariantName: strings.TrimSpace(li.VariantName),
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}
	if err := t.Normalize(); err != nil {
		return nil, err
	}
	if err := behaviorFor(t.Type).validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Create valida, reserva stock (ingresos) y persiste en la misma unidad de trabajo.
func (uc *UseCase) Create(ctx context.Context, businessID string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	t, err := fromRequest(businessID, in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t.ID = uuid.New().String()
	t.CreatedAt = now
	t.UpdatedAt = now

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		if err := behaviorFor(t.Type).reserve(ctx, repos.Products, businessID, t.Products); err != nil {
			return err
		}
		if err := repos.Transactions.Create(ctx, t); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, businessID, t.ID)
}

// Update reemplaza la transacción. Devuelve al stock las líneas anteriores y reserva las nuevas.
func (uc *UseCase) Update(ctx context.Context, businessID, id string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	t, err := fromRequest(businessID, in)
	if err != nil {
		return nil, err
	}
	t.ID = id
	t.UpdatedAt = time.Now().UTC()

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		old, err := repos.Transactions.GetByID(ctx, businessID, id)
		if err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if err := behaviorFor(old.Type).restore(ctx, repos.Products, businessID, old.Products); err != nil {
			return err
		}
		if err := behaviorFor(t.Type).reserve(ctx, repos.Products, businessID, t.Products); err != nil {
			return err
		}
		t.CreatedAt = old.CreatedAt
		if err := repos.Transactions.Update(ctx, t); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, businessID, id)
}

// Delete borra la transacción y, si es ingreso, devuelve las cantidades al stock.
func (uc *UseCase) Delete(ctx context.Context, businessID, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		t, err := repos.Transactions.GetByID(ctx, businessID, id)
		if err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if err := behaviorFor(t.Type).restore(ctx, repos.Products, businessID, t.Products); err != nil {
			return err
		}
		if _, err := repos.Transactions.Delete(ctx, businessID, id); err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		return nil
	})
}

// Get obtiene una transacción del negocio con nombres de producto resueltos.
func (uc *UseCase) Get(ctx context.Context, businessID, id string) (*dto.TransactionResponse, error) {
	t, err := uc.repo.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToTransactionResponse(t)
	return &out, nil
}

// List filtra, ordena (por defecto fecha descendente) y pagina.
func (uc *UseCase) List(ctx context.Context, businessID string, q dto.TransactionListQuery) (*dto.Page[dto.TransactionResponse], error) {
	q.Normalize()
	verr := &domain.ValidationError{}
	f := repository.TransactionFilter{
		Category:      strings.TrimSpace(q.Category),
		PaymentMethod: q.PaymentMethod,
		SortBy:        "date",
		Order:         "desc",
		Page:          q.Page,
		Limit:         q.Limit,
	}
	if q.Type != "" {
		if !entity.TransactionType(q.Type).Valid() {
			verr.Add("type", "debe ser income, expense o withdrawal", q.Type)
		}
		f.Type = q.Type
	}
	if q.PaymentMethod != "" && !entity.PaymentMethods[q.PaymentMethod] {
		verr.Add("paymentMethod", "método de pago inválido", q.PaymentMethod)
	}
	if q.SortBy != "" {
		if !sortFields[q.SortBy] {
			verr.Add("sortBy", "campo de orden no soportado", q.SortBy)
		}
		f.SortBy = q.SortBy
	}
	if q.Order != "" {
		if q.Order != "asc" && q.Order != "desc" {
			verr.Add("order", "debe ser asc o desc", q.Order)
		}
		f.Order = q.Order
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	dr, err := dto.DateRangeQuery{StartDate: q.StartDate, EndDate: q.EndDate}.Parse()
	if err != nil {
		return nil, err
	}
	f.Start, f.End = dr.Start, dr.End

	list, total, err := uc.repo.List(ctx, businessID, f)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.ToTransactionResponse(t))
	}
	return &dto.Page[dto.TransactionResponse]{Items: items, Pagination: dto.NewPagination(q.Page, q.Limit, total)}, nil
}

// Categories categorías usadas, opcionalmente por tipo.
func (uc *UseCase) Categories(ctx context.Context, businessID, txType string) ([]string, error) {
	if txType != "" && !entity.TransactionType(txType).Valid() {
		return nil, domain.NewValidationError("type", "debe ser income, expense o withdrawal", txType)
	}
	return uc.repo.Categories(ctx, businessID, entity.TransactionType(txType))
}
