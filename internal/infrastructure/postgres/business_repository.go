package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository. Settings se guarda como JSONB.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de persistencia para negocios.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

const businessColumns = `id, user_id, name, category, currency, timezone, logo_url, settings, created_at, updated_at`

// Create persiste el negocio. Un segundo negocio para el mismo usuario es ErrDuplicate.
func (r *BusinessRepo) Create(ctx context.Context, b *entity.Business) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO businesses (`+businessColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.UserID, b.Name, b.Category, b.Currency, b.Timezone, b.LogoURL, b.Settings, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.scanOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)
}

// GetByUserID obtiene el negocio del usuario.
func (r *BusinessRepo) GetByUserID(ctx context.Context, userID string) (*entity.Business, error) {
	if !validID(userID) {
		return nil, nil
	}
	return r.scanOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE user_id = $1`, userID)
}

// Update actualiza datos, logo y preferencias.
func (r *BusinessRepo) Update(ctx context.Context, b *entity.Business) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE businesses
		SET name = $2, category = $3, currency = $4, timezone = $5, logo_url = $6, settings = $7, updated_at = $8
		WHERE id = $1`,
		b.ID, b.Name, b.Category, b.Currency, b.Timezone, b.LogoURL, b.Settings, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BusinessRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Business, error) {
	var b entity.Business
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&b.ID, &b.UserID, &b.Name, &b.Category, &b.Currency, &b.Timezone, &b.LogoURL, &b.Settings, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}
