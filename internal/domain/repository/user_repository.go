package repository

import (
	"context"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// BusinessRepository define el puerto de persistencia para Business. Un negocio por usuario.
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
}
