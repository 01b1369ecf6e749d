package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
)

// RegisterRequest entrada de registro: usuario + negocio. Acepta JSON o multipart (con logo).
type RegisterRequest struct {
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	BusinessName string `json:"businessName" form:"businessName"`
	Category     string `json:"category" form:"category"`
	Currency     string `json:"currency" form:"currency"`
	Timezone     string `json:"timezone" form:"timezone"`
}

// FileUpload archivo recibido por multipart, ya abierto.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SettingsPatch actualización parcial de BusinessSettings.
type SettingsPatch struct {
	LowStockAlert     *bool            `json:"lowStockAlert"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
	DefaultTaxRate    *decimal.Decimal `json:"defaultTaxRate"`
	FiscalYearStart   *int             `json:"fiscalYearStart"`
	Language          *string          `json:"language"`
	Theme             *string          `json:"theme"`
}

// UpdateProfileRequest actualización del negocio desde el perfil.
type UpdateProfileRequest struct {
	Name     *string        `json:"name" form:"name"`
	Category *string        `json:"category" form:"category"`
	Currency *string        `json:"currency" form:"currency"`
	Timezone *string        `json:"timezone" form:"timezone"`
	Settings *SettingsPatch `json:"settings" form:"-"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BusinessResponse salida de un negocio.
type BusinessResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Name      string                  `json:"name"`
	Category  string                  `json:"category"`
	Currency  string                  `json:"currency"`
	Timezone  string                  `json:"timezone"`
	LogoURL   string                  `json:"logoUrl,omitempty"`
	Settings  entity.BusinessSettings `json:"settings"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// AuthResponse token más usuario y negocio.
type AuthResponse struct {
	Token    string           `json:"token"`
	User     UserResponse     `json:"user"`
	Business BusinessResponse `json:"business"`
}

// ProfileResponse usuario y negocio del principal autenticado.
type ProfileResponse struct {
	User     UserResponse     `json:"user"`
	Business BusinessResponse `json:"business"`
}

// TokenResponse token renovado.
type TokenResponse struct {
	Token string `json:"token"`
}

// ToUserResponse mapea la entidad.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

// ToBusinessResponse mapea la entidad.
func ToBusinessResponse(b *entity.Business) BusinessResponse {
	return BusinessResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		Category:  b.Category,
		Currency:  b.Currency,
		Timezone:  b.Timezone,
		LogoURL:   b.LogoURL,
		Settings:  b.Settings,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
