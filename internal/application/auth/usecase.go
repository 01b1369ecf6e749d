package auth

import (
	"context"
	"fmt"
	"net/mail"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/ports"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
	"github.com/jhoicas/Bizboard-api/pkg/jwt"
)

const (
	minPasswordLen  = 8
	maxPasswordLen  = 72 // límite de bcrypt
	defaultCurrency = "USD"
	defaultTimezone = "UTC"
)

// ErrInvalidCredentials login fallido (no distingue email inexistente de password incorrecto).
var ErrInvalidCredentials = fmt.Errorf("credenciales inválidas: %w", domain.ErrUnauthorized)

// Config configuración para tokens y logos.
type Config struct {
	Secret       string
	ExpMinutes   int
	Issuer       string
	MaxLogoBytes int64
}

// AuthUseCase registro, login y perfil del dueño del negocio.
type AuthUseCase struct {
	txRunner   ports.TxRunner
	users      repository.UserRepository
	businesses repository.BusinessRepository
	images     ports.ImageStore
	cfg        Config
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	txRunner ports.TxRunner,
	users repository.UserRepository,
	businesses repository.BusinessRepository,
	images ports.ImageStore,
	cfg Config,
) *AuthUseCase {
	return &AuthUseCase{txRunner: txRunner, users: users, businesses: businesses, images: images, cfg: cfg}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateRegister(in *dto.RegisterRequest) error {
	verr := &domain.ValidationError{}
	in.Email = normalizeEmail(in.Email)
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Category = strings.TrimSpace(in.Category)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	in.Timezone = strings.TrimSpace(in.Timezone)

	if _, err := mail.ParseAddress(in.Email); err != nil || in.Email == "" {
		verr.Add("email", "email inválido", in.Email)
	}
	if len(in.Password) < minPasswordLen {
		verr.Add("password", "debe tener al menos 8 caracteres", nil)
	} else if len(in.Password) > maxPasswordLen {
		verr.Add("password", "debe tener como máximo 72 caracteres", nil)
	}
	if in.BusinessName == "" {
		verr.Add("businessName", "es requerido", nil)
	}
	if in.Category == "" {
		in.Category = entity.BusinessCategoryOther
	}
	if !entity.BusinessCategories[in.Category] {
		verr.Add("category", "categoría de negocio inválida", in.Category)
	}
	if in.Currency == "" {
		in.Currency = defaultCurrency
	}
	if len(in.Currency) != 3 {
		verr.Add("currency", "debe ser un código ISO 4217 de 3 letras", in.Currency)
	}
	if in.Timezone == "" {
		in.Timezone = defaultTimezone
	}
	if _, err := time.LoadLocation(in.Timezone); err != nil {
		verr.Add("timezone", "zona horaria inválida", in.Timezone)
	}
	return verr.OrNil()
}

// Register crea usuario y negocio en una misma transacción, sube el logo si viene y devuelve token.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest, logo *dto.FileUpload) (*dto.AuthResponse, error) {
	if err := validateRegister(&in); err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	business := &entity.Business{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      in.BusinessName,
		Category:  in.Category,
		Currency:  in.Currency,
		Timezone:  in.Timezone,
		Settings:  entity.DefaultBusinessSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if logo != nil {
		url, err := uc.uploadLogo(ctx, business.ID, logo)
		if err != nil {
			return nil, err
		}
		business.LogoURL = url
	}

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		if err := repos.Businesses.Create(ctx, business); err != nil {
			return fmt.Errorf("create business: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.authResponse(user, business)
}

// Login verifica email y password y devuelve token, usuario y negocio.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	business, err := uc.businesses.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if business == nil {
		return nil, fmt.Errorf("usuario sin negocio: %w", domain.ErrNotFound)
	}
	return uc.authResponse(user, business)
}

// Profile devuelve usuario y negocio del principal.
func (uc *AuthUseCase) Profile(ctx context.Context, userID, businessID string) (*dto.ProfileResponse, error) {
	user, business, err := uc.load(ctx, userID, businessID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{User: dto.ToUserResponse(user), Business: dto.ToBusinessResponse(business)}, nil
}

// UpdateProfile actualiza datos y preferencias del negocio. El logo es opcional.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID, businessID string, in dto.UpdateProfileRequest, logo *dto.FileUpload) (*dto.ProfileResponse, error) {
	user, business, err := uc.load(ctx, userID, businessID)
	if err != nil {
		return nil, err
	}
	if err := applyProfile(business, in); err != nil {
		return nil, err
	}
	if logo != nil {
		url, err := uc.uploadLogo(ctx, business.ID, logo)
		if err != nil {
			return nil, err
		}
		business.LogoURL = url
	}
	business.UpdatedAt = time.Now().UTC()
	if err := uc.businesses.Update(ctx, business); err != nil {
		return nil, fmt.Errorf("update business: %w", err)
	}
	return &dto.ProfileResponse{User: dto.ToUserResponse(user), Business: dto.ToBusinessResponse(business)}, nil
}

func applyProfile(b *entity.Business, in dto.UpdateProfileRequest) error {
	verr := &domain.ValidationError{}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			b.Name = name
		} else {
			verr.Add("name", "no puede estar vacío", nil)
		}
	}
	if in.Category != nil {
		if entity.BusinessCategories[*in.Category] {
			b.Category = *in.Category
		} else {
			verr.Add("category", "categoría de negocio inválida", *in.Category)
		}
	}
	if in.Currency != nil {
		if c := strings.ToUpper(strings.TrimSpace(*in.Currency)); len(c) == 3 {
			b.Currency = c
		} else {
			verr.Add("currency", "debe ser un código ISO 4217 de 3 letras", *in.Currency)
		}
	}
	if in.Timezone != nil {
		if _, err := time.LoadLocation(*in.Timezone); err == nil {
			b.Timezone = *in.Timezone
		} else {
			verr.Add("timezone", "zona horaria inválida", *in.Timezone)
		}
	}
	if s := in.Settings; s != nil {
		if s.LowStockAlert != nil {
			b.Settings.LowStockAlert = *s.LowStockAlert
		}
		if s.LowStockThreshold != nil {
			if *s.LowStockThreshold < 0 {
				verr.Add("settings.lowStockThreshold", "debe ser mayor o igual a 0", *s.LowStockThreshold)
			} else {
				b.Settings.LowStockThreshold = *s.LowStockThreshold
			}
		}
		if s.DefaultTaxRate != nil {
			if s.DefaultTaxRate.IsNegative() {
				verr.Add("settings.defaultTaxRate", "debe ser mayor o igual a 0", *s.DefaultTaxRate)
			} else {
				b.Settings.DefaultTaxRate = *s.DefaultTaxRate
			}
		}
		if s.FiscalYearStart != nil {
			if *s.FiscalYearStart < 1 || *s.FiscalYearStart > 12 {
				verr.Add("settings.fiscalYearStart", "debe ser un mes entre 1 y 12", *s.FiscalYearStart)
			} else {
				b.Settings.FiscalYearStart = *s.FiscalYearStart
			}
		}
		if s.Language != nil {
			b.Settings.Language = *s.Language
		}
		if s.Theme != nil {
			b.Settings.Theme = *s.Theme
		}
	}
	return verr.OrNil()
}

// RefreshToken emite un token nuevo para el principal vigente.
func (uc *AuthUseCase) RefreshToken(ctx context.Context, userID, businessID string) (*dto.TokenResponse, error) {
	user, business, err := uc.load(ctx, userID, businessID)
	if err != nil {
		return nil, err
	}
	token, err := uc.token(user, business)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

// load obtiene usuario y negocio; si ya no existen el token deja de ser válido.
func (uc *AuthUseCase) load(ctx context.Context, userID, businessID string) (*entity.User, *entity.Business, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, nil, domain.ErrUnauthorized
	}
	business, err := uc.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, nil, fmt.Errorf("load business: %w", err)
	}
	if business == nil || business.UserID != user.ID {
		return nil, nil, domain.ErrUnauthorized
	}
	return user, business, nil
}

func (uc *AuthUseCase) token(user *entity.User, business *entity.Business) (string, error) {
	return jwt.Generate(uc.cfg.Secret, jwt.Principal{
		UserID:     user.ID,
		BusinessID: business.ID,
		Email:      user.Email,
		IsAdmin:    user.IsAdmin,
	}, uc.cfg.Issuer, uc.cfg.ExpMinutes)
}

func (uc *AuthUseCase) authResponse(user *entity.User, business *entity.Business) (*dto.AuthResponse, error) {
	token, err := uc.token(user, business)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.AuthResponse{
		Token:    token,
		User:     dto.ToUserResponse(user),
		Business: dto.ToBusinessResponse(business),
	}, nil
}

// uploadLogo valida tipo y tamaño y sube la imagen al almacén.
func (uc *AuthUseCase) uploadLogo(ctx context.Context, businessID string, logo *dto.FileUpload) (string, error) {
	if !strings.HasPrefix(logo.ContentType, "image/") {
		return "", domain.NewValidationError("logo", "debe ser una imagen", logo.ContentType)
	}
	if uc.cfg.MaxLogoBytes > 0 && logo.Size > uc.cfg.MaxLogoBytes {
		return "", domain.NewValidationError("logo", fmt.Sprintf("supera el tamaño máximo de %d bytes", uc.cfg.MaxLogoBytes), logo.Size)
	}
	if uc.images == nil {
		return "", fmt.Errorf("almacén de imágenes no configurado")
	}
	key := path.Join("logos", businessID, uuid.New().String()+strings.ToLower(path.Ext(logo.Filename)))
	url, err := uc.images.Upload(ctx, key, logo.ContentType, logo.Body, logo.Size)
	if err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}
	return url, nil
}
