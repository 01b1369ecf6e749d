package auth_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/application/auth"
	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Bizboard-api/pkg/jwt"
)

const secret = "auth-test-secret"

type fakeImages struct {
	keys []string
}

func (f *fakeImages) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

func newUseCase() (*auth.AuthUseCase, *fakeImages) {
	s := memory.NewStore()
	repos := s.Repos()
	images := &fakeImages{}
	uc := auth.NewAuthUseCase(s, repos.Users, repos.Businesses, images, auth.Config{
		Secret: secret, ExpMinutes: 60, Issuer: "test", MaxLogoBytes: 1024,
	})
	return uc, images
}

func registerReq(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email: email, Password: "supersecreta", BusinessName: "La Esquina",
		Category: "restaurant", Currency: "cop", Timezone: "America/Bogota",
	}
}

func TestRegister_DevuelveTokenValido(t *testing.T) {
	uc, _ := newUseCase()
	res, err := uc.Register(context.Background(), registerReq("Dueno@Negocio.com"), nil)
	require.NoError(t, err)

	assert.Equal(t, "dueno@negocio.com", res.User.Email)
	assert.Equal(t, "COP", res.Business.Currency)
	assert.Equal(t, res.User.ID, res.Business.UserID)
	assert.Equal(t, 10, res.Business.Settings.LowStockThreshold)

	p, err := pkgjwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, p.UserID)
	assert.Equal(t, res.Business.ID, p.BusinessID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	first, err := uc.Register(ctx, registerReq("a@b.com"), nil)
	require.NoError(t, err)

	_, err = uc.Register(ctx, registerReq("A@B.com"), nil)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// el primero sigue pudiendo entrar
	res, err := uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "supersecreta"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, res.User.ID)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "no-es-email", Password: "corta", Category: "bar", Timezone: "Marte/Olympus",
	}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 5)
}

func TestRegister_ConLogo(t *testing.T) {
	uc, images := newUseCase()
	logo := &dto.FileUpload{Filename: "logo.PNG", ContentType: "image/png", Size: 4, Body: strings.NewReader("\x89PNG")}
	res, err := uc.Register(context.Background(), registerReq("logo@b.com"), logo)
	require.NoError(t, err)
	require.Len(t, images.keys, 1)
	assert.True(t, strings.HasSuffix(images.keys[0], ".png"))
	assert.Equal(t, "https://cdn.test/"+images.keys[0], res.Business.LogoURL)

	big := &dto.FileUpload{Filename: "logo.png", ContentType: "image/png", Size: 4096, Body: strings.NewReader("")}
	_, err = uc.Register(context.Background(), registerReq("big@b.com"), big)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	_, err := uc.Register(ctx, registerReq("a@b.com"), nil)
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@b.com", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateProfileYRefresh(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	reg, err := uc.Register(ctx, registerReq("a@b.com"), nil)
	require.NoError(t, err)

	name := "La Esquina 2"
	threshold := 3
	rate := decimal.NewFromInt(19)
	prof, err := uc.UpdateProfile(ctx, reg.User.ID, reg.Business.ID, dto.UpdateProfileRequest{
		Name:     &name,
		Settings: &dto.SettingsPatch{LowStockThreshold: &threshold, DefaultTaxRate: &rate},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, name, prof.Business.Name)
	assert.Equal(t, 3, prof.Business.Settings.LowStockThreshold)
	assert.Equal(t, "es", prof.Business.Settings.Language)

	bad := 13
	_, err = uc.UpdateProfile(ctx, reg.User.ID, reg.Business.ID, dto.UpdateProfileRequest{
		Settings: &dto.SettingsPatch{FiscalYearStart: &bad},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tok, err := uc.RefreshToken(ctx, reg.User.ID, reg.Business.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)

	_, err = uc.Profile(ctx, reg.User.ID, "otro-negocio")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
