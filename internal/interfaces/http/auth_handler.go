package http

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bizboard-api/internal/application/auth"
	"github.com/jhoicas/Bizboard-api/internal/application/dto"
)

const logoField = "logo"

// AuthHandler registro, login, perfil y renovación de token.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// logoUpload abre el archivo "logo" si viene en el formulario. Devuelve nil si no hay archivo.
func logoUpload(c *fiber.Ctx) (*dto.FileUpload, func(), error) {
	noop := func() {}
	if !isMultipart(c) {
		return nil, noop, nil
	}
	fh, err := c.FormFile(logoField)
	if err != nil {
		// sin archivo: el campo es opcional
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, fiber.NewError(fiber.StatusBadRequest, "no se pudo leer el logo")
	}
	return &dto.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

// Register godoc
// @Summary      Registrar usuario y negocio
// @Description  Acepta JSON o multipart/form-data (campo "logo" opcional con la imagen del negocio).
// @Tags         auth
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true   "email, password, businessName, category, currency, timezone"
// @Param        logo  formData  file                 false  "logo del negocio"
// @Success      201   {object}  dto.APIResponse{data=dto.AuthResponse}
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	logo, closeLogo, err := logoUpload(c)
	if err != nil {
		return err
	}
	defer closeLogo()

	out, err := h.uc.Register(c.UserContext(), in, logo)
	if err != nil {
		return err
	}
	return created(c, out, "usuario registrado")
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.APIResponse{data=dto.AuthResponse}
// @Failure      401   {object}  dto.APIResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "credenciales inválidas")
		}
		return err
	}
	return ok(c, out)
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.ProfileResponse}
// @Failure      401  {object}  dto.APIResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetUserID(c), GetBusinessID(c))
	if err != nil {
		return err
	}
	return ok(c, out)
}

// UpdateProfile godoc
// @Summary      Actualizar negocio desde el perfil
// @Description  JSON o multipart; en multipart "settings" viaja como JSON en un campo de texto.
// @Tags         auth
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      dto.UpdateProfileRequest  true   "campos a actualizar"
// @Param        logo  formData  file                      false  "nuevo logo"
// @Success      200   {object}  dto.APIResponse{data=dto.ProfileResponse}
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	if isMultipart(c) {
		if raw := c.FormValue("settings"); raw != "" {
			var s dto.SettingsPatch
			if err := json.Unmarshal([]byte(raw), &s); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "settings debe ser un JSON válido")
			}
			in.Settings = &s
		}
	}
	logo, closeLogo, err := logoUpload(c)
	if err != nil {
		return err
	}
	defer closeLogo()

	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), GetBusinessID(c), in, logo)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// RefreshToken godoc
// @Summary      Renovar token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.TokenResponse}
// @Failure      401  {object}  dto.APIResponse
// @Router       /api/auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	out, err := h.uc.RefreshToken(c.UserContext(), GetUserID(c), GetBusinessID(c))
	if err != nil {
		return err
	}
	return ok(c, out)
}
