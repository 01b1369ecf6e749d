package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpired se devuelve cuando la firma es válida pero el token ya venció.
var ErrExpired = errors.New("jwt: token expirado")

// Claims incluye los claims estándar JWT más los datos del principal autenticado.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"userId"`
	BusinessID string `json:"businessId"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"isAdmin"`
}

// Principal datos de identidad que viajan en el token.
type Principal struct {
	UserID     string
	BusinessID string
	Email      string
	IsAdmin    bool
}

// Generate genera un token JWT HS256 firmado con el principal y expiración en minutos.
func Generate(secret string, p Principal, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     p.UserID,
		BusinessID: p.BusinessID,
		Email:      p.Email,
		IsAdmin:    p.IsAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el principal.
// Retorna ErrExpired si el token venció; cualquier otro fallo es un error genérico.
func Parse(secret, tokenString string) (*Principal, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == "" || claims.BusinessID == "" {
		return nil, fmt.Errorf("claims incompletos")
	}
	return &Principal{
		UserID:     claims.UserID,
		BusinessID: claims.BusinessID,
		Email:      claims.Email,
		IsAdmin:    claims.IsAdmin,
	}, nil
}
