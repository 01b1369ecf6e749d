package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Bizboard-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

var testPrincipal = pkgjwt.Principal{
	UserID:     "00000000-0000-0000-0000-000000000001",
	BusinessID: "00000000-0000-0000-0000-000000000002",
	Email:      "dueno@negocio.com",
	IsAdmin:    true,
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testPrincipal, "bizboard-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	p, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testPrincipal, *p)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testPrincipal, "bizboard-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testPrincipal, "bizboard-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	require.Error(t, err)
	assert.NotErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestParse_SinBusiness(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Principal{UserID: "u1"}, "bizboard-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testPrincipal, "bizboard-test", 60)
	assert.Error(t, err)
}
