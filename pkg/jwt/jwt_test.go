package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/organic-orders/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "shop", pkgjwt.RoleAdmin, "organic-orders-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "shop", subject)
	assert.Equal(t, pkgjwt.RoleAdmin, role)
}

func TestGenerate_SinExpiracion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "shop", pkgjwt.RoleAdmin, "test", 0)
	require.NoError(t, err)

	_, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err, "un token sin exp no vence")
	assert.Equal(t, pkgjwt.RoleAdmin, role)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "shop", pkgjwt.RoleAdmin, "test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "shop", pkgjwt.RoleAdmin, "test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "shop", pkgjwt.RoleAdmin, "test", 60)
	assert.Error(t, err)
}
