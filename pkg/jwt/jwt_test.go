package jwt_test

import (
	"testing"

	pkgjwt "github.com/jhoicas/supply-chain-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConservaClaims(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", 3, pkgjwt.RoleComprador, "supply-chain-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)

	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, 3, claims.BranchID)
	assert.Equal(t, pkgjwt.RoleComprador, claims.Role)
	assert.Equal(t, "supply-chain-test", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", 3, pkgjwt.RoleAdmin, "x", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", 3, pkgjwt.RoleAdmin, "x", -5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", 3, pkgjwt.RoleAdmin, "x", 60)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "a.b.c")
	assert.Error(t, err)
}
