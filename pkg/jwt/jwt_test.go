package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_ConservaClaims(t *testing.T) {
	tok, err := Generate("secret", Claims{
		UserID: "u1", Username: "ana", Role: "vendedor", CompanyID: "c1",
		Sector: "ventas", Access: "full", Status: "active", Active: true,
	}, "erp-kardex", 5)
	require.NoError(t, err)

	claims, err := Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "c1", claims.CompanyID)
	assert.Equal(t, "vendedor", claims.Role)
	assert.True(t, claims.Active)
	assert.Equal(t, "erp-kardex", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("secret", Claims{UserID: "u1", CompanyID: "c1"}, "x", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("secret", Claims{UserID: "u1", CompanyID: "c1"}, "x", -1)
	require.NoError(t, err)

	_, err = Parse("secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", Claims{UserID: "u1"}, "x", 5)
	assert.Error(t, err)
}
