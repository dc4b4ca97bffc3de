package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("secreto", "maria", "estoque-api", 5)
	require.NoError(t, err)

	claims, err := Parse("secreto", "estoque-api", tok)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Subject)
	assert.Equal(t, RoleOperator, claims.Role)
}

func TestGenerate_OperadorPorDefecto(t *testing.T) {
	tok, err := Generate("secreto", "", "", 5)
	require.NoError(t, err)
	claims, err := Parse("secreto", "", tok)
	require.NoError(t, err)
	assert.Equal(t, RoleOperator, claims.Subject)
}

func TestParse_Errores(t *testing.T) {
	tok, err := Generate("secreto", "maria", "estoque-api", 5)
	require.NoError(t, err)

	_, err = Parse("otro", "estoque-api", tok)
	assert.Error(t, err, "firma incorrecta")

	_, err = Parse("secreto", "otro-emisor", tok)
	assert.Error(t, err, "emisor distinto")

	expired, err := Generate("secreto", "maria", "estoque-api", -1)
	require.NoError(t, err)
	_, err = Parse("secreto", "estoque-api", expired)
	assert.Error(t, err, "token expirado")

	_, err = Parse("", "", tok)
	assert.Error(t, err)

	_, err = Generate("", "maria", "", 5)
	assert.Error(t, err)
}
