package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/pkg/jwt"
)

func newUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := auth.HashPassword("estoque-123")
	require.NoError(t, err)
	return auth.NewAuthUseCase(auth.Config{PasswordHash: hash, Secret: "s3cr3t", ExpMinutes: 30, Issuer: "estoque-api"})
}

func TestLogin_PasswordCorrecta(t *testing.T) {
	out, err := newUC(t).Login(dto.LoginRequest{Operator: "maria", Password: "estoque-123"})
	require.NoError(t, err)
	assert.Equal(t, 30, out.ExpiresInMinutes)

	claims, err := jwt.Parse("s3cr3t", "estoque-api", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Subject)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	_, err := newUC(t).Login(dto.LoginRequest{Password: "otra-clave"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_Deshabilitado(t *testing.T) {
	uc := auth.NewAuthUseCase(auth.Config{Secret: "s3cr3t"})
	assert.False(t, uc.Enabled())
	_, err := uc.Login(dto.LoginRequest{Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestHashPassword_Corta(t *testing.T) {
	_, err := auth.HashPassword("123")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
