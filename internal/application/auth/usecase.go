package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/pkg/jwt"
)

// Config credencial del operador y parámetros del token.
type Config struct {
	PasswordHash string // bcrypt; vacío desactiva el login
	Secret       string
	ExpMinutes   int
	Issuer       string
}

// AuthUseCase login del único operador del estoque.
type AuthUseCase struct {
	cfg Config
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(cfg Config) *AuthUseCase {
	return &AuthUseCase{cfg: cfg}
}

// Enabled indica si hay credencial y secreto configurados.
func (uc *AuthUseCase) Enabled() bool {
	return uc.cfg.PasswordHash != "" && uc.cfg.Secret != ""
}

// Login verifica la contraseña contra el hash bcrypt y emite un token de operador.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.Enabled() {
		return nil, fmt.Errorf("login deshabilitado: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	operator := in.Operator
	if operator == "" {
		operator = jwt.RoleOperator
	}
	token, err := jwt.Generate(uc.cfg.Secret, operator, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresInMinutes: uc.cfg.ExpMinutes}, nil
}

// HashPassword genera el hash bcrypt para OPERATOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("password debe tener al menos 8 caracteres: %w", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
