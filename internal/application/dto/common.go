package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest body para POST /auth/login.
type LoginRequest struct {
	Operator string `json:"operator"` // opcional, subject del token
	Password string `json:"password"`
}

// LoginResponse token del operador.
type LoginResponse struct {
	Token            string `json:"token"`
	ExpiresInMinutes int    `json:"expiresInMinutes"`
}
