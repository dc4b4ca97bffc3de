package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrIndexOutOfRange = errors.New("índice fuera de rango")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrPersist         = errors.New("fallo al persistir el estado")
	ErrUnauthorized    = errors.New("no autorizado")
)
