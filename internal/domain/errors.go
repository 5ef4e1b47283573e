package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientFunds = errors.New("capital insuficiente en el banco")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadySettled    = errors.New("el saldo ya está liquidado")
)
