package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInvalidState      = errors.New("la entrega no está en el estado requerido")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrTransactionFailed = errors.New("la transacción no pudo completarse")
	ErrLocationCycle     = errors.New("la ubicación padre crea un ciclo")
)
