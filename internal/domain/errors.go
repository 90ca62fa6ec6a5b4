package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") indicando material, imagen o restricción.
var (
	ErrValidation    = errors.New("entrada inválida")
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrDataIntegrity = errors.New("inconsistencia de datos")
	ErrStorage       = errors.New("error de almacenamiento")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
)
