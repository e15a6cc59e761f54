package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrNotFound se reserva para operaciones que exigen que la entidad exista
// (actualizar cliente, registrar pago o factura). Los deletes y toggles tratan
// el ID ausente como no-op, no como error.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
)
