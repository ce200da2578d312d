package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")

	// ErrAggregation una consulta rollup obligatoria (productos o provincias)
	// falló; la petición completa se aborta.
	ErrAggregation = errors.New("consulta de agregación fallida")
)
