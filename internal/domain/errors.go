package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrReferenceData      = errors.New("tabla de referencia no disponible")
	ErrMissingColumn      = errors.New("columna obligatoria ausente en la tabla de referencia")
	ErrTariffNotFound     = errors.New("tarifa ICA no encontrada para el CIIU")
	ErrCatalogUnavailable = errors.New("catálogo PUC no disponible")
)
