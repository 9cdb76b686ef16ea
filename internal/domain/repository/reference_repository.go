package repository

import (
	"context"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

// ICATariffRepository tabla CIIU → tarifa ICA del municipio (solo lectura).
type ICATariffRepository interface {
	// Tariff devuelve la fila del CIIU o domain.ErrTariffNotFound si no figura en la tabla.
	Tariff(ctx context.Context, ciiu string) (entity.ICATariff, error)
}

// PayablePairRepository emparejamientos cuenta débito → cuenta por pagar.
type PayablePairRepository interface {
	Pairs(ctx context.Context) (*entity.PayablePairs, error)
}

// AccountCatalogRepository catálogo PUC de la empresa.
type AccountCatalogRepository interface {
	// Codes devuelve el conjunto de códigos (solo dígitos) presentes en el catálogo.
	Codes(ctx context.Context) (map[string]struct{}, error)
	// Accounts devuelve el catálogo completo ordenado por código.
	Accounts(ctx context.Context) ([]entity.Account, error)
}
