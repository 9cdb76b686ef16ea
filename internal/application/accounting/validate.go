package accounting

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/internal/domain/repository"
	"github.com/jhoicas/contabilizador/pkg/logger"
	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

// BalanceResult resultado de la validación de partida doble.
type BalanceResult struct {
	Balanced    bool
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
}

// ValidateBalance suma débitos y créditos; el asiento cuadra si la diferencia redondeada a
// dos decimales es cero.
func ValidateBalance(lines []entity.LedgerLine) BalanceResult {
	debit, credit := entity.Asiento{Lines: lines}.Totals()
	diff := debit.Sub(credit).Round(2)
	return BalanceResult{
		Balanced:    diff.IsZero(),
		TotalDebit:  debit.Round(2),
		TotalCredit: credit.Round(2),
		Difference:  diff,
	}
}

// AccountValidator compara las cuentas usadas contra el catálogo PUC.
type AccountValidator struct {
	catalog repository.AccountCatalogRepository
	log     *logger.Logger
}

// NewAccountValidator crea el validador; catalog puede ser nil (no se valida).
func NewAccountValidator(catalog repository.AccountCatalogRepository, log *logger.Logger) *AccountValidator {
	if log == nil {
		log = logger.Nop()
	}
	return &AccountValidator{catalog: catalog, log: log.Component("catalogo")}
}

// Validate devuelve los códigos usados que no existen en el catálogo, ordenados. Nunca falla:
// si el catálogo no carga, el conjunto es vacío y diagnostic explica por qué.
func (v *AccountValidator) Validate(ctx context.Context, lines []entity.LedgerLine) (invalid []string, diagnostic string) {
	invalid = []string{}
	if v.catalog == nil {
		return invalid, "catálogo PUC no configurado: cuentas sin validar"
	}
	codes, err := v.catalog.Codes(ctx)
	if err != nil {
		v.log.Warn().Err(err).Msg("catálogo PUC no disponible")
		return invalid, "catálogo PUC no disponible: " + err.Error()
	}

	seen := make(map[string]struct{})
	for _, l := range lines {
		code := textnorm.Digits(l.Account)
		if code == "" {
			continue
		}
		if _, ok := codes[code]; ok {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		invalid = append(invalid, code)
	}
	sort.Strings(invalid)
	return invalid, ""
}
