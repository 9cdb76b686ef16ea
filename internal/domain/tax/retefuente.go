package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

// RetefuenteMinimumBase base mínima de retención en la fuente (en pesos).
var RetefuenteMinimumBase = decimal.NewFromInt(1271000)

// RetefuenteInput datos que necesita el cálculo de retención en la fuente.
type RetefuenteInput struct {
	Category    RetentionCategory
	Declared    decimal.Decimal // valor que trae la factura; cero si no trae
	Base        decimal.Decimal
	MinimumBase decimal.Decimal // cero usa RetefuenteMinimumBase
	Regime      string
	ThirdParty  string
}

// RetefuenteResult línea resultante (nil si no aplica). Computed es el valor que calculó el
// motor; un valor declarado se registra pero no se descuenta de la cuenta por pagar.
type RetefuenteResult struct {
	Line     *entity.LedgerLine
	Computed decimal.Decimal
	Reason   string
}

// ComputeRetefuente decide entre registrar el valor declarado por el proveedor o calcular la
// retención (categoría reconocida, base estrictamente mayor a la mínima, sin autorretención
// de renta ni régimen simple).
func ComputeRetefuente(in RetefuenteInput) RetefuenteResult {
	rule, known := in.Category.Rule()

	if in.Declared.IsPositive() {
		account, name := RetefuenteDefault, RetefuenteDefaultName
		if known {
			account, name = rule.Account, rule.Key
		}
		line := entity.CreditLine(account, name, in.Declared, in.ThirdParty, "Retefuente declarada en la factura")
		return RetefuenteResult{Line: &line, Reason: "valor declarado por el proveedor"}
	}

	minimum := in.MinimumBase
	if minimum.IsZero() {
		minimum = RetefuenteMinimumBase
	}
	switch {
	case !known:
		return RetefuenteResult{Reason: "categoría de retención desconocida"}
	case !in.Base.GreaterThan(minimum):
		return RetefuenteResult{Reason: fmt.Sprintf("base %s no supera la mínima %s", in.Base.StringFixed(2), minimum.StringFixed(2))}
	case IsSelfWithholdingRenta(in.Regime):
		return RetefuenteResult{Reason: "proveedor autorretenedor de renta"}
	case IsSimplifiedRegime(in.Regime):
		return RetefuenteResult{Reason: "proveedor en régimen simple"}
	}

	value := in.Base.Mul(rule.Rate).Round(2)
	line := entity.CreditLine(rule.Account, rule.Key, value, in.ThirdParty, "")
	return RetefuenteResult{
		Line:     &line,
		Computed: value,
		Reason:   fmt.Sprintf("%s sobre base %s", rule.Key, in.Base.StringFixed(2)),
	}
}
