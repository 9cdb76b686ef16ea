package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

// FomentoRate cuota de fomento arrocero sobre el valor de compra de arroz paddy.
var FomentoRate = decimal.RequireFromString("0.005")

// FomentoResult resultado de la cuota de fomento. Value es el valor final (calculado o el de
// la factura); Delta es lo que debe restarse a la cuenta por pagar.
type FomentoResult struct {
	Applies  bool
	Computed bool
	Value    decimal.Decimal
	Delta    decimal.Decimal
	Line     *entity.LedgerLine
	Reason   string
}

// IsPaddyPurchase compra de arroz paddy cargada al inventario de materia prima.
func IsPaddyPurchase(description, debitAccount string) bool {
	return entity.CleanAccountCode(debitAccount) == PaddyInventoryAccount &&
		textnorm.ContainsAny(description, "arroz paddy")
}

// ComputeFomento calcula la cuota cuando la factura no la trae (clave ausente o valor cero).
// thirdParty es el tercero ya formateado que llevan las demás líneas del asiento.
func ComputeFomento(f entity.InvoiceFields, debitAccount string, base decimal.Decimal, thirdParty string) FomentoResult {
	if !IsPaddyPurchase(f.Description, debitAccount) {
		return FomentoResult{Reason: "no es compra de arroz paddy"}
	}
	res := FomentoResult{Applies: true, Value: f.Fomento}
	if !f.FomentoStated || f.Fomento.IsZero() {
		res.Computed = true
		res.Value = base.Mul(FomentoRate).Round(2)
		res.Delta = res.Value.Sub(f.Fomento)
		res.Reason = fmt.Sprintf("0.5%% sobre base %s", base.StringFixed(2))
	} else {
		res.Reason = "valor declarado en la factura"
	}
	if res.Value.IsPositive() {
		line := entity.CreditLine(FomentoAccount, FomentoAccountName, res.Value, thirdParty, "")
		res.Line = &line
	}
	return res
}
