package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

// Familias de cuenta de IVA descontable.
const (
	IVAFamilyCompras   = "compras"
	IVAFamilyGastos    = "gastos"
	IVAFamilyServicios = "servicios"
)

// Tarifas de IVA reconocidas.
var (
	IVARate19 = decimal.RequireFromString("0.19")
	IVARate5  = decimal.RequireFromString("0.05")

	ivaTolerance = decimal.RequireFromString("0.01")
)

// IVAAccount cuenta de IVA descontable.
type IVAAccount struct {
	Code string
	Name string
}

type ivaKey struct {
	family string
	rate   string
}

var ivaAccounts = map[ivaKey]IVAAccount{
	{IVAFamilyCompras, "0.19"}:   {"24080501", "IVA DESCONTABLE POR COMPRAS 19%"},
	{IVAFamilyGastos, "0.19"}:    {"24080502", "IVA DESCONTABLE POR GASTOS 19%"},
	{IVAFamilyServicios, "0.19"}: {"24080503", "IVA DESCONTABLE POR SERVICIOS 19%"},
	{IVAFamilyCompras, "0.05"}:   {"24080505", "IVA DESCONTABLE POR COMPRAS 5%"},
	{IVAFamilyGastos, "0.05"}:    {"24080506", "IVA DESCONTABLE POR GASTOS 5%"},
	{IVAFamilyServicios, "0.05"}: {"24080507", "IVA DESCONTABLE POR SERVICIOS 5%"},
}

// DetectIVARate infiere si el IVA corresponde al 19% o al 5% del subtotal con una tolerancia
// relativa del 1%. ok es false si ninguno coincide o los montos no son positivos.
func DetectIVARate(iva, subtotal decimal.Decimal) (rate decimal.Decimal, ok bool) {
	if !iva.IsPositive() || !subtotal.IsPositive() {
		return decimal.Zero, false
	}
	for _, r := range []decimal.Decimal{IVARate19, IVARate5} {
		expected := subtotal.Mul(r)
		if iva.Sub(expected).Abs().LessThanOrEqual(expected.Mul(ivaTolerance)) {
			return r, true
		}
	}
	return decimal.Zero, false
}

// IVAFamily familia de cuenta según el tipo de transacción y el prefijo de la cuenta débito:
// servicios → servicios; inventario (14) → compras; gasto/costo (5, 6, 7) y demás → gastos.
func IVAFamily(transactionType, debitAccount string) string {
	if entity.NormalizeTransactionType(transactionType) == entity.TransactionServices {
		return IVAFamilyServicios
	}
	if strings.HasPrefix(entity.CleanAccountCode(debitAccount), "14") {
		return IVAFamilyCompras
	}
	return IVAFamilyGastos
}

// SelectIVAAccount elige la cuenta de IVA descontable. ok es false si no se detecta la tarifa.
func SelectIVAAccount(transactionType, debitAccount string, iva, subtotal decimal.Decimal) (IVAAccount, bool) {
	rate, ok := DetectIVARate(iva, subtotal)
	if !ok {
		return IVAAccount{}, false
	}
	acc, ok := ivaAccounts[ivaKey{IVAFamily(transactionType, debitAccount), rate.String()}]
	return acc, ok
}

// BuildIVALine construye la línea débito de IVA descontable, o nil si no hay cuenta o el IVA es cero.
func BuildIVALine(transactionType, debitAccount string, iva, subtotal decimal.Decimal, thirdParty, detail string) *entity.LedgerLine {
	acc, ok := SelectIVAAccount(transactionType, debitAccount, iva, subtotal)
	if !ok || iva.IsZero() {
		return nil
	}
	if detail == "" {
		detail = "IVA descontable"
	}
	line := entity.DebitLine(acc.Code, acc.Name, iva, thirdParty, detail)
	return &line
}
