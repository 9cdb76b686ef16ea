package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/pkg/money"
)

// ClasificacionRequest resultado del clasificador externo (cuenta débito y categoría de retención).
type ClasificacionRequest struct {
	Cuenta             string `json:"cuenta"`
	Nombre             string `json:"nombre"`
	CategoriaRetencion string `json:"categoria_retencion"`
	TipoTransaccion    string `json:"tipo_transaccion"`
}

// ToEntity convierte a entity.Classification sin validar (el motor la normaliza).
func (c ClasificacionRequest) ToEntity() entity.Classification {
	return entity.Classification{
		DebitAccount:      c.Cuenta,
		DebitAccountName:  c.Nombre,
		RetentionCategory: c.CategoriaRetencion,
		TransactionType:   c.TipoTransaccion,
	}
}

// CreateAsientoRequest body para POST /api/asientos y /api/asientos/comprobante.
// Campos es el mapa plano que entrega el extractor ("Subtotal", "IVA Valor", "Proveedor", ...).
type CreateAsientoRequest struct {
	Campos        map[string]any       `json:"campos"`
	Clasificacion ClasificacionRequest `json:"clasificacion"`
}

// LineaEditada línea de un asiento revisado a mano. Los montos aceptan número o texto.
type LineaEditada struct {
	Cuenta     any    `json:"cuenta"`
	Nombre     string `json:"nombre"`
	Debito     any    `json:"debito"`
	Credito    any    `json:"credito"`
	CantidadKg any    `json:"cantidad_kg,omitempty"`
	Tercero    string `json:"tercero,omitempty"`
	Detalle    string `json:"detalle,omitempty"`
}

// ToEntity convierte la línea con parseo tolerante: lo ilegible vale cero.
func (l LineaEditada) ToEntity() entity.LedgerLine {
	return entity.LedgerLine{
		Account:    accountText(l.Cuenta),
		Name:       l.Nombre,
		Debit:      money.Parse(l.Debito),
		Credit:     money.Parse(l.Credito),
		QuantityKg: money.Parse(l.CantidadKg),
		ThirdParty: l.Tercero,
		Detail:     l.Detalle,
	}
}

// ValidarAsientoRequest body para POST /api/asientos/validar.
type ValidarAsientoRequest struct {
	Lineas []LineaEditada `json:"lineas"`
}

// Lines convierte todas las líneas editadas.
func (r ValidarAsientoRequest) Lines() []entity.LedgerLine {
	out := make([]entity.LedgerLine, 0, len(r.Lineas))
	for _, l := range r.Lineas {
		out = append(out, l.ToEntity())
	}
	return out
}

// BalanceResponse resultado de la validación de partida doble.
type BalanceResponse struct {
	Cuadra       bool            `json:"cuadra"`
	TotalDebito  decimal.Decimal `json:"total_debito"`
	TotalCredito decimal.Decimal `json:"total_credito"`
	Diferencia   decimal.Decimal `json:"diferencia"`
}

// ValidacionResponse respuesta de POST /api/asientos/validar.
type ValidacionResponse struct {
	Balance          BalanceResponse `json:"balance"`
	CuentasInvalidas []string        `json:"cuentas_invalidas"`
	Diagnostico      string          `json:"diagnostico_catalogo,omitempty"`
}

// AsientoResponse asiento construido con su validación.
type AsientoResponse struct {
	ID               string              `json:"id"`
	Lineas           []entity.LedgerLine `json:"lineas"`
	Balance          BalanceResponse     `json:"balance"`
	CuentasInvalidas []string            `json:"cuentas_invalidas"`
	Diagnostico      string              `json:"diagnostico_catalogo,omitempty"`
	Advertencias     []string            `json:"advertencias,omitempty"`
	Trazas           []entity.StageTrace `json:"trazas,omitempty"`
}

func accountText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return entity.CleanAccountCode(x)
	case float64:
		return decimal.NewFromFloat(x).String()
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
