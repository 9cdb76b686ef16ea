package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/pkg/money"
)

// Nombres de campo tal como los entrega el extractor de documentos. Cada campo acepta
// variantes con y sin tilde y las grafías heredadas de modelos de extracción anteriores.
var (
	keySubtotal      = []string{"Subtotal"}
	keyFletes        = []string{"Fletes"}
	keyIVA           = []string{"IVA Valor"}
	keyTotal         = []string{"Total Factura"}
	keySupplier      = []string{"Proveedor"}
	keySupplierNIT   = []string{"NIT Proveedor"}
	keyRegime        = []string{"Regimen Tributario", "Régimen Tributario"}
	keyCity          = []string{"Ciudad"}
	keyActivity      = []string{"Actividad Economica", "Actividad Económica"}
	keyRetefuente    = []string{"Retefuente Valor"}
	keyDescription   = []string{"Descripcion", "Descripción"}
	keyOriginDest    = []string{"Origen-Destino", "Origen - Destino"}
	keyFomento       = []string{"Impuesto Fomento"}
	keyQuantity      = []string{"Cantidad"}
	keyReteICAInDoc  = []string{"RetICA Valor", "ReteICA Valor", "Retención ICA"}
	keyBomberilInDoc = []string{"Bomberil Valor", "Sobretasa Bomberil", "Tasa Bomberil"}
)

// InvoiceFields campos semánticos de una factura de proveedor ya extraída.
// Los montos nunca son negativos: un texto ilegible se interpreta como cero.
type InvoiceFields struct {
	Subtotal         decimal.Decimal
	Fletes           decimal.Decimal
	IVA              decimal.Decimal
	Total            decimal.Decimal
	Supplier         string
	SupplierNIT      string
	TaxRegime        string // texto libre con la leyenda tributaria del proveedor
	City             string
	EconomicActivity string // texto libre que contiene el código CIIU
	Retefuente       decimal.Decimal
	Description      string
	OriginDest       string
	Fomento          decimal.Decimal
	FomentoStated    bool // la clave "Impuesto Fomento" venía en el documento
	Quantity         any  // texto multilínea, número o lista (pesos por lote)
	ReteICAInDoc     decimal.Decimal
	BomberilInDoc    decimal.Decimal
}

// FieldsFromMap construye InvoiceFields a partir del mapa plano del extractor.
// Las claves ausentes se tratan como vacías o cero.
func FieldsFromMap(m map[string]any) InvoiceFields {
	f := InvoiceFields{
		Subtotal:         money.ParseNonNegative(lookup(m, keySubtotal)),
		Fletes:           money.ParseNonNegative(lookup(m, keyFletes)),
		IVA:              money.ParseNonNegative(lookup(m, keyIVA)),
		Total:            money.ParseNonNegative(lookup(m, keyTotal)),
		Supplier:         text(lookup(m, keySupplier)),
		SupplierNIT:      text(lookup(m, keySupplierNIT)),
		TaxRegime:        text(lookup(m, keyRegime)),
		City:             text(lookup(m, keyCity)),
		EconomicActivity: text(lookup(m, keyActivity)),
		Retefuente:       money.ParseNonNegative(lookup(m, keyRetefuente)),
		Description:      text(lookup(m, keyDescription)),
		OriginDest:       text(lookup(m, keyOriginDest)),
		Fomento:          money.ParseNonNegative(lookup(m, keyFomento)),
		Quantity:         lookup(m, keyQuantity),
		ReteICAInDoc:     money.ParseNonNegative(lookup(m, keyReteICAInDoc)),
		BomberilInDoc:    money.ParseNonNegative(lookup(m, keyBomberilInDoc)),
	}
	_, f.FomentoStated = m[keyFomento[0]]
	return f
}

// ThirdParty identificación del tercero para las líneas: NIT si existe, si no el nombre.
func (f InvoiceFields) ThirdParty() string {
	if f.SupplierNIT != "" {
		return f.SupplierNIT
	}
	return f.Supplier
}

// lookup devuelve el primer valor no vacío entre las variantes de la clave.
func lookup(m map[string]any, keys []string) any {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		// NIT o teléfonos que el extractor entregó como número
		return decimal.NewFromFloat(x).String()
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
