package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

// Account cuenta del catálogo PUC de la empresa.
type Account struct {
	Code        string
	Description string
	Class       string
}

// ICATariff fila de la tabla de tarifas ICA del municipio por actividad económica (CIIU).
type ICATariff struct {
	CIIU         string          // 4 dígitos
	Rate         decimal.Decimal // fracción decimal (8.3 por mil → 0.0083)
	MinimumBase  decimal.Decimal
	BomberilRate decimal.Decimal // fracción del ICA (20% → 0.20)
}

// PayableAccount cuenta por pagar (CxP) con su nombre canónico.
type PayableAccount struct {
	Code string
	Name string
}

// PayablePairs emparejamiento cuenta débito → cuenta por pagar, construido a partir del
// histórico de asientos: coincidencia exacta y luego por prefijos de 10 a 4 dígitos.
type PayablePairs struct {
	Exact    map[string]string
	Prefixes map[int]map[string]string // longitud de prefijo → prefijo → cuenta CxP
	Names    map[string]string         // cuenta CxP → nombre canónico
}

// PrefixLengths longitudes de prefijo evaluadas, de la más específica a la más general.
var PrefixLengths = []int{10, 9, 8, 7, 6, 5, 4}

// Nombre de la cuenta por pagar cuando el par no trae descripción o no hay par.
const DefaultPayableName = "Cuentas por pagar - Proveedores"

// Modos de emparejamiento de la cuenta por pagar.
const (
	PayableMatchExact    = "exact"
	PayableMatchFallback = "fallback"
)

// Resolve busca la cuenta por pagar de una cuenta débito: coincidencia exacta, luego prefijos
// de 10 a 4 dígitos y por último fallback. mode describe cómo se encontró ("exact",
// "prefix-6", "fallback").
func (p PayablePairs) Resolve(debitAccount, fallback string) (acc PayableAccount, mode string) {
	deb := textnorm.Digits(debitAccount)
	code, ok := "", false
	if deb != "" {
		code, ok = p.Exact[deb]
		mode = PayableMatchExact
		if !ok {
			for _, n := range PrefixLengths {
				if len(deb) < n {
					continue
				}
				if code, ok = p.Prefixes[n][deb[:n]]; ok {
					mode = fmt.Sprintf("prefix-%d", n)
					break
				}
			}
		}
	}
	if !ok || code == "" {
		code, mode = fallback, PayableMatchFallback
	}
	name := p.Names[code]
	if name == "" {
		name = DefaultPayableName
	}
	return PayableAccount{Code: code, Name: name}, mode
}
