package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

// RetentionCategory categoría de retención en la fuente ya normalizada. Es un conjunto
// cerrado; CategoryNone significa "categoría desconocida, no se retiene".
type RetentionCategory uint8

const (
	CategoryNone RetentionCategory = iota
	CategoryPersonasJuridicas11
	CategoryNoDeclarantes10
	CategoryServicios1
	CategoryServicios4
	CategoryServicios2
	CategoryServicios35
	CategoryArrendamientoInmuebles35
	CategoryArrendamientoMuebles4
	CategoryCombustible01
	CategoryCompras25
	CategoryCompras15
)

// RetentionRule cuenta y tarifa de una categoría.
type RetentionRule struct {
	Key     string
	Account string
	Rate    decimal.Decimal
}

var retentionRules = map[RetentionCategory]RetentionRule{
	CategoryPersonasJuridicas11:      {"PERSONAS JURIDICAS 11%", "23651502", decimal.RequireFromString("0.11")},
	CategoryNoDeclarantes10:          {"PERSONAS NO DECLARANTES PN 10%", "23651503", decimal.RequireFromString("0.10")},
	CategoryServicios1:               {"SERVICIOS 1%", "23652501", decimal.RequireFromString("0.01")},
	CategoryServicios4:               {"SERVICIOS 4%", "23652502", decimal.RequireFromString("0.04")},
	CategoryServicios2:               {"SERVICIOS 2%", "23652503", decimal.RequireFromString("0.02")},
	CategoryServicios35:              {"SERVICIOS 3.5%", "23652505", decimal.RequireFromString("0.035")},
	CategoryArrendamientoInmuebles35: {"ARRENDAMIENTO BIENES INMUEBLES 3.5%", "23653004", decimal.RequireFromString("0.035")},
	CategoryArrendamientoMuebles4:    {"ARRENDAMIENTO BIENES MUEBLES 4%", "23653005", decimal.RequireFromString("0.04")},
	CategoryCombustible01:            {"COMBUSTIBLE 0.1%", "23657001", decimal.RequireFromString("0.001")},
	CategoryCompras25:                {"COMPRAS 2.5%", "23657003", decimal.RequireFromString("0.025")},
	CategoryCompras15:                {"COMPRAS 1.5%", "23657004", decimal.RequireFromString("0.015")},
}

var categoryByKey = func() map[string]RetentionCategory {
	m := make(map[string]RetentionCategory, len(retentionRules))
	for c, r := range retentionRules {
		m[r.Key] = c
	}
	return m
}()

// Categories devuelve las 11 categorías reconocidas en orden de declaración.
func Categories() []RetentionCategory {
	out := make([]RetentionCategory, 0, len(retentionRules))
	for c := CategoryPersonasJuridicas11; c <= CategoryCompras15; c++ {
		out = append(out, c)
	}
	return out
}

// Rule devuelve la regla de la categoría; ok es false para CategoryNone.
func (c RetentionCategory) Rule() (RetentionRule, bool) {
	r, ok := retentionRules[c]
	return r, ok
}

// String devuelve la clave canónica ("SERVICIOS 1%") o "" para CategoryNone.
func (c RetentionCategory) String() string {
	return retentionRules[c].Key
}

var freightKeywords = []string{"FLETE", "FLETES", "TRANSPORTE", "ACARREO"}

// NormalizeCategory convierte la etiqueta libre del clasificador en una categoría cerrada.
// Orden: coincidencia exacta, "1 %" → "1%", descripción de fletes/transporte, familia de la
// cuenta débito (5235, 5105). Si nada aplica devuelve CategoryNone; nunca falla.
func NormalizeCategory(raw, description, debitAccount string) RetentionCategory {
	t := textnorm.Upper(raw)
	if c, ok := categoryByKey[t]; ok {
		return c
	}
	if c, ok := categoryByKey[strings.ReplaceAll(t, " %", "%")]; ok {
		return c
	}
	if textnorm.ContainsAny(description, freightKeywords...) {
		return CategoryServicios1
	}
	acct := strings.TrimSpace(debitAccount)
	if strings.HasPrefix(acct, "5235") || strings.HasPrefix(acct, "5105") {
		return CategoryServicios1
	}
	return CategoryNone
}
