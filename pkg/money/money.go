// Package money convierte montos escritos como texto libre (extracción OCR, celdas de hoja de
// cálculo, asientos editados a mano) a decimal sin fallar nunca: lo ilegible vale cero.
package money

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse interpreta v como monto. Acepta números Go, json.Number, decimal y texto con
// separadores colombianos o estadounidenses ("$ 1.271.000,50", "1,234,567.89"). Devuelve cero
// si no se puede leer.
func Parse(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case int32:
		return decimal.NewFromInt(int64(x))
	case json.Number:
		return parseString(x.String())
	case string:
		return parseString(x)
	default:
		return decimal.Zero
	}
}

// ParseNonNegative es Parse pero los valores negativos se tratan como cero
// (los campos monetarios de una factura nunca son negativos).
func ParseNonNegative(v any) decimal.Decimal {
	d := Parse(v)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SumPositiveQuantities suma las cantidades positivas de un campo que puede venir en varias
// líneas (un peso por lote). Se descartan valores cero, negativos o ilegibles. El resultado
// se redondea a 2 decimales.
func SumPositiveQuantities(v any) decimal.Decimal {
	var parts []any
	switch x := v.(type) {
	case string:
		for _, line := range strings.Split(x, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				parts = append(parts, line)
			}
		}
	case []any:
		parts = x
	case []string:
		for _, s := range x {
			parts = append(parts, s)
		}
	default:
		parts = []any{v}
	}

	total := decimal.Zero
	for _, p := range parts {
		q := Parse(p)
		if q.IsPositive() {
			total = total.Add(q)
		}
	}
	return total.Round(2)
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// parseString normaliza separadores: con punto y coma a la vez, el último es el decimal
// ("5.950.000,00", "5,950,000.00"); una sola coma seguida de 1 o 2 dígitos es decimal
// ("950000,5"); varias comas o varios puntos son miles.
func parseString(s string) decimal.Decimal {
	s = strings.NewReplacer("$", "", " ", "", "\u00a0", "", "\t", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if tail := len(s) - comma - 1; strings.Count(s, ",") == 1 && tail >= 1 && tail <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
