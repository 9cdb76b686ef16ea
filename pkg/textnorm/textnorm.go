// Package textnorm normaliza texto libre extraído de facturas (tildes, saltos de línea,
// espacios repetidos y mayúsculas) para que los clasificadores comparen cadenas estables.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxPasses limita las vueltas hasta el punto fijo; en la práctica basta con dos.
const maxPasses = 4

// Normalize quita tildes y marcas combinantes, reemplaza \n, \t y \r por espacios,
// colapsa espacios repetidos y recorta. No cambia mayúsculas/minúsculas.
// Es idempotente: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return fixpoint(s, identity)
}

// Upper es Normalize seguido de mayúsculas.
func Upper(s string) string {
	return fixpoint(s, strings.ToUpper)
}

// Lower es Normalize seguido de minúsculas.
func Lower(s string) string {
	return fixpoint(s, strings.ToLower)
}

// Digits devuelve solo los dígitos de s (códigos de cuenta PUC, NIT, CIIU).
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContainsAny indica si el texto normalizado en mayúsculas contiene alguna de las palabras clave.
// Las palabras clave se normalizan igual, por lo que "Fleté" y "FLETE" son equivalentes.
func ContainsAny(s string, keywords ...string) bool {
	t := Upper(s)
	if t == "" {
		return false
	}
	for _, k := range keywords {
		if k = Upper(k); k != "" && strings.Contains(t, k) {
			return true
		}
	}
	return false
}

func identity(s string) string { return s }

// fixpoint aplica el pipeline hasta que el resultado no cambie.
// Algunas runas solo cambian de caja después de perder la tilde (ej. "ǰ" → "j" → "J").
func fixpoint(s string, foldCase func(string) string) string {
	out := pipeline(s, foldCase)
	for i := 1; i < maxPasses; i++ {
		next := pipeline(out, foldCase)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func pipeline(s string, foldCase func(string) string) string {
	if s == "" {
		return ""
	}
	s = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)
	s = stripMarks(s)
	s = foldCase(s)
	return strings.Join(strings.Fields(s), " ")
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
