package tax

import (
	"regexp"

	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

var (
	reCIIULabeled    = regexp.MustCompile(`(?i)(?:\bCIIU\b|\bActividad\s*Econ(?:o?mica)?)\D{0,10}(\d{4})(?:\D|$)`)
	reCIIUStandalone = regexp.MustCompile(`(?:^|\D)(\d{4})(?:\D|$)`)
)

// ParseCIIU extrae el código CIIU de 4 dígitos de un texto como
// "Actividad Económica 2511 ... Tarifa 5". Prefiere los dígitos junto a la etiqueta, luego el
// primer bloque aislado de 4 dígitos y por último los 4 primeros dígitos del texto.
func ParseCIIU(activity string) string {
	s := textnorm.Normalize(activity)
	if s == "" {
		return ""
	}
	if m := reCIIULabeled.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := reCIIUStandalone.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if d := textnorm.Digits(s); len(d) >= 4 {
		return d[:4]
	}
	return ""
}
