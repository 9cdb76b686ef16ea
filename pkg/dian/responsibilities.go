package dian

import (
	"regexp"
	"strings"
)

// Tabla 17 - Tipos de Responsabilidad Fiscal del RUT (Anexo Técnico 1.9 - 13.2.7.1).
// Las facturas de proveedor suelen imprimirlas junto a la leyenda tributaria.
const (
	TaxLevelGranContribuyente  = "O-13"    // Gran contribuyente
	TaxLevelAutorretenedor     = "O-15"    // Autorretenedor
	TaxLevelAgenteRetencionIVA = "O-23"    // Agente de retención en el impuesto sobre las ventas
	TaxLevelRegimenSimple      = "O-47"    // Régimen Simple de Tributación – SIMPLE
	TaxLevelResponsableIVA     = "O-48"    // Responsable de IVA
	TaxLevelNoResponsableIVA   = "O-49"    // No responsable de IVA
	TaxLevelNoAplicaOtros      = "R-99-PN" // No Aplica - Otros
)

// Solo se reconoce la grafía con letra O: "0-15" aparece también en plazos ("0-15 días").
var reResponsibility = regexp.MustCompile(`(?i)\b(O\s?-\s?(13|15|23|47|48|49)|R-99-PN)\b`)

// ResponsibilityCodes extrae los códigos de responsabilidad fiscal presentes en una leyenda
// tributaria, normalizados ("o -15" → "O-15") y sin repetir.
func ResponsibilityCodes(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range reResponsibility.FindAllStringSubmatch(text, -1) {
		code := strings.ToUpper(strings.ReplaceAll(m[1], " ", ""))
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}

// HasResponsibility indica si la leyenda incluye el código de responsabilidad indicado.
func HasResponsibility(text, code string) bool {
	for _, c := range ResponsibilityCodes(text) {
		if c == code {
			return true
		}
	}
	return false
}
