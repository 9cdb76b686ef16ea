package tax

import (
	"regexp"
	"strings"

	"github.com/jhoicas/contabilizador/pkg/dian"
	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

// Las leyendas tributarias de los proveedores son texto legal libre. Los detectores favorecen
// la precisión: un falso positivo omite una retención obligatoria.

var (
	reNegatedSelfWithholding = regexp.MustCompile(`\bno\b\s*(somos|soy|es)?\s*autor?retened(or|ores)\b`)
	reSelfWithholdingThenNo  = regexp.MustCompile(`\bautor?retened(or|ores)\b.{0,12}\bno\b`)
	reNegatedICAWithholding  = regexp.MustCompile(`\bno\b\s*(somos|soy|es)?\s*(agentes?\s*(de\s*)?)?(autor?retened\w*|retened\w*|retencion)\s*(de|en)\s*ica\b`)
)

// IsSelfWithholdingRenta indica si el proveedor declara ser autorretenedor de renta.
// "autorretenedor de ICA" no cuenta y las negaciones ("no somos autorretenedores") dan false.
// La responsabilidad RUT O-15 basta.
func IsSelfWithholdingRenta(regime string) bool {
	s := textnorm.Lower(regime)
	if s == "" {
		return false
	}
	if dian.HasResponsibility(regime, dian.TaxLevelAutorretenedor) {
		return true
	}
	if containsAny(s, "autorretenedor de ica", "autoretenedor de ica") {
		return false
	}
	if reNegatedSelfWithholding.MatchString(s) || reSelfWithholdingThenNo.MatchString(s) {
		return false
	}
	return containsAny(s,
		"autorretenedor de renta",
		"autoretenedor de renta",
		"autorretencion a titulo de renta",
		"autorretencion renta",
	)
}

// IsSelfWithholdingICA indica si el proveedor es autorretenedor/agente retenedor de ICA o pide
// expresamente no practicar reteICA. Solo una negación sobre ICA ("no somos retenedores de
// ICA") da false; negar otra retención ("no somos autorretenedores de renta") no la anula.
func IsSelfWithholdingICA(regime string) bool {
	s := textnorm.Lower(regime)
	if s == "" {
		return false
	}
	if containsAny(s,
		"abstenerse de efectuar retencion de ica",
		"abstenerse de efectuar retencion ica",
		"no efectuar retencion de ica",
		"no practicar reteica",
	) {
		return true
	}
	if reNegatedICAWithholding.MatchString(s) {
		return false
	}
	return containsAny(s,
		"retendedor de ica",
		"retenedor de ica",
		"retenedores de ica",
		"agente retenedor de ica",
		"agente de retencion en ica",
		"agente de retencion de ica",
		"somos autorretenedores de ica",
		"autorretenedor de ica",
		"autoretenedor de ica",
	)
}

// IsSimplifiedRegime indica si el proveedor pertenece al Régimen Simple de Tributación
// (la palabra "simple" o la responsabilidad RUT O-47).
func IsSimplifiedRegime(regime string) bool {
	return strings.Contains(textnorm.Lower(regime), "simple") ||
		dian.HasResponsibility(regime, dian.TaxLevelRegimenSimple)
}

// SupplierInCity indica si el texto de ciudad menciona el municipio (sin tildes ni mayúsculas).
func SupplierInCity(city, municipality string) bool {
	m := textnorm.Lower(municipality)
	return m != "" && strings.Contains(textnorm.Lower(city), m)
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
