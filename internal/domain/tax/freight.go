package tax

import (
	"regexp"
	"strings"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

// reRouteSeparator separadores aceptados en "Origen-Destino": flechas, guion, " a ", barra, coma.
var reRouteSeparator = regexp.MustCompile(`\s*(?:->|→|-|/|,)\s*|\s+A\s+`)

// IsFreightInvoice detecta facturas de fletes/transporte por palabras clave en la descripción
// y el nombre del proveedor.
func IsFreightInvoice(description, supplier string) bool {
	return textnorm.ContainsAny(description+" "+supplier, freightKeywords...)
}

// ExtractOrigin devuelve el primer tramo (ORIGEN) del campo origen-destino, en mayúsculas y
// sin tildes, o "" si no se puede determinar.
func ExtractOrigin(originDest string) string {
	t := textnorm.Upper(originDest)
	if t == "" {
		return ""
	}
	for _, part := range reRouteSeparator.Split(t, -1) {
		if p := strings.TrimSpace(part); p != "" {
			return p
		}
	}
	return ""
}

// ResolveCityForICA ciudad efectiva para la territorialidad del ICA. En fletes el impuesto se
// causa en el municipio de ORIGEN del viaje, no en el domicilio del transportador; si el
// origen no se puede leer, decidable es false y no se practica reteICA.
func ResolveCityForICA(f entity.InvoiceFields) (city string, decidable bool) {
	if IsFreightInvoice(f.Description, f.Supplier) {
		origin := ExtractOrigin(f.OriginDest)
		return origin, origin != ""
	}
	return f.City, true
}
