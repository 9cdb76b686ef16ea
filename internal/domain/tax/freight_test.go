package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/internal/domain/tax"
)

func TestIsFreightInvoice(t *testing.T) {
	assert.True(t, tax.IsFreightInvoice("FLETE BOGOTA - IBAGUE", ""))
	assert.True(t, tax.IsFreightInvoice("", "Transportes del Tolima SAS"))
	assert.True(t, tax.IsFreightInvoice("Acarreo de bultos", ""))
	assert.False(t, tax.IsFreightInvoice("arroz paddy", "Molino La Esperanza"))
}

func TestExtractOrigin(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bogotá → Ibagué", "BOGOTA"},
		{"Bogotá -> Ibagué", "BOGOTA"},
		{"Espinal - Ibagué", "ESPINAL"},
		{"Neiva a Ibagué", "NEIVA"},
		{"Girardot/Ibagué", "GIRARDOT"},
		{"Purificación, Tolima", "PURIFICACION"},
		{" - Ibagué", "IBAGUE"},
		{"Ibagué", "IBAGUE"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tax.ExtractOrigin(tt.in), tt.in)
	}
}

func TestResolveCityForICA_FleteUsaOrigen(t *testing.T) {
	f := entity.InvoiceFields{
		Description: "FLETE BOGOTA - IBAGUE",
		OriginDest:  "Bogotá → Ibagué",
		City:        "Ibagué",
	}
	city, ok := tax.ResolveCityForICA(f)
	assert.True(t, ok)
	assert.Equal(t, "BOGOTA", city)
}

func TestResolveCityForICA_FleteSinOrigen(t *testing.T) {
	f := entity.InvoiceFields{Description: "Servicio de transporte", City: "Ibagué"}
	city, ok := tax.ResolveCityForICA(f)
	assert.False(t, ok)
	assert.Empty(t, city)
}

func TestResolveCityForICA_NoFlete(t *testing.T) {
	f := entity.InvoiceFields{Description: "papelería", City: "Ibagué", OriginDest: "Bogotá - Cali"}
	city, ok := tax.ResolveCityForICA(f)
	assert.True(t, ok)
	assert.Equal(t, "Ibagué", city)
}
