package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contabilizador/internal/domain/tax"
)

func TestComputeRetefuente_Calculada(t *testing.T) {
	res := tax.ComputeRetefuente(tax.RetefuenteInput{
		Category: tax.CategoryCompras15,
		Base:     decimal.NewFromInt(5_000_000),
		Regime:   "Responsable de IVA",
	})
	require.NotNil(t, res.Line)
	assert.Equal(t, "23657004", res.Line.Account)
	assert.Equal(t, "COMPRAS 1.5%", res.Line.Name)
	assert.Equal(t, "75000", res.Line.Credit.String())
	assert.Equal(t, "75000", res.Computed.String())
}

func TestComputeRetefuente_BaseMinimaEstricta(t *testing.T) {
	in := tax.RetefuenteInput{Category: tax.CategoryServicios4, Base: decimal.NewFromInt(1_271_000)}
	res := tax.ComputeRetefuente(in)
	assert.Nil(t, res.Line, "base igual a la mínima no retiene")
	assert.True(t, res.Computed.IsZero())

	in.Base = decimal.NewFromInt(1_271_001)
	res = tax.ComputeRetefuente(in)
	require.NotNil(t, res.Line)
	assert.Equal(t, "50840.04", res.Computed.String())
}

func TestComputeRetefuente_BaseMinimaConfigurada(t *testing.T) {
	res := tax.ComputeRetefuente(tax.RetefuenteInput{
		Category:    tax.CategoryServicios1,
		Base:        decimal.NewFromInt(200_000),
		MinimumBase: decimal.NewFromInt(100_000),
	})
	require.NotNil(t, res.Line)
	assert.Equal(t, "2000", res.Computed.String())
}

func TestComputeRetefuente_Exenciones(t *testing.T) {
	base := decimal.NewFromInt(5_000_000)
	tests := []struct {
		name     string
		category tax.RetentionCategory
		regime   string
	}{
		{"autorretenedor de renta", tax.CategoryCompras25, "Autorretenedor de renta"},
		{"régimen simple", tax.CategoryCompras25, "Régimen simple"},
		{"categoría desconocida", tax.CategoryNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tax.ComputeRetefuente(tax.RetefuenteInput{Category: tt.category, Base: base, Regime: tt.regime})
			assert.Nil(t, res.Line)
			assert.True(t, res.Computed.IsZero())
			assert.NotEmpty(t, res.Reason)
		})
	}
}

func TestComputeRetefuente_Declarada(t *testing.T) {
	res := tax.ComputeRetefuente(tax.RetefuenteInput{
		Category: tax.CategoryServicios2,
		Declared: decimal.NewFromInt(40_000),
		Base:     decimal.NewFromInt(2_000_000),
	})
	require.NotNil(t, res.Line)
	assert.Equal(t, "23652503", res.Line.Account)
	assert.Equal(t, "40000", res.Line.Credit.String())
	assert.True(t, res.Computed.IsZero(), "el valor declarado no reduce la cuenta por pagar")

	res = tax.ComputeRetefuente(tax.RetefuenteInput{Declared: decimal.NewFromInt(15_000)})
	require.NotNil(t, res.Line)
	assert.Equal(t, tax.RetefuenteDefault, res.Line.Account)
	assert.Equal(t, tax.RetefuenteDefaultName, res.Line.Name)
}
