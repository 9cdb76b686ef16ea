package accounting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contabilizador/internal/application/accounting"
	"github.com/jhoicas/contabilizador/internal/application/dto"
	"github.com/jhoicas/contabilizador/internal/application/ports"
	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/pkg/logger"
)

func newUseCase() *accounting.AsientoUseCase {
	catalog := catalogOf("14051001", "24080501", "23657004", "246005")
	return accounting.NewAsientoUseCase(newBuilder(nil, nil), accounting.NewAccountValidator(catalog, logger.Nop()), nil)
}

func TestContabilizar_ArrozPaddy(t *testing.T) {
	req := dto.CreateAsientoRequest{
		Campos: map[string]any{
			"Subtotal":           "5.000.000",
			"Descripcion":        "Arroz paddy",
			"Regimen Tributario": "Responsable de IVA",
			"Ciudad":             "Bogotá",
			"IVA Valor":          950000.0,
			"Total Factura":      "5,950,000",
			"Proveedor":          "Molino",
			"NIT Proveedor":      "900123456",
		},
		Clasificacion: dto.ClasificacionRequest{
			Cuenta:             "14051001",
			Nombre:             "Arroz paddy",
			CategoriaRetencion: "COMPRAS 1.5%",
			TipoTransaccion:    "bienes",
		},
	}
	res, err := newUseCase().Contabilizar(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Len(t, res.Lineas, 5)
	assert.True(t, res.Balance.Cuadra)
	assert.Equal(t, "5950000", res.Balance.TotalDebito.String())
	assert.Equal(t, []string{"220505"}, res.CuentasInvalidas)
	assert.Len(t, res.Trazas, 6)
}

func TestContabilizar_SinCuenta(t *testing.T) {
	_, err := newUseCase().Contabilizar(context.Background(), dto.CreateAsientoRequest{Campos: map[string]any{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidar_AsientoEditado(t *testing.T) {
	req := dto.ValidarAsientoRequest{Lineas: []dto.LineaEditada{
		{Cuenta: 14051001.0, Debito: "1,000,000", Credito: ""},
		{Cuenta: "2205-05", Debito: nil, Credito: 1000000.0},
		{Cuenta: "24080501", Debito: "no aplica", Credito: 0.0},
	}}
	res, err := newUseCase().Validar(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Balance.Cuadra)
	assert.Equal(t, []string{"220505"}, res.CuentasInvalidas)

	req.Lineas[1].Credito = "900000"
	res, err = newUseCase().Validar(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Balance.Cuadra)
	assert.Equal(t, "100000", res.Balance.Diferencia.String())

	_, err = newUseCase().Validar(context.Background(), dto.ValidarAsientoRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

type fakeComprobantes struct {
	header  ports.ComprobanteHeader
	asiento *entity.Asiento
}

func (f *fakeComprobantes) GenerateComprobante(_ context.Context, h ports.ComprobanteHeader, a *entity.Asiento) ([]byte, error) {
	f.header, f.asiento = h, a
	return []byte("%PDF-1.3"), nil
}

func TestComprobante(t *testing.T) {
	gen := &fakeComprobantes{}
	uc := accounting.NewAsientoUseCase(newBuilder(nil, nil), accounting.NewAccountValidator(nil, logger.Nop()), gen)

	pdf, err := uc.Comprobante(context.Background(), dto.CreateAsientoRequest{
		Campos: map[string]any{
			"Subtotal":      "1.000.000",
			"IVA Valor":     "190.000",
			"Total Factura": "1.190.000",
			"Proveedor":     "Molinos del Tolima",
			"NIT Proveedor": "900123456",
		},
		Clasificacion: dto.ClasificacionRequest{Cuenta: "51350501", TipoTransaccion: "servicios"},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(pdf))
	assert.Equal(t, "Molinos del Tolima", gen.header.Proveedor)
	assert.Equal(t, "900123456-8", gen.header.Tercero)
	assert.Equal(t, "1190000", gen.header.TotalFactura.String())
	require.NotNil(t, gen.asiento)
	assert.NotEmpty(t, gen.asiento.Lines)
}

func TestComprobante_SinGenerador(t *testing.T) {
	_, err := newUseCase().Comprobante(context.Background(), dto.CreateAsientoRequest{
		Clasificacion: dto.ClasificacionRequest{Cuenta: "51350501"},
	})
	require.Error(t, err)
}
