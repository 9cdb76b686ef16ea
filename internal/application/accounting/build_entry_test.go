package accounting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contabilizador/internal/application/accounting"
	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/pkg/logger"
)

func ibagueTariffs() *fakeTariffs {
	return &fakeTariffs{rows: map[string]entity.ICATariff{
		"4923": {
			CIIU:         "4923",
			Rate:         decimal.RequireFromString("0.0083"),
			BomberilRate: decimal.RequireFromString("0.2"),
		},
	}}
}

func newBuilder(tariffs *fakeTariffs, pairs *fakePairs) *accounting.EntryBuilder {
	cfg := accounting.BuilderConfig{RetefuenteMinimumBase: decimal.NewFromInt(1_271_000)}
	if tariffs == nil {
		tariffs = ibagueTariffs()
	}
	if pairs == nil {
		return accounting.NewEntryBuilder(cfg, tariffs, nil, logger.Nop())
	}
	return accounting.NewEntryBuilder(cfg, tariffs, pairs, logger.Nop())
}

func paddyFields() entity.InvoiceFields {
	return entity.FieldsFromMap(map[string]any{
		"Subtotal":           5_000_000.0,
		"Descripcion":        "arroz paddy",
		"Regimen Tributario": "Responsable de IVA",
		"Ciudad":             "Bogotá",
		"IVA Valor":          950_000.0,
		"Total Factura":      5_950_000.0,
		"Retefuente Valor":   0.0,
		"Proveedor":          "Molino El Paddy SAS",
		"NIT Proveedor":      "900123456",
		"Cantidad":           "12,500\n13,000\n0",
	})
}

func paddyClassification() entity.Classification {
	return entity.Classification{
		DebitAccount:      "14051001",
		DebitAccountName:  "Materia prima arroz paddy",
		RetentionCategory: "COMPRAS 1.5%",
		TransactionType:   "bienes",
	}
}

func assertBalanced(t *testing.T, a *entity.Asiento) {
	t.Helper()
	res := accounting.ValidateBalance(a.Lines)
	assert.True(t, res.Balanced, "débito %s crédito %s", res.TotalDebit, res.TotalCredit)
}

func TestBuild_ArrozPaddy(t *testing.T) {
	pairs := &fakePairs{pairs: &entity.PayablePairs{
		Exact: map[string]string{"14051001": "22050501"},
		Names: map[string]string{"22050501": "Proveedores nacionales"},
	}}
	a, err := newBuilder(nil, pairs).Build(context.Background(), paddyFields(), paddyClassification())
	require.NoError(t, err)

	_, err = uuid.Parse(a.ID)
	assert.NoError(t, err)

	require.Len(t, a.Lines, 5)
	want := []struct {
		account string
		debit   string
		credit  string
	}{
		{"14051001", "5000000", "0"},
		{"24080501", "950000", "0"},
		{"23657004", "0", "75000"},
		{"246005", "0", "25000"},
		{"22050501", "0", "5850000"},
	}
	for i, w := range want {
		assert.Equal(t, w.account, a.Lines[i].Account, "línea %d", i)
		assert.Equal(t, w.debit, a.Lines[i].Debit.String(), "línea %d", i)
		assert.Equal(t, w.credit, a.Lines[i].Credit.String(), "línea %d", i)
	}
	assert.Equal(t, "25500", a.Lines[0].QuantityKg.String())
	assert.True(t, a.Lines[1].QuantityKg.IsZero())
	assert.Equal(t, "Proveedores nacionales - Molino El Paddy SAS - NIT 900123456", a.Lines[4].Name)
	for i, l := range a.Lines {
		assert.Equal(t, "900123456-8", l.ThirdParty, "tercero de la línea %d (%s)", i, l.Account)
	}

	assertBalanced(t, a)
	require.Len(t, a.Trace, 6)
	assert.Equal(t, accounting.StagePrincipal, a.Trace[0].Stage)
	assert.Equal(t, accounting.StagePayable, a.Trace[5].Stage)
	assert.Contains(t, a.Trace[5].Reason, "exact")
	assert.Empty(t, a.Warnings)
}

func TestBuild_ServicioEnIbague(t *testing.T) {
	fields := entity.FieldsFromMap(map[string]any{
		"Subtotal":            "2,000,000",
		"IVA Valor":           "380,000",
		"Total Factura":       "2,380,000",
		"Ciudad":              "Ibagué",
		"Actividad Económica": "CIIU 4923 transporte de carga",
		"Regimen Tributario":  "Responsable de IVA",
		"Descripcion":         "servicio de cargue y descargue",
		"Proveedor":           "Logística del Tolima",
		"NIT Proveedor":       "800987654-4",
	})
	cls := entity.Classification{
		DebitAccount:      "5235-9501",
		DebitAccountName:  "Servicios de cargue",
		RetentionCategory: "SERVICIOS 4%",
		TransactionType:   "Servicios",
	}
	a, err := newBuilder(nil, nil).Build(context.Background(), fields, cls)
	require.NoError(t, err)

	require.Len(t, a.Lines, 6)
	assert.Equal(t, "52359501", a.Lines[0].Account)
	assert.Equal(t, "24080503", a.Lines[1].Account)
	assert.Equal(t, "23652502", a.Lines[2].Account)
	assert.Equal(t, "80000", a.Lines[2].Credit.String())
	assert.Equal(t, "2368050000", a.Lines[3].Account)
	assert.Equal(t, "16600", a.Lines[3].Credit.String())
	assert.Equal(t, "2368400000", a.Lines[4].Account)
	assert.Equal(t, "3320", a.Lines[4].Credit.String())
	assert.Equal(t, "220505", a.Lines[5].Account)
	assert.Equal(t, "2280080", a.Lines[5].Credit.String())
	assert.Equal(t, "Cuentas por pagar - Proveedores - Logística del Tolima - NIT 800987654-4", a.Lines[5].Name)
	assertBalanced(t, a)
}

func TestBuild_ReteICADeclaradaNoSeResta(t *testing.T) {
	fields := entity.FieldsFromMap(map[string]any{
		"Subtotal":            2_000_000.0,
		"Total Factura":       2_000_000.0,
		"Ciudad":              "Ibagué",
		"Actividad Economica": "4923",
		"ReteICA Valor":       16_600.0,
	})
	cls := entity.Classification{DebitAccount: "51359501", RetentionCategory: "XYZ"}
	a, err := newBuilder(nil, nil).Build(context.Background(), fields, cls)
	require.NoError(t, err)

	last := a.Lines[len(a.Lines)-1]
	assert.Equal(t, "1996680", last.Credit.String(), "solo se resta la bomberil calculada")
}

func TestBuild_CategoriaDesconocida(t *testing.T) {
	fields := entity.FieldsFromMap(map[string]any{
		"Subtotal":      2_000_000.0,
		"IVA Valor":     380_000.0,
		"Total Factura": 2_380_000.0,
		"Ciudad":        "Bogotá",
		"Descripcion":   "papelería",
	})
	cls := entity.Classification{DebitAccount: "51352001", RetentionCategory: "XYZ UNKNOWN"}
	a, err := newBuilder(nil, nil).Build(context.Background(), fields, cls)
	require.NoError(t, err)

	for _, l := range a.Lines {
		assert.NotContains(t, []string{"236520", "23657004", "23652501"}, l.Account)
	}
	require.Len(t, a.Lines, 3)
	assert.Equal(t, "2380000", a.Lines[2].Credit.String())
	assert.NotEmpty(t, a.Warnings)
	assertBalanced(t, a)
}

func TestBuild_FletesIncluidosOSeparados(t *testing.T) {
	cls := entity.Classification{DebitAccount: "51359501"}

	fields := entity.FieldsFromMap(map[string]any{
		"Subtotal": 1_000_000.0, "Fletes": 200_000.0, "IVA Valor": 190_000.0, "Total Factura": 1_390_000.0,
	})
	a, err := newBuilder(nil, nil).Build(context.Background(), fields, cls)
	require.NoError(t, err)
	assert.Equal(t, "1200000", a.Lines[0].Debit.String())
	assert.Empty(t, a.Warnings)

	fields = entity.FieldsFromMap(map[string]any{
		"Subtotal": 1_000_000.0, "Fletes": 200_000.0, "IVA Valor": 190_000.0, "Total Factura": 1_190_000.0,
	})
	a, err = newBuilder(nil, nil).Build(context.Background(), fields, cls)
	require.NoError(t, err)
	assert.Equal(t, "1000000", a.Lines[0].Debit.String())
	assert.NotEmpty(t, a.Warnings)
	assertBalanced(t, a)
}

func TestBuild_RetefuenteDeclarada(t *testing.T) {
	fields := entity.FieldsFromMap(map[string]any{
		"Subtotal": 2_000_000.0, "Total Factura": 1_960_000.0, "Retefuente Valor": 40_000.0,
	})
	cls := entity.Classification{DebitAccount: "51359501", RetentionCategory: "SERVICIOS 2%"}
	a, err := newBuilder(nil, nil).Build(context.Background(), fields, cls)
	require.NoError(t, err)

	require.Len(t, a.Lines, 3)
	assert.Equal(t, "23652503", a.Lines[1].Account)
	assert.Equal(t, "40000", a.Lines[1].Credit.String())
	assert.Equal(t, "1960000", a.Lines[2].Credit.String())
	assertBalanced(t, a)
}

func TestBuild_FallaDeTablaNoDetieneElAsiento(t *testing.T) {
	fields := entity.FieldsFromMap(map[string]any{
		"Subtotal": 2_000_000.0, "Total Factura": 2_000_000.0,
		"Ciudad": "Ibagué", "Actividad Economica": "CIIU 4923",
	})
	cls := entity.Classification{DebitAccount: "51359501"}

	for name, tariffs := range map[string]*fakeTariffs{
		"error": {err: domain.ErrReferenceData},
		"panic": {panic: true},
	} {
		t.Run(name, func(t *testing.T) {
			a, err := newBuilder(tariffs, nil).Build(context.Background(), fields, cls)
			require.NoError(t, err)
			require.Len(t, a.Lines, 2)
			assert.Equal(t, "220505", a.Lines[1].Account)
			assert.NotEmpty(t, a.Warnings)
			assert.False(t, a.Trace[3].Applied)
			assertBalanced(t, a)
		})
	}
}

func TestBuild_ParesNoDisponibles(t *testing.T) {
	pairs := &fakePairs{err: errors.New("archivo no encontrado")}
	a, err := newBuilder(nil, pairs).Build(context.Background(), paddyFields(), paddyClassification())
	require.NoError(t, err)

	last := a.Lines[len(a.Lines)-1]
	assert.Equal(t, "220505", last.Account)
	assert.NotEmpty(t, a.Warnings)
	assertBalanced(t, a)
}

func TestBuild_CuentaVacia(t *testing.T) {
	_, err := newBuilder(nil, nil).Build(context.Background(), paddyFields(), entity.Classification{DebitAccount: " - "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBuild_InvarianteDeBalance(t *testing.T) {
	cases := []map[string]any{
		{"Subtotal": 1_500_000.0, "IVA Valor": 285_000.0, "Total Factura": 1_785_000.0, "Ciudad": "Cali"},
		{"Subtotal": 800_000.0, "Total Factura": 800_000.0, "Ciudad": "Ibagué", "Actividad Economica": "4923"},
		{"Subtotal": 3_000_000.0, "IVA Valor": 150_000.0, "Total Factura": 3_150_000.0,
			"Ciudad": "Ibagué", "Actividad Economica": "4923", "Regimen Tributario": "Régimen simple"},
		{"Subtotal": 10_000_000.0, "Total Factura": 10_000_000.0, "Descripcion": "Arroz Paddy Verde", "Ciudad": "Espinal"},
		{"Subtotal": 1_000_000.0, "Fletes": 50_000.0, "Total Factura": 1_050_000.0,
			"Descripcion": "Flete Ibagué - Bogotá", "Origen-Destino": "Ibagué - Bogotá", "Actividad Economica": "4923"},
		{},
	}
	categories := []string{"COMPRAS 2.5%", "SERVICIOS 1%", "", "basura"}
	accounts := []string{"14051001", "51350501", "52350501"}

	b := newBuilder(nil, nil)
	for _, c := range cases {
		for _, cat := range categories {
			for _, acc := range accounts {
				a, err := b.Build(context.Background(), entity.FieldsFromMap(c), entity.Classification{
					DebitAccount: acc, RetentionCategory: cat,
				})
				require.NoError(t, err)
				assertBalanced(t, a)
			}
		}
	}
}

func TestBuild_NITConDigitoInvalido(t *testing.T) {
	fields := entity.FieldsFromMap(map[string]any{
		"Subtotal":      100_000.0,
		"Total Factura": 100_000.0,
		"Proveedor":     "Ferretería La 15",
		"NIT Proveedor": "900123456-1",
	})
	a, err := newBuilder(nil, nil).Build(context.Background(), fields, entity.Classification{DebitAccount: "51359501"})
	require.NoError(t, err)

	require.Len(t, a.Warnings, 1)
	assert.Contains(t, a.Warnings[0], "dígito de verificación")
	assert.Equal(t, "900123456-1", a.Lines[0].ThirdParty, "sin DV válido se conserva el NIT tal como viene")
	assertBalanced(t, a)
}
