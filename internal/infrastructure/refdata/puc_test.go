package refdata_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/infrastructure/refdata"
)

func pucWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "PUC.xlsx")
	writeWorkbook(t, path, "PUC", [][]any{
		{"CUENTA ", "DESCRIPCION", "CLASE"},
		{"2205-05", "Proveedores nacionales", "2"},
		{14051001, "Materia prima arroz paddy", "1"},
		{"1405-1001", "Duplicada", "1"},
		{"", "Fila sin código", ""},
		{" 2408 0501 ", "IVA descontable por compras 19%", "2"},
	})
	return path
}

func TestLoadPUCCatalog(t *testing.T) {
	accounts, err := refdata.LoadPUCCatalog(context.Background(), pucWorkbook(t), "")
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "14051001", accounts[0].Code)
	assert.Equal(t, "Materia prima arroz paddy", accounts[0].Description)
	assert.Equal(t, "220505", accounts[1].Code)
	assert.Equal(t, "2", accounts[1].Class)
	assert.Equal(t, "24080501", accounts[2].Code)
}

func TestLoadPUCCatalog_Errores(t *testing.T) {
	_, err := refdata.LoadPUCCatalog(context.Background(), pucWorkbook(t), "OTRA")
	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))

	_, err = refdata.LoadPUCCatalog(context.Background(), filepath.Join(t.TempDir(), "no.xlsx"), "PUC")
	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))

	path := filepath.Join(t.TempDir(), "sin_cuenta.xlsx")
	writeWorkbook(t, path, "PUC", [][]any{{"CODIGO", "NOMBRE"}, {"1105", "Caja"}})
	_, err = refdata.LoadPUCCatalog(context.Background(), path, "PUC")
	assert.True(t, errors.Is(err, domain.ErrMissingColumn))
}

func TestPUCCatalog_Codes(t *testing.T) {
	catalog := refdata.NewPUCCatalog(pucWorkbook(t), "PUC")
	codes, err := catalog.Codes(context.Background())
	require.NoError(t, err)
	assert.Contains(t, codes, "220505")
	assert.Contains(t, codes, "14051001")
	assert.NotContains(t, codes, "2205")
}
