package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

func TestWriteSeed(t *testing.T) {
	var b strings.Builder
	err := writeSeed(&b, "PUC.xlsx", []entity.Account{
		{Code: "14051001", Description: "Materia prima arroz paddy", Class: "1"},
		{Code: "220505", Description: "Proveedores d'exterior"},
	})
	require.NoError(t, err)

	sql := b.String()
	assert.Contains(t, sql, "-- Generado desde PUC.xlsx")
	assert.Contains(t, sql, "('14051001', 'Materia prima arroz paddy', '1'),\n")
	assert.Contains(t, sql, "('220505', 'Proveedores d''exterior', NULL)\n")
	assert.Contains(t, sql, "ON CONFLICT (codigo)")
}

func TestWriteSeed_Vacio(t *testing.T) {
	var b strings.Builder
	require.NoError(t, writeSeed(&b, "PUC.xlsx", nil))
	assert.NotContains(t, b.String(), "INSERT")
}

func TestSplitApply(t *testing.T) {
	apply, rest := splitApply([]string{"PUC.xlsx", "--apply", "Hoja1"})
	assert.True(t, apply)
	assert.Equal(t, []string{"PUC.xlsx", "Hoja1"}, rest)

	apply, rest = splitApply(nil)
	assert.False(t, apply)
	assert.Empty(t, rest)
}
