package money_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/contabilizador/pkg/money"
)

func TestParse_Tolerante(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "0"},
		{"vacío", "", "0"},
		{"texto", "no aplica", "0"},
		{"miles con coma", "5,950,000.00", "5950000"},
		{"miles con punto", "1.271.000", "1271000"},
		{"signo pesos", "$ 190,000", "190000"},
		{"coma decimal colombiana", "5.950.000,00", "5950000"},
		{"coma decimal con centavos", "$ 1.271.000,50", "1271000.5"},
		{"un punto de miles y coma decimal", "950.000,00", "950000"},
		{"solo coma decimal", "950000,5", "950000.5"},
		{"una coma de miles", "1,271", "1271"},
		{"punto decimal tras comas", "1,271,000.75", "1271000.75"},
		{"dos comas ilegible", "1,2,3.4.5", "0"},
		{"float", 950000.5, "950000.5"},
		{"int", 25000, "25000"},
		{"json.Number", json.Number("75000"), "75000"},
		{"decimal", decimal.NewFromInt(7), "7"},
		{"NaN", math.NaN(), "0"},
		{"negativo", "-10", "-10"},
		{"tipo raro", []int{1}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Parse(tt.in).String())
		})
	}
}

func TestParseNonNegative(t *testing.T) {
	assert.True(t, money.ParseNonNegative("-10").IsZero())
	assert.Equal(t, "10", money.ParseNonNegative("10").String())
}

func TestSumPositiveQuantities(t *testing.T) {
	assert.Equal(t, "35000.5", money.SumPositiveQuantities("12,500\n22,500.50\n0\n-3\nabc\n").String())
	assert.Equal(t, "300", money.SumPositiveQuantities([]any{100.0, "200", -5}).String())
	assert.Equal(t, "42", money.SumPositiveQuantities(42).String())
	assert.True(t, money.SumPositiveQuantities("").IsZero())
	assert.True(t, money.SumPositiveQuantities(nil).IsZero())
}
