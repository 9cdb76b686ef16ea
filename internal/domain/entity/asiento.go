package entity

import "github.com/shopspring/decimal"

// LedgerLine una línea del asiento. Exactamente uno de Debit/Credit es distinto de cero.
type LedgerLine struct {
	Account    string          `json:"cuenta"`
	Name       string          `json:"nombre"`
	Debit      decimal.Decimal `json:"debito"`
	Credit     decimal.Decimal `json:"credito"`
	QuantityKg decimal.Decimal `json:"cantidad_kg"`
	ThirdParty string          `json:"tercero,omitempty"`
	Detail     string          `json:"detalle,omitempty"`
}

// Asiento comprobante contable de una factura: líneas en orden de construcción más la traza
// de decisiones de cada etapa (por qué se aplicó o no cada retención).
type Asiento struct {
	ID       string       `json:"id"`
	Lines    []LedgerLine `json:"lineas"`
	Warnings []string     `json:"advertencias,omitempty"`
	Trace    []StageTrace `json:"trazas,omitempty"`
}

// StageTrace explicación de una etapa del motor.
type StageTrace struct {
	Stage   string `json:"etapa"`
	Applied bool   `json:"aplicada"`
	Reason  string `json:"motivo"`
}

// Totals suma débitos y créditos.
func (a Asiento) Totals() (debit, credit decimal.Decimal) {
	for _, l := range a.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// DebitLine línea débito sin cantidad en kilos.
func DebitLine(account, name string, amount decimal.Decimal, thirdParty, detail string) LedgerLine {
	return LedgerLine{Account: account, Name: name, Debit: amount.Round(2), ThirdParty: thirdParty, Detail: detail}
}

// CreditLine línea crédito sin cantidad en kilos.
func CreditLine(account, name string, amount decimal.Decimal, thirdParty, detail string) LedgerLine {
	return LedgerLine{Account: account, Name: name, Credit: amount.Round(2), ThirdParty: thirdParty, Detail: detail}
}
