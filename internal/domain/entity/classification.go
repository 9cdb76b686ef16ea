package entity

import (
	"strings"

	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

// Tipos de transacción que entrega el clasificador.
const (
	TransactionServices = "servicios"
	TransactionGoods    = "bienes"
)

// Classification resultado del clasificador externo (modelo de lenguaje). Es entrada no
// confiable: la categoría de retención es texto libre hasta que el motor la normaliza.
type Classification struct {
	DebitAccount      string
	DebitAccountName  string
	RetentionCategory string
	TransactionType   string
}

// Normalized limpia el código de cuenta (sin guiones ni espacios) y el tipo de transacción.
func (c Classification) Normalized() Classification {
	c.DebitAccount = CleanAccountCode(c.DebitAccount)
	c.DebitAccountName = strings.TrimSpace(c.DebitAccountName)
	c.TransactionType = NormalizeTransactionType(c.TransactionType)
	return c
}

// CleanAccountCode quita guiones y espacios de un código PUC.
func CleanAccountCode(code string) string {
	return strings.TrimSpace(strings.NewReplacer("-", "", " ", "").Replace(code))
}

// NormalizeTransactionType reduce el tipo libre a "servicios" o "bienes".
func NormalizeTransactionType(s string) string {
	switch textnorm.Lower(s) {
	case "servicio", "servicios", "service", "services":
		return TransactionServices
	default:
		return TransactionGoods
	}
}
