// Package dian contiene utilidades de identificación tributaria de la DIAN (Colombia).
package dian

import (
	"fmt"
	"strings"
	"unicode"
)

// pesos para el cálculo del dígito de verificación NIT (Orden Administrativa 4 de 1989, DIAN).
// Se aplican a los 9 primeros dígitos del NIT, de izquierda a derecha.
var nitWeights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// ValidateNITVerificationDigit valida que el NIT (con o sin puntos/guiones) tenga
// un dígito de verificación correcto según el algoritmo módulo 11 de la DIAN.
// taxID puede ser "123456789-1", "123.456.789-1" o "1234567891".
func ValidateNITVerificationDigit(taxID string) error {
	digits := extractDigits(taxID)
	if len(digits) != 10 {
		return fmt.Errorf("dian: NIT con dígito de verificación debe tener 10 dígitos, se recibieron %d", len(digits))
	}
	expected := verificationDigit(digits[:9])
	if digits[9] != expected {
		return fmt.Errorf("dian: dígito de verificación del NIT inválido: esperado %c, recibido %c", expected, digits[9])
	}
	return nil
}

// FormatNIT normaliza un NIT de persona jurídica a "900123456-8". Acepta 9 dígitos (calcula
// el DV) o 10 con DV válido; ok es false para cualquier otra cosa (cédulas, DV errado, texto).
func FormatNIT(taxID string) (string, bool) {
	digits := extractDigits(taxID)
	switch len(digits) {
	case 9:
		return fmt.Sprintf("%s-%c", digits, verificationDigit(digits)), true
	case 10:
		if ValidateNITVerificationDigit(string(digits)) != nil {
			return "", false
		}
		return fmt.Sprintf("%s-%c", digits[:9], digits[9]), true
	default:
		return "", false
	}
}

func verificationDigit(base []byte) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * nitWeights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return byte('0' + remainder)
	}
	return byte('0' + (11 - remainder))
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			out = append(out, byte(r))
		}
	}
	return out
}

// HasVerificationDigit indica si el texto trae un dígito de verificación separado por guion
// ("900123456-8"). Una cédula de 10 dígitos sin guion no lo tiene.
func HasVerificationDigit(taxID string) bool {
	i := strings.LastIndex(taxID, "-")
	if i < 0 {
		return false
	}
	return len(extractDigits(taxID[:i])) == 9 && len(extractDigits(taxID[i+1:])) == 1
}
