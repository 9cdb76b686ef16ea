package refdata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

// textEncoding codificación candidata para archivos exportados de hojas de cálculo.
type textEncoding struct {
	name   string
	enc    encoding.Encoding
	accept func(raw []byte) bool
}

// csvEncodings orden de prueba: los exportes de Excel en Windows suelen venir en latin-1/cp1252.
// Un archivo UTF-8 válido con caracteres no ASCII no se decodifica como un solo byte.
var csvEncodings = []textEncoding{
	{"latin-1", charmap.ISO8859_1, singleByteCandidate},
	{"cp1252", charmap.Windows1252, singleByteCandidate},
	{"utf-8-sig", unicode.UTF8BOM, utf8.Valid},
	{"utf-8", unicode.UTF8, utf8.Valid},
}

func singleByteCandidate(raw []byte) bool {
	return !utf8.Valid(raw) || isASCII(raw)
}

func isASCII(raw []byte) bool {
	for _, b := range raw {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// readCSVWithFallback decodifica raw probando las codificaciones en orden y acepta la primera
// cuyo encabezado satisface check. Devuelve encabezado, filas y la codificación usada.
func readCSVWithFallback(raw []byte, check func(header []string) error) (header []string, rows [][]string, enc string, err error) {
	var lastErr error
	for _, e := range csvEncodings {
		if !e.accept(raw) {
			continue
		}
		text, _, decErr := transform.Bytes(e.enc.NewDecoder(), raw)
		if decErr != nil {
			lastErr = fmt.Errorf("%s: %w", e.name, decErr)
			continue
		}
		header, rows, parseErr := parseCSV(text)
		if parseErr != nil {
			lastErr = fmt.Errorf("%s: %w", e.name, parseErr)
			continue
		}
		if checkErr := check(header); checkErr != nil {
			lastErr = fmt.Errorf("%s: %w", e.name, checkErr)
			continue
		}
		return header, rows, e.name, nil
	}
	if lastErr == nil {
		lastErr = errors.New("ninguna codificación aplicable")
	}
	return nil, nil, "", lastErr
}

// parseCSV lee el CSV detectando el separador en la primera línea (coma, punto y coma,
// tabulador o barra). Tolera filas de longitud variable.
func parseCSV(text []byte) (header []string, rows [][]string, err error) {
	text = bytes.TrimPrefix(text, []byte("\ufeff"))
	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if header == nil {
			header = rec
			continue
		}
		if blankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("archivo vacío")
	}
	return header, rows, nil
}

func sniffDelimiter(text []byte) rune {
	first := string(text)
	if i := strings.IndexAny(first, "\r\n"); i >= 0 {
		first = first[:i]
	}
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(first, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// headerKey normaliza un encabezado para compararlo: minúsculas, sin tildes, sin espacios
// ni guiones bajos ("Tarifa por mil" → "tarifapormil").
func headerKey(s string) string {
	return strings.NewReplacer(" ", "", "_", "").Replace(textnorm.Lower(s))
}

// columnIndex devuelve el índice de la primera clave candidata presente en el encabezado.
func columnIndex(header []string, keys ...string) int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if _, dup := idx[k]; !dup {
			idx[k] = i
		}
	}
	for _, k := range keys {
		if i, ok := idx[k]; ok {
			return i
		}
	}
	return -1
}

// columnContaining devuelve la primera columna cuyo encabezado normalizado contiene todas las agujas.
func columnContaining(header []string, needles ...string) int {
	for i, h := range header {
		k := textnorm.Lower(h)
		match := true
		for _, n := range needles {
			if !strings.Contains(k, n) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
