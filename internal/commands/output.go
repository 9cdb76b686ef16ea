package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/application/dto"
)

func readAll(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leyendo stdin: %w", err)
	}
	return raw, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeAsiento tabla alineada de líneas seguida de balance, cuentas inválidas y advertencias.
func writeAsiento(w io.Writer, out *dto.AsientoResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CUENTA\tNOMBRE\tDÉBITO\tCRÉDITO\tTERCERO\t")
	for _, l := range out.Lineas {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", l.Account, truncate(l.Name, 48), amount(l.Debit), amount(l.Credit), l.ThirdParty)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	writeBalance(w, out.Balance)
	writeList(w, "Cuentas fuera del catálogo", out.CuentasInvalidas)
	if out.Diagnostico != "" {
		fmt.Fprintf(w, "Catálogo: %s\n", out.Diagnostico)
	}
	writeList(w, "Advertencias", out.Advertencias)
	return nil
}

func writeValidacion(w io.Writer, out *dto.ValidacionResponse) error {
	writeBalance(w, out.Balance)
	writeList(w, "Cuentas fuera del catálogo", out.CuentasInvalidas)
	if out.Diagnostico != "" {
		fmt.Fprintf(w, "Catálogo: %s\n", out.Diagnostico)
	}
	return nil
}

func writeBalance(w io.Writer, b dto.BalanceResponse) {
	estado := "CUADRA"
	if !b.Cuadra {
		estado = "NO CUADRA"
	}
	fmt.Fprintf(w, "Débitos: %s  Créditos: %s  Diferencia: %s  [%s]\n",
		b.TotalDebito.StringFixed(2), b.TotalCredito.StringFixed(2), b.Diferencia.StringFixed(2), estado)
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func amount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
