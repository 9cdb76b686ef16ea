// seed_puc genera el script SQL que puebla la tabla puc_cuentas a partir del libro XLSX del
// catálogo PUC de la empresa.
//
// Uso: go run ./cmd/seed_puc [--apply] [ruta/PUC.xlsx] [hoja]
// Por defecto usa PUC_CATALOGO_PATH y PUC_HOJA de la configuración.
// Escribe: migrations/002_seed_puc_cuentas.sql. Con --apply además carga las cuentas en la
// base configurada (DATABASE_URL o DB_*) dentro de una transacción.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/internal/infrastructure/postgres"
	"github.com/jhoicas/contabilizador/internal/infrastructure/refdata"
	"github.com/jhoicas/contabilizador/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	apply, args := splitApply(os.Args[1:])
	path, sheet := cfg.Reference.PUCCatalogPath, cfg.Reference.PUCSheet
	if len(args) > 0 {
		path = args[0]
	}
	if len(args) > 1 {
		sheet = args[1]
	}

	ctx := context.Background()
	accounts, err := refdata.LoadPUCCatalog(ctx, path, sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_puc_cuentas.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, filepath.Base(path), accounts); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d cuentas\n", outPath, len(accounts))

	if !apply {
		return
	}
	if !cfg.DB.Enabled() {
		fmt.Fprintln(os.Stderr, "--apply requiere DATABASE_URL o DB_HOST")
		os.Exit(1)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var n int64
	err = postgres.NewTxRunner(pool).RunCatalog(ctx, func(repo *postgres.PUCCatalogRepo) error {
		var err error
		n, err = repo.Upsert(ctx, accounts)
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar puc_cuentas: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("puc_cuentas: %d filas actualizadas\n", n)
}

// splitApply separa la bandera --apply de los argumentos posicionales.
func splitApply(args []string) (apply bool, rest []string) {
	for _, a := range args {
		if a == "--apply" || a == "-apply" {
			apply = true
			continue
		}
		rest = append(rest, a)
	}
	return apply, rest
}

// writeSeed escribe un único INSERT idempotente; las cuentas vienen ordenadas por código.
func writeSeed(w io.Writer, source string, accounts []entity.Account) error {
	var b strings.Builder
	b.WriteString("-- Catálogo PUC de la empresa\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", source)
	if len(accounts) == 0 {
		b.WriteString("-- (catálogo vacío)\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO puc_cuentas (codigo, descripcion, clase) VALUES\n")
	for i, a := range accounts {
		sep := ","
		if i == len(accounts)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', %s)%s\n", a.Code, escapeSQL(a.Description), nullable(a.Class), sep)
	}
	b.WriteString("ON CONFLICT (codigo) DO UPDATE SET descripcion = EXCLUDED.descripcion, clase = EXCLUDED.clase, activa = true;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
