// Package bootstrap arma el caso de uso de asientos a partir de la configuración; lo
// comparten el servidor HTTP y la CLI.
package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/contabilizador/internal/application/accounting"
	"github.com/jhoicas/contabilizador/internal/domain/repository"
	"github.com/jhoicas/contabilizador/internal/infrastructure/pdf"
	"github.com/jhoicas/contabilizador/internal/infrastructure/postgres"
	"github.com/jhoicas/contabilizador/internal/infrastructure/refdata"
	"github.com/jhoicas/contabilizador/pkg/config"
	"github.com/jhoicas/contabilizador/pkg/logger"
)

// App dependencias ya construidas. Close libera el pool de PostgreSQL si se abrió.
type App struct {
	AsientoUC *accounting.AsientoUseCase
	pool      *pgxpool.Pool
}

// Close libera recursos.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// New construye tablas de referencia, motor, validador y generador de comprobantes.
// Con base de datos configurada el catálogo PUC sale de puc_cuentas; si no, del XLSX.
// Las tablas se cargan en el primer uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	app := &App{}

	var catalog repository.AccountCatalogRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		app.pool = pool
		catalog = postgres.NewPUCCatalogRepository(pool)
		log.Info().Msg("catálogo PUC desde PostgreSQL")
	} else {
		catalog = refdata.NewPUCCatalog(cfg.Reference.PUCCatalogPath, cfg.Reference.PUCSheet)
		log.Info().Str("path", cfg.Reference.PUCCatalogPath).Msg("catálogo PUC desde XLSX")
	}

	tariffs := refdata.NewTariffRepository(cfg.Reference.ICATariffsPath, nil)
	pairs := refdata.NewPayablePairRepository(cfg.Reference.PayablePairPath, nil, log)

	builder := accounting.NewEntryBuilder(BuilderConfig(cfg.Accounting), tariffs, pairs, log)
	validator := accounting.NewAccountValidator(catalog, log)
	app.AsientoUC = accounting.NewAsientoUseCase(builder, validator, pdf.NewComprobanteGenerator(cfg.App.Company))
	return app, nil
}

// BuilderConfig traduce la configuración contable al motor.
func BuilderConfig(c config.AccountingConfig) accounting.BuilderConfig {
	return accounting.BuilderConfig{
		ICAMunicipality:        c.ICAMunicipality,
		ICAAccount:             c.ICAAccount,
		BomberilAccount:        c.BomberilAccount,
		PayableFallbackAccount: c.PayableFallbackAccount,
		RetefuenteMinimumBase:  c.RetefuenteMinimumBase,
	}
}
