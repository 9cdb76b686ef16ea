// Package commands implementa la CLI contabilizar.
package commands

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jhoicas/contabilizador/internal/bootstrap"
	"github.com/jhoicas/contabilizador/pkg/config"
	"github.com/jhoicas/contabilizador/pkg/logger"
)

// ErrUnbalanced el asiento mostrado no cuadra; la CLI termina con estado 1.
var ErrUnbalanced = errors.New("el asiento no cuadra")

type globalOptions struct {
	envFile  string
	logLevel string
	tarifas  string
	pares    string
	puc      string
}

// NewRootCommand crea el comando raíz con todos los subcomandos registrados.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "contabilizar",
		Short: "Contabiliza facturas de proveedor con retenciones colombianas",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", "", "archivo .env a cargar antes de la configuración")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "nivel de log (trace, debug, info, warn, error)")
	pf.StringVar(&opts.tarifas, "tarifas", "", "tabla de tarifas ICA (CSV o XLSX); reemplaza TARIFAS_ICA_PATH")
	pf.StringVar(&opts.pares, "pares", "", "CSV de pares débito → CxP; reemplaza PARES_CXP_PATH")
	pf.StringVar(&opts.puc, "puc", "", "XLSX del catálogo PUC; reemplaza PUC_CATALOGO_PATH")

	rootCmd.AddCommand(newAsientoCommand(opts))
	rootCmd.AddCommand(newValidarCommand(opts))
	rootCmd.AddCommand(newTokenCommand(opts))
	rootCmd.AddCommand(newCategoriasCommand())

	return rootCmd
}

// loadConfig carga el .env indicado y luego la configuración con los reemplazos de rutas.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.tarifas != "" {
		cfg.Reference.ICATariffsPath = o.tarifas
	}
	if o.pares != "" {
		cfg.Reference.PayablePairPath = o.pares
	}
	if o.puc != "" {
		cfg.Reference.PUCCatalogPath = o.puc
	}
	return cfg, nil
}

// setup construye las dependencias. Los logs van a stderr para no mezclarse con la salida.
func (o *globalOptions) setup(cmd *cobra.Command) (*bootstrap.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: "production", Level: o.logLevel, Output: cmd.ErrOrStderr()})
	return bootstrap.New(cmd.Context(), cfg, log)
}
