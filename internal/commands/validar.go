package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/contabilizador/internal/application/dto"
)

func newValidarCommand(opts *globalOptions) *cobra.Command {
	var (
		lineasPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "validar",
		Short: "Valida balance y cuentas de un asiento editado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readInput(lineasPath)
			if err != nil {
				return err
			}
			var in dto.ValidarAsientoRequest
			if err := json.Unmarshal(raw, &in); err != nil {
				// También se acepta la lista de líneas sin envolver.
				if errList := json.Unmarshal(raw, &in.Lineas); errList != nil {
					return fmt.Errorf("lineas %s: %w", lineasPath, err)
				}
			}

			app, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			out, err := app.AsientoUC.Validar(cmd.Context(), in)
			if err != nil {
				return err
			}
			if asJSON {
				err = writeJSON(cmd.OutOrStdout(), out)
			} else {
				err = writeValidacion(cmd.OutOrStdout(), out)
			}
			if err != nil {
				return err
			}
			if !out.Balance.Cuadra {
				return ErrUnbalanced
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lineasPath, "lineas", "", "JSON con las líneas editadas (- para stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "salida JSON")
	_ = cmd.MarkFlagRequired("lineas")

	return cmd
}
