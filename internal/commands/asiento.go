package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/contabilizador/internal/application/dto"
)

func newAsientoCommand(opts *globalOptions) *cobra.Command {
	var (
		camposPath string
		cls        dto.ClasificacionRequest
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "asiento",
		Short: "Construye el asiento de una factura extraída",
		Long: "Lee el JSON plano de campos de la factura, aplica IVA, retefuente, reteICA, " +
			"bomberil y fomento arrocero, y cierra con la cuenta por pagar.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			campos, err := readCampos(camposPath)
			if err != nil {
				return err
			}
			app, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			out, err := app.AsientoUC.Contabilizar(cmd.Context(), dto.CreateAsientoRequest{Campos: campos, Clasificacion: cls})
			if err != nil {
				return err
			}
			if asJSON {
				err = writeJSON(cmd.OutOrStdout(), out)
			} else {
				err = writeAsiento(cmd.OutOrStdout(), out)
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

	f := cmd.Flags()
	f.StringVar(&camposPath, "campos", "", "JSON con los campos extraídos de la factura (- para stdin)")
	f.StringVar(&cls.Cuenta, "cuenta", "", "cuenta PUC débito principal")
	f.StringVar(&cls.Nombre, "nombre", "", "nombre de la cuenta débito")
	f.StringVar(&cls.CategoriaRetencion, "categoria", "", `categoría de retención (ej. "COMPRAS 2.5%")`)
	f.StringVar(&cls.TipoTransaccion, "tipo", "bienes", "tipo de transacción: bienes o servicios")
	f.BoolVar(&asJSON, "json", false, "salida JSON")
	_ = cmd.MarkFlagRequired("campos")
	_ = cmd.MarkFlagRequired("cuenta")

	return cmd
}

func readCampos(path string) (map[string]any, error) {
	raw, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var campos map[string]any
	if err := json.Unmarshal(raw, &campos); err != nil {
		return nil, fmt.Errorf("campos %s: %w", path, err)
	}
	return campos, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return readAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leyendo %s: %w", path, err)
	}
	return raw, nil
}
