package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/contabilizador/pkg/jwt"
)

// newTokenCommand emite un JWT para probar la API con JWT_SECRET activo.
func newTokenCommand(opts *globalOptions) *cobra.Command {
	var (
		usuario string
		rol     string
		minutos int
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token Bearer para la API (contador o auditor)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rol = strings.ToLower(strings.TrimSpace(rol))
			if rol != jwt.RoleContador && rol != jwt.RoleAuditor {
				return fmt.Errorf("rol %q no reconocido: use %s o %s", rol, jwt.RoleContador, jwt.RoleAuditor)
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET vacío: la API no exige token")
			}
			if usuario == "" {
				usuario = uuid.NewString()
			}
			if minutos <= 0 {
				minutos = cfg.JWT.ExpMinutes
			}

			tok, err := jwt.Generate(cfg.JWT.Secret, usuario, rol, cfg.JWT.Issuer, minutos)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}

	cmd.Flags().StringVar(&usuario, "usuario", "", "identificador del usuario (por defecto un UUID nuevo)")
	cmd.Flags().StringVar(&rol, "rol", jwt.RoleContador, "rol del token: contador o auditor")
	cmd.Flags().IntVar(&minutos, "minutos", 0, "vigencia en minutos (por defecto JWT_EXP_MINUTES)")
	return cmd
}
