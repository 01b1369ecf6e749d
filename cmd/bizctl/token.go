package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Bizboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bizboard-api/pkg/jwt"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <email>",
		Short: "Emite un token JWT para el usuario indicado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("config: JWT_SECRET es obligatorio")
			}
			minutes, _ := cmd.Flags().GetInt("minutes")
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}

			pool, err := openPool(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			email := strings.ToLower(strings.TrimSpace(args[0]))
			user, err := postgres.NewUserRepository(pool).GetByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("usuario %s no encontrado", email)
			}
			business, err := postgres.NewBusinessRepository(pool).GetByUserID(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			if business == nil {
				return fmt.Errorf("el usuario %s no tiene negocio", email)
			}

			tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Principal{
				UserID:     user.ID,
				BusinessID: business.ID,
				Email:      user.Email,
				IsAdmin:    user.IsAdmin,
			}, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().Int("minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}
