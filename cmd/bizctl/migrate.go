package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Bizboard-api/internal/infrastructure/postgres"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			pool, err := openPool(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := postgres.Migrate(cmd.Context(), pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				log.Info().Msg("esquema al día, nada que aplicar")
				return nil
			}
			log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
			return nil
		},
	}
}
