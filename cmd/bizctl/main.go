// Command bizctl tareas administrativas: migraciones, datos de demo y emisión de tokens.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jhoicas/Bizboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bizboard-api/pkg/config"
	"github.com/jhoicas/Bizboard-api/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:          "bizctl",
		Short:        "Herramientas de administración de Bizboard",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "archivo de configuración (.env o config.env)")
	rootCmd.PersistentFlags().String("log-level", "info", "nivel de log (debug, info, warn, error)")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(tokenCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig lee la configuración sin exigir S3 ni CORS: la CLI solo usa base de datos y JWT.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("leer %s: %w", cfgFile, err)
		}
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		v.Set("LOG_LEVEL", f.Value.String())
	}

	cfg := config.FromViper(v)
	if cfg.DB.DatabaseURL == "" && cfg.DB.Host == "" {
		return nil, fmt.Errorf("config: DATABASE_URL (o DB_HOST) es obligatorio")
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: cfg.Log.Level})
}

// openPool abre el pool de PostgreSQL; el llamador lo cierra.
func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}
