package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	clearData    bool
	seedEmail    string
	seedPassword string
	seedName     string
	backfillJobs int
)

var rootCmd = &cobra.Command{
	Use:   "sistema-extras",
	Short: "Sistema de Extras",
	Long:  `Registers, approves and pays extra shifts worked for partner companies.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig reads config.yml from path, letting ENV_* variables override
// any key. Container deployments skip the file and use plain variables.
func loadConfig(path string) (*internal.Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg *internal.Config
	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		cfg = internal.LoadConfigFromEnv()
	} else {
		v := viper.New()
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.SetEnvPrefix("ENV")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}

		cfg = &internal.Config{}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("error unmarshaling config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	logger.Init(cfg.Env)
	logger.Configure(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	return cfg, nil
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	seedCmd.Flags().StringVar(&seedEmail, "email", "admin@extras.local", "Admin email")
	seedCmd.Flags().StringVar(&seedPassword, "password", "admin12345", "Admin password")
	seedCmd.Flags().StringVar(&seedName, "name", "Administrador", "Admin display name")

	backfillCmd.Flags().IntVar(&backfillJobs, "workers", 0, "Worker count, defaults to receipt.workers")
	receiptsCmd.AddCommand(backfillCmd)

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(receiptsCmd)
}
