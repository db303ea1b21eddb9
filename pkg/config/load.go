package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first env file found among envFilePath (searching parent
// directories), falls back to ./.env, then processes the environment.
// Missing env files are not an error.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	for _, path := range envFilePath {
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Debug("Loaded environment file", "path", foundPath)
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	slog.Default().Debug("App config loaded",
		"env", cfg.Env,
		"instant_fee_rate", cfg.Payout.InstantFeeRate,
		"minimum", cfg.Payout.Minimum,
		"currency", cfg.Payout.Currency,
		"payout_delay", cfg.Provider.PayoutDelay,
	)
	return &cfg, nil
}
