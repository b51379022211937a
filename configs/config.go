package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kkyr/fig"
	"go.uber.org/zap"
)

type DB struct {
	Host               string `validate:"required"`
	Port               int    `default:"5432"`
	User               string `default:"postgres"`
	Password           string `validate:"required"`
	Database           string `default:"beer_tracker"`
	MaxIdleConnections int    `default:"2"`
	MaxOpenConnections int    `default:"2"`
}

// Import describes where the JSON corpus lives and how it is loaded.
type Import struct {
	Dir       string `default:"../beer-database"`
	Extension string `default:".json"`
	DataField string `default:"data"`
	BatchSize int    `default:"100"`
}

type Config struct {
	DB     DB
	Import Import
}

const envPrefix = "BEERIMPORTER" // env prefix for env vars

var ErrConfiguration = errors.New("configuration error")

func GetConfig(configFileName string, logger *zap.Logger) (*Config, error) {
	config := Config{}
	homeDir, _ := os.UserHomeDir()

	logger.Info("Loading config", zap.String("file", configFileName))

	err := fig.Load(&config, fig.File(configFileName), fig.Dirs(".", homeDir), fig.UseEnv(envPrefix))
	if err != nil {
		if strings.Contains(err.Error(), "file not found") {
			logger.Warn("Could not find config file", zap.String("file", configFileName))

			err = fig.Load(&config, fig.IgnoreFile(), fig.UseEnv(envPrefix))
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	if config.Import.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: Import.BatchSize must be positive, got %d", ErrConfiguration, config.Import.BatchSize)
	}

	return &config, nil
}
