package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Drive  DriveConfig
	Models ModelsConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// DriveConfig configures the remote file host models are downloaded from.
type DriveConfig struct {
	BaseURL    string
	Timeout    time.Duration
	FileSuffix string
	CacheDir   string
}

// ModelsConfig overrides the built-in model file identifiers. File, when set,
// points at a YAML file whose model table is watched for changes.
type ModelsConfig struct {
	RandomForestID string
	XGBoostID      string
	File           string
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DRIVE_BASE_URL", "https://drive.google.com")
	v.SetDefault("DRIVE_TIMEOUT", "60s")
	v.SetDefault("DRIVE_FILE_SUFFIX", ".json")
	v.SetDefault("DRIVE_CACHE_DIR", "")
	v.SetDefault("MODEL_RANDOM_FOREST_ID", "")
	v.SetDefault("MODEL_XGBOOST_ID", "")
	v.SetDefault("CONFIG_FILE", "")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	timeout, err := time.ParseDuration(v.GetString("DRIVE_TIMEOUT"))
	if err != nil {
		timeout = 60 * time.Second
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Drive: DriveConfig{
			BaseURL:    v.GetString("DRIVE_BASE_URL"),
			Timeout:    timeout,
			FileSuffix: v.GetString("DRIVE_FILE_SUFFIX"),
			CacheDir:   v.GetString("DRIVE_CACHE_DIR"),
		},
		Models: ModelsConfig{
			RandomForestID: v.GetString("MODEL_RANDOM_FOREST_ID"),
			XGBoostID:      v.GetString("MODEL_XGBOOST_ID"),
			File:           v.GetString("CONFIG_FILE"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
