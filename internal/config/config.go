// Package config loads EasyData client settings from the environment,
// with optional .env support for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the environment-driven settings for the EasyData client.
type Config struct {
	APIKey     string `mapstructure:"EASYDATA_API_KEY"`
	APIURL     string `mapstructure:"EASYDATA_API_URL"`
	RespFormat string `mapstructure:"EASYDATA_RESP_FORMAT"`
	UseCache   bool   `mapstructure:"EASYDATA_USE_CACHE"`
	CacheDir   string `mapstructure:"EASYDATA_CACHE_DIR"`
	LogLevel   string `mapstructure:"EASYDATA_LOG_LEVEL"`
	LogPretty  bool   `mapstructure:"EASYDATA_LOG_PRETTY"`
}

// String implements fmt.Stringer. The API key is masked.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	if c.APIKey != "" {
		sb.WriteString("  APIKey: ********\n")
	} else {
		sb.WriteString("  APIKey: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  APIURL: %s\n", c.APIURL))
	sb.WriteString(fmt.Sprintf("  RespFormat: %s\n", c.RespFormat))
	sb.WriteString(fmt.Sprintf("  UseCache: %v\n", c.UseCache))
	sb.WriteString(fmt.Sprintf("  CacheDir: %s\n", c.CacheDir))
	sb.WriteString(fmt.Sprintf("  LogLevel: %s\n", c.LogLevel))
	return sb.String()
}

// LoadFromEnv loads the configuration from environment variables. A .env file
// in the working directory is loaded first when present.
func LoadFromEnv() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	keys := []string{
		"EASYDATA_API_KEY", "EASYDATA_API_URL", "EASYDATA_RESP_FORMAT",
		"EASYDATA_USE_CACHE", "EASYDATA_CACHE_DIR",
		"EASYDATA_LOG_LEVEL", "EASYDATA_LOG_PRETTY",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("EASYDATA_RESP_FORMAT", "csv")
	v.SetDefault("EASYDATA_CACHE_DIR", "cache")
	v.SetDefault("EASYDATA_LOG_LEVEL", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("EASYDATA_API_KEY must be set")
	}

	switch c.RespFormat {
	case "csv", "json", "parquet":
	default:
		return fmt.Errorf("EASYDATA_RESP_FORMAT must be csv, json or parquet (got %q)", c.RespFormat)
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "":
	default:
		return fmt.Errorf("EASYDATA_LOG_LEVEL %q is not a known level", c.LogLevel)
	}

	return nil
}
