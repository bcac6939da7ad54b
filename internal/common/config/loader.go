// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like EWEB_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// 1️⃣ LOAD BASE CONFIG
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// 2️⃣ LOAD ENV CONFIG
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	// 3️⃣ EXPAND ENV PLACEHOLDERS
	expandEnvVars(viper.GetViper())

	// 4️⃣ Unmarshal final config
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5️⃣ DIRECT OVERRIDE IF STILL EMPTY
	// Viper only unmarshals env-backed keys it already knows about, so
	// env-only deployments need the explicit pass.
	overrideEmptyConfig(&cfg)

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from multiple possible locations so the binary,
// package tests, and test/e2e all pick up the same file.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				fmt.Printf("✅ Loaded .env from: %s\n", path)
				return
			}
		}
	}

	fmt.Printf("⚠️  .env file not found in any location, using system environment variables\n")
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills fields straight from the environment when the
// config file left them empty.
func overrideEmptyConfig(cfg *Config) {
	// Upstream credentials
	if cfg.EWeb.BaseURL == "" {
		if val := os.Getenv("EWEB_BASE_URL"); val != "" {
			cfg.EWeb.BaseURL = val
		}
	}
	if cfg.EWeb.APIKey == "" {
		if val := os.Getenv("EWEB_API_KEY"); val != "" {
			cfg.EWeb.APIKey = val
		}
	}
	if cfg.EWeb.AccountID == "" {
		if val := os.Getenv("EWEB_ACCOUNT_ID"); val != "" {
			cfg.EWeb.AccountID = val
		}
	}
	if cfg.EWeb.DefaultSupplierID == "" {
		if val := os.Getenv("EWEB_DEFAULT_SUPPLIER_ID"); val != "" {
			cfg.EWeb.DefaultSupplierID = val
		}
	}

	// Server
	if cfg.Server.Port == 0 {
		if val := os.Getenv("SERVER_PORT"); val != "" {
			if port, err := strconv.Atoi(val); err == nil {
				cfg.Server.Port = port
			}
		}
	}

	// Logging
	if cfg.Logging.Level == "" {
		if val := os.Getenv("LOG_LEVEL"); val != "" {
			cfg.Logging.Level = val
		}
	}
	if cfg.Logging.Format == "" {
		if val := os.Getenv("LOG_FORMAT"); val != "" {
			cfg.Logging.Format = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "eweb-intent-gateway"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}

	// Upstream client defaults
	if cfg.EWeb.Timeout == 0 {
		cfg.EWeb.Timeout = 30000
	}
	if cfg.EWeb.MaxAttempts == 0 {
		cfg.EWeb.MaxAttempts = 3
	}
	if cfg.EWeb.BackoffBase == 0 {
		cfg.EWeb.BackoffBase = 200
	}
	if cfg.EWeb.PageSize == 0 {
		cfg.EWeb.PageSize = 100
	}

	// Resolver defaults
	if cfg.Intent.DefaultWindowDays == 0 {
		cfg.Intent.DefaultWindowDays = 180
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.EWeb.BaseURL == "" {
		return fmt.Errorf("eweb.base_url is required (EWEB_BASE_URL)")
	}
	if cfg.EWeb.APIKey == "" {
		return fmt.Errorf("eweb.api_key is required (EWEB_API_KEY)")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
