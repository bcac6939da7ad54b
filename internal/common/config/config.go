// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	EWeb    EWebConfig    `mapstructure:"eweb"`
	Intent  IntentConfig  `mapstructure:"intent"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the inbound HTTP listener settings.
type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// EWebConfig holds credentials and client tuning for the upstream
// inventory/sales backend. BaseURL and APIKey are required; AccountID adds
// the multi-tenant header when set.
type EWebConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	APIKey            string `mapstructure:"api_key"`
	AccountID         string `mapstructure:"account_id"`
	DefaultSupplierID string `mapstructure:"default_supplier_id"`
	Timeout           int    `mapstructure:"timeout"`      // milliseconds
	MaxAttempts       int    `mapstructure:"max_attempts"` // total tries per upstream call
	BackoffBase       int    `mapstructure:"backoff_base"` // milliseconds
	PageSize          int    `mapstructure:"page_size"`
}

// IntentConfig holds resolver tuning.
type IntentConfig struct {
	DefaultWindowDays int `mapstructure:"default_window_days"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
