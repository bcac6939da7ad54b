// internal/intent/config.go
package intent

type Config struct {
	DefaultSupplierID string
	DefaultWindowDays int
}

func DefaultConfig() *Config {
	return &Config{
		DefaultWindowDays: 180,
	}
}
