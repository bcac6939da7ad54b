// internal/eweb/config.go
package eweb

import "time"

type Config struct {
	MaxAttempts int
	BackoffBase time.Duration
	PageSize    int
}

func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		BackoffBase: 200 * time.Millisecond,
		PageSize:    100,
	}
}
