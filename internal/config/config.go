package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Gateway: GatewayConfig{
			Port: 8000,
			Bind: "loopback",
		},
		Auth: AuthConfig{
			AllowUnauth: true,
		},
		Providers: ProvidersConfig{
			OcoyaEndpoint:   "https://api.ocoya.com/v1/schedule",
			SystemeEndpoint: "https://api.systeme.io/api/contacts",
		},
		Report: ReportConfig{
			Sender: "reports@bffaitrainer.com",
			To:     "vince@bffaitrainer.com",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
