package config

import (
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so secrets can be stored as ${ENV_VAR} in the file.
func expandSensitiveFields(cfg *Config) {
	cfg.Auth.Key = expandEnvVars(cfg.Auth.Key)
	cfg.Providers.OcoyaKey = expandEnvVars(cfg.Providers.OcoyaKey)
	cfg.Providers.SystemeKey = expandEnvVars(cfg.Providers.SystemeKey)
	cfg.Providers.GmailKey = expandEnvVars(cfg.Providers.GmailKey)
	cfg.Providers.YouTubeKey = expandEnvVars(cfg.Providers.YouTubeKey)
	cfg.Providers.VideoAIKey = expandEnvVars(cfg.Providers.VideoAIKey)
	cfg.OAuth.ClientSecret = expandEnvVars(cfg.OAuth.ClientSecret)
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults plus environment only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := env.Parse(&cfg); err != nil {
				return cfg, &ConfigError{Message: "failed to parse environment: " + err.Error()}
			}
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	expandSensitiveFields(&cfg)

	// Environment wins over file values.
	if err := env.Parse(&cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse environment: " + err.Error()}
	}
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = 8000
	}
	if cfg.Gateway.Bind == "" {
		cfg.Gateway.Bind = "loopback"
	}
	if cfg.Providers.OcoyaEndpoint == "" {
		cfg.Providers.OcoyaEndpoint = "https://api.ocoya.com/v1/schedule"
	}
	if cfg.Providers.SystemeEndpoint == "" {
		cfg.Providers.SystemeEndpoint = "https://api.systeme.io/api/contacts"
	}
	if cfg.Report.Sender == "" {
		cfg.Report.Sender = "reports@bffaitrainer.com"
	}
	if cfg.Report.To == "" {
		cfg.Report.To = "vince@bffaitrainer.com"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
