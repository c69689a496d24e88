package config

// Config is the root configuration for the BFF middleware gateway.
// Values come from an optional yaml file; environment variables always win.
// The loaded Config is immutable after startup and passed explicitly to the
// gateway and every integration adapter.
type Config struct {
	Gateway   GatewayConfig   `yaml:"gateway,omitempty"`
	Auth      AuthConfig      `yaml:"auth,omitempty"`
	Providers ProvidersConfig `yaml:"providers,omitempty"`
	OAuth     OAuthConfig     `yaml:"oauth,omitempty"`
	Report    ReportConfig    `yaml:"report,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// GatewayConfig controls the HTTP server.
type GatewayConfig struct {
	Port           int      `yaml:"port,omitempty" env:"BFF_GATEWAY_PORT"`
	Bind           string   `yaml:"bind,omitempty" env:"BFF_GATEWAY_BIND"` // "loopback" | "lan" | "auto" | "custom"
	CustomBindHost string   `yaml:"customBindHost,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// AuthConfig configures the shared-secret access gate.
// AllowUnauth defaults to true; setting it to false turns enforcement on,
// requiring every non-bypassed request to carry the key in x-bff-key.
type AuthConfig struct {
	AllowUnauth bool   `yaml:"allowUnauth" env:"ALLOW_UNAUTH"`
	Key         string `yaml:"key,omitempty" env:"BFF_MIDDLEWARE_KEY"`
}

// ProvidersConfig holds downstream provider credentials and endpoints.
// An empty credential puts the matching adapter into skip-and-echo mode.
type ProvidersConfig struct {
	OcoyaKey           string `yaml:"ocoyaKey,omitempty" env:"OCOYA_API_KEY"`
	OcoyaEndpoint      string `yaml:"ocoyaEndpoint,omitempty" env:"OCOYA_ENDPOINT"`
	SystemeKey         string `yaml:"systemeKey,omitempty" env:"SYSTEME_API_KEY"`
	SystemeEndpoint    string `yaml:"systemeEndpoint,omitempty" env:"SYSTEME_ENDPOINT"`
	GmailKey           string `yaml:"gmailKey,omitempty" env:"GMAIL_API_KEY"`
	GmailRelayEndpoint string `yaml:"gmailRelayEndpoint,omitempty" env:"GMAIL_RELAY_ENDPOINT"`
	YouTubeKey         string `yaml:"youtubeKey,omitempty" env:"YOUTUBE_API_KEY"`
	VideoAIKey         string `yaml:"videoaiKey,omitempty" env:"VIDEOAI_API_KEY"`
	VideoAIEndpoint    string `yaml:"videoaiEndpoint,omitempty" env:"VIDEOAI_ENDPOINT"`
}

// OAuthConfig holds identity-provider client credentials for the
// /auth/callback code exchange.
type OAuthConfig struct {
	ClientID     string `yaml:"clientId,omitempty" env:"OAUTH_CLIENT_ID"`
	ClientSecret string `yaml:"clientSecret,omitempty" env:"OAUTH_CLIENT_SECRET"`
	RedirectURL  string `yaml:"redirectUrl,omitempty" env:"OAUTH_REDIRECT_URI"`
	AuthURL      string `yaml:"authUrl,omitempty" env:"OAUTH_AUTH_URL"`
	TokenURL     string `yaml:"tokenUrl,omitempty" env:"OAUTH_TOKEN_URL"`
}

// ReportConfig defines sender and recipient for the daily report email.
type ReportConfig struct {
	Sender string `yaml:"sender,omitempty" env:"REPORT_SENDER"`
	To     string `yaml:"to,omitempty" env:"REPORT_TO"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty" env:"BFF_LOG_LEVEL"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
}
