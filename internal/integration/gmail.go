package integration

import (
	"context"
	"net/http"

	"github.com/bffaitrainer/bff-middleware/internal/config"
	"github.com/bffaitrainer/bff-middleware/internal/logging"
)

// Message is one outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Gmail sends email through an HTTP relay service. When a key is configured
// but no relay endpoint is, sends succeed with a synthetic stub payload.
type Gmail struct {
	key      string
	endpoint string
	sender   string
	client   *http.Client
	log      *logging.Logger
}

// NewGmail creates the email-send adapter.
func NewGmail(cfg config.ProvidersConfig, report config.ReportConfig, log *logging.Logger) *Gmail {
	return &Gmail{
		key:      cfg.GmailKey,
		endpoint: cfg.GmailRelayEndpoint,
		sender:   report.Sender,
		client:   newHTTPClient(),
		log:      log.Sub("gmail"),
	}
}

// Send delivers one email via the relay.
func (g *Gmail) Send(ctx context.Context, m Message) Result {
	if g.key == "" {
		return Skipped("GMAIL_API_KEY", m)
	}

	if g.endpoint == "" {
		// No relay configured: report success with a stub so callers can
		// exercise the full path without a live relay.
		return OK(map[string]any{
			"sent_via": "gmail_relay_stub",
			"echo":     m,
		})
	}

	res := postJSON(ctx, g.client, g.endpoint, map[string]string{
		"Authorization": "Bearer " + g.key,
	}, map[string]any{
		"from":    g.sender,
		"to":      m.To,
		"subject": m.Subject,
		"html":    m.HTML,
	})
	if res.Status == StatusError {
		g.log.Warn().Str("to", m.To).Str("reason", res.Reason).Msg("email send failed")
	}
	return res
}
