package integration

import (
	"context"
	"net/http"

	"github.com/bffaitrainer/bff-middleware/internal/config"
	"github.com/bffaitrainer/bff-middleware/internal/logging"
)

// Ocoya relays social posts to the Ocoya scheduling API.
type Ocoya struct {
	key      string
	endpoint string
	client   *http.Client
	log      *logging.Logger
}

// NewOcoya creates the social-publish adapter.
func NewOcoya(cfg config.ProvidersConfig, log *logging.Logger) *Ocoya {
	return &Ocoya{
		key:      cfg.OcoyaKey,
		endpoint: cfg.OcoyaEndpoint,
		client:   newHTTPClient(),
		log:      log.Sub("ocoya"),
	}
}

// SchedulePost publishes or schedules one social post. Without a key the
// call degrades to an echo so the gateway stays usable offline.
func (o *Ocoya) SchedulePost(ctx context.Context, post map[string]any) Result {
	if o.key == "" {
		return Skipped("OCOYA_API_KEY", post)
	}

	res := postJSON(ctx, o.client, o.endpoint, map[string]string{
		"Authorization": "Bearer " + o.key,
	}, post)
	if res.Status == StatusError {
		o.log.Warn().Str("reason", res.Reason).Msg("ocoya publish failed")
	}
	return res
}
