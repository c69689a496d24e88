package integration

import (
	"context"
	"net/http"

	"github.com/bffaitrainer/bff-middleware/internal/config"
	"github.com/bffaitrainer/bff-middleware/internal/logging"
)

// VideoAI forwards generation requests to a configured video provider.
// The request body is passed through verbatim; this adapter owns no schema.
type VideoAI struct {
	key      string
	endpoint string
	client   *http.Client
	log      *logging.Logger
}

// NewVideoAI creates the video-generation adapter.
func NewVideoAI(cfg config.ProvidersConfig, log *logging.Logger) *VideoAI {
	return &VideoAI{
		key:      cfg.VideoAIKey,
		endpoint: cfg.VideoAIEndpoint,
		client:   newHTTPClient(),
		log:      log.Sub("videoai"),
	}
}

// Generate relays one generation request to the provider.
func (v *VideoAI) Generate(ctx context.Context, payload map[string]any) Result {
	if v.key == "" {
		return Skipped("VIDEOAI_API_KEY", payload)
	}
	if v.endpoint == "" {
		return Skipped("VIDEOAI_ENDPOINT", payload)
	}

	res := postJSON(ctx, v.client, v.endpoint, map[string]string{
		"Authorization": "Bearer " + v.key,
	}, payload)
	if res.Status == StatusError {
		v.log.Warn().Str("reason", res.Reason).Msg("video generation failed")
	}
	return res
}
