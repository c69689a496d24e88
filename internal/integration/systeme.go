package integration

import (
	"context"
	"net/http"

	"github.com/bffaitrainer/bff-middleware/internal/config"
	"github.com/bffaitrainer/bff-middleware/internal/logging"
)

// Contact is one CRM contact to create or update in Systeme.
type Contact struct {
	Email      string   `json:"email"`
	FirstName  string   `json:"first_name,omitempty"`
	LastName   string   `json:"last_name,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	CampaignID string   `json:"campaign_id,omitempty"`
}

// Systeme upserts contacts into the Systeme.io CRM.
type Systeme struct {
	key      string
	endpoint string
	client   *http.Client
	log      *logging.Logger
}

// NewSysteme creates the CRM-contact adapter.
func NewSysteme(cfg config.ProvidersConfig, log *logging.Logger) *Systeme {
	return &Systeme{
		key:      cfg.SystemeKey,
		endpoint: cfg.SystemeEndpoint,
		client:   newHTTPClient(),
		log:      log.Sub("systeme"),
	}
}

// UpsertContact creates or updates one contact. Tags are sent inline with the
// contact so the whole upsert stays a single outbound call.
func (s *Systeme) UpsertContact(ctx context.Context, c Contact) Result {
	if s.key == "" {
		return Skipped("SYSTEME_API_KEY", c)
	}

	body := map[string]any{
		"email": c.Email,
	}
	if c.FirstName != "" {
		body["firstName"] = c.FirstName
	}
	if c.LastName != "" {
		body["lastName"] = c.LastName
	}
	if len(c.Tags) > 0 {
		body["tags"] = c.Tags
	}
	if c.CampaignID != "" {
		body["campaignId"] = c.CampaignID
	}

	res := postJSON(ctx, s.client, s.endpoint, map[string]string{
		"X-API-Key": s.key,
	}, body)
	if res.Status == StatusError {
		s.log.Warn().Str("email", c.Email).Str("reason", res.Reason).Msg("systeme upsert failed")
	}
	return res
}
