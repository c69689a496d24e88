package integration

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/bffaitrainer/bff-middleware/internal/config"
	"github.com/bffaitrainer/bff-middleware/internal/logging"
)

// OAuth exchanges authorization codes at the identity provider's token
// endpoint. The gateway never stores the resulting token; the caller owns it.
type OAuth struct {
	cfg config.OAuthConfig
	log *logging.Logger
}

// NewOAuth creates the code-exchange adapter.
func NewOAuth(cfg config.OAuthConfig, log *logging.Logger) *OAuth {
	return &OAuth{cfg: cfg, log: log.Sub("oauth")}
}

// Exchange trades one authorization code for the provider's token payload.
func (o *OAuth) Exchange(ctx context.Context, code string) Result {
	if o.cfg.ClientID == "" || o.cfg.ClientSecret == "" {
		return Skipped("OAUTH_CLIENT_ID", map[string]any{"code": code})
	}

	conf := &oauth2.Config{
		ClientID:     o.cfg.ClientID,
		ClientSecret: o.cfg.ClientSecret,
		RedirectURL:  o.cfg.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  o.cfg.AuthURL,
			TokenURL: o.cfg.TokenURL,
		},
	}

	// Bound the token call with the shared adapter timeout.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, newHTTPClient())

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			status := http.StatusBadGateway
			if rerr.Response != nil {
				status = rerr.Response.StatusCode
			}
			return ProviderError(status, rerr.Body)
		}
		o.log.Warn().Err(err).Msg("token exchange failed")
		return TransportError(err)
	}

	payload := map[string]any{
		"access_token": tok.AccessToken,
		"token_type":   tok.TokenType,
	}
	if tok.RefreshToken != "" {
		payload["refresh_token"] = tok.RefreshToken
	}
	if !tok.Expiry.IsZero() {
		payload["expires_in"] = int(time.Until(tok.Expiry).Seconds())
	}
	return OK(payload)
}
